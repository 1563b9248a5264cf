package set_availability

import "errors"

var (
	// ErrInvalidDate возвращается при некорректной или прошедшей дате
	ErrInvalidDate = errors.New("set_availability: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("set_availability: date is too far in the future")

	// ErrInvalidInput возвращается при некорректном наборе слотов
	ErrInvalidInput = errors.New("set_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("set_availability: internal error")
)
