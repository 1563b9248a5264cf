package request_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном email или формате времени
	ErrInvalidInput = errors.New("request_booking: invalid input data")

	// ErrInvalidDate возвращается при некорректной или прошедшей дате
	ErrInvalidDate = errors.New("request_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("request_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда попытка забронировать слот нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("request_booking: too late to book this slot")

	// ErrSlotNotOpen возвращается, когда слот не открыт оператором
	ErrSlotNotOpen = errors.New("request_booking: slot is not open for booking")

	// ErrSlotAlreadyBooked возвращается, когда слот уже занят
	ErrSlotAlreadyBooked = errors.New("request_booking: slot already booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_booking: internal error")
)
