package get_availability

import "errors"

var (
	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("get_availability: invalid date")

	// ErrInvalidTimeRange возвращается при некорректном периоде календаря
	ErrInvalidTimeRange = errors.New("get_availability: invalid time range")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
