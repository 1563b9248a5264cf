package request_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// rejection отказ с причиной для журнала отклонённых обращений
type rejection struct {
	reason string
	err    error
}

// parsedRequest запрос после проверки формата
type parsedRequest struct {
	email string
	date  time.Time
	slot  types.TimeLabel
}

// validateFormat проверяет формат полей в фиксированном порядке: email, дата, время
func validateFormat(req *Request, window domain.BookingWindow) (*parsedRequest, *rejection) {
	email := domain.NormalizeEmail(req.Email)
	if !domain.IsValidEmail(email) {
		return nil, &rejection{
			reason: domain.ReasonInvalidEmail,
			err:    fmt.Errorf("%w: %s", ErrInvalidInput, domain.ReasonInvalidEmail),
		}
	}

	date, err := window.ParseDate(req.Date)
	if err != nil {
		return nil, &rejection{
			reason: domain.ReasonInvalidDate,
			err:    fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, req.Date),
		}
	}

	slot, err := types.ParseTimeLabel(req.TimeSlot)
	if err != nil {
		return nil, &rejection{
			reason: domain.ReasonInvalidTime,
			err:    fmt.Errorf("%w: %v", ErrInvalidInput, err),
		}
	}

	return &parsedRequest{email: email, date: date, slot: slot}, nil
}

// validateWindow проверяет, что дата и время попадают в окно бронирования
func validateWindow(req *parsedRequest, window domain.BookingWindow, now time.Time) *rejection {
	if window.IsDateInPast(req.date, now) {
		return &rejection{
			reason: domain.ReasonInvalidDate,
			err:    fmt.Errorf("%w: date is in the past", ErrInvalidDate),
		}
	}

	if window.IsBeyondHorizon(req.date, now) {
		return &rejection{
			reason: domain.ReasonDateOutOfRange,
			err:    fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, window.AdvanceBookingDays),
		}
	}

	if window.IsTooLate(req.date, req.slot, now) {
		return &rejection{
			reason: domain.ReasonTooLateToBook,
			err:    fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, window.MinBookingNoticeMinutes),
		}
	}

	return nil
}
