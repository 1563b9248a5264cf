package set_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/internal/service/availability"
	"github.com/m04kA/SMC-CounselingService/internal/service/availability/models"
)

// UseCase use case для публикации оператором открытых слотов на дату
type UseCase struct {
	availabilityService AvailabilityService
	window              domain.BookingWindow
	timeProvider        TimeProvider
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availabilityService AvailabilityService, window domain.BookingWindow, logger Logger) *UseCase {
	return &UseCase{
		availabilityService: availabilityService,
		window:              window,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
	}
}

// Execute заменяет набор открытых слотов на дату
// Прошедшие даты и даты за пределами advanceBookingDays отклоняются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.DayAvailabilityResponse, error) {
	uc.logger.Info("SetAvailability: date=%s, slots=%v", req.Date, req.Slots)

	date, err := uc.window.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("SetAvailability: invalid date=%q", req.Date)
		return nil, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, req.Date)
	}

	now := uc.timeProvider.Now()
	if uc.window.IsDateInPast(date, now) {
		uc.logger.Warn("SetAvailability: date=%s is in the past", req.Date)
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}
	if uc.window.IsBeyondHorizon(date, now) {
		uc.logger.Warn("SetAvailability: date=%s is beyond %d days", req.Date, uc.window.AdvanceBookingDays)
		return nil, fmt.Errorf("%w: can only open slots %d days in advance", ErrDateTooFarInFuture, uc.window.AdvanceBookingDays)
	}

	day, err := uc.availabilityService.SetSlots(ctx, date, req.Slots)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("SetAvailability: failed to set slots: %v", err)
		return nil, fmt.Errorf("%w: failed to set slots: %v", ErrInternal, err)
	}

	uc.logger.Info("SetAvailability: date=%s has %d open slots", req.Date, len(day.Slots))
	return models.FromDomainDayAvailability(day), nil
}
