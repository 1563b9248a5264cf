package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/internal/service/availability"
	"github.com/m04kA/SMC-CounselingService/internal/service/availability/models"
)

// UseCase use case для получения свободных слотов
// Показывает только то, что ещё можно забронировать: без прошедших дат,
// без дат за пределами advanceBookingDays и без сегодняшних слотов внутри minBookingNoticeMinutes
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

// Execute возвращает свободные слоты на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.DayAvailabilityResponse, error) {
	uc.logger.Info("GetAvailability: date=%s", req.Date)

	date, err := uc.window.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailability: invalid date=%q", req.Date)
		return nil, fmt.Errorf("%w: expected YYYY-MM-DD, got %q", ErrInvalidDate, req.Date)
	}

	now := uc.timeProvider.Now()
	if uc.window.IsDateInPast(date, now) || uc.window.IsBeyondHorizon(date, now) {
		uc.logger.Info("GetAvailability: date=%s is outside booking window", req.Date)
		return models.FromDomainDayAvailability(&domain.DayAvailability{Date: date}), nil
	}

	day, err := uc.availabilityService.GetSlots(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	day.Slots = uc.window.FilterBookable(date, day.Slots, now)

	uc.logger.Info("GetAvailability: date=%s, %d bookable slots", req.Date, len(day.Slots))
	return models.FromDomainDayAvailability(day), nil
}

// ExecuteCalendar возвращает свободные слоты по дням за период
// Период обрезается снизу сегодняшним днём и сверху горизонтом бронирования
func (uc *UseCase) ExecuteCalendar(ctx context.Context, req *CalendarRequest) (*models.CalendarResponse, error) {
	uc.logger.Info("GetCalendar: from=%s, to=%s", req.From, req.To)

	from, err := uc.window.ParseDate(req.From)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid 'from' date %q", ErrInvalidDate, req.From)
	}
	to, err := uc.window.ParseDate(req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid 'to' date %q", ErrInvalidDate, req.To)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'from' must not be after 'to'", ErrInvalidTimeRange)
	}

	now := uc.timeProvider.Now()
	if today := uc.window.Today(now); from.Before(today) {
		from = today
	}
	if uc.window.AdvanceBookingDays > 0 {
		if horizon := uc.window.Today(now).AddDate(0, 0, uc.window.AdvanceBookingDays); to.After(horizon) {
			to = horizon
		}
	}
	if to.Before(from) {
		return models.FromDomainCalendar(nil), nil
	}

	days, err := uc.availabilityService.GetCalendar(ctx, from, to)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidTimeRange) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
		}
		uc.logger.Error("GetCalendar: failed to get calendar: %v", err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}

	result := make([]*domain.DayAvailability, 0, len(days))
	for _, day := range days {
		day.Slots = uc.window.FilterBookable(day.Date, day.Slots, now)
		if day.IsEmpty() {
			continue
		}
		result = append(result, day)
	}

	uc.logger.Info("GetCalendar: %d days with bookable slots", len(result))
	return models.FromDomainCalendar(result), nil
}
