package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// MaxCalendarDays максимальная длина периода календаря
const MaxCalendarDays = 92

// Service хранилище доступности: открытые оператором слоты минус забронированные
// Свободные слоты пересчитываются при каждом запросе, ничего не кэшируется
type Service struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// SetSlots полностью заменяет набор открытых слотов на дату
// Дубликаты схлопываются, порядок хронологический. Существующие бронирования не затрагиваются
func (s *Service) SetSlots(ctx context.Context, date time.Time, rawSlots []string) (*domain.DayAvailability, error) {
	day := date.Format(domain.DateFormat)
	s.logger.Info("SetSlots: date=%s, slots=%v", day, rawSlots)

	if len(rawSlots) > domain.MaxSlotsPerDay {
		s.logger.Warn("SetSlots: too many slots for date=%s: %d", day, len(rawSlots))
		return nil, fmt.Errorf("%w: at most %d slots per day", ErrInvalidInput, domain.MaxSlotsPerDay)
	}

	slots, err := types.ParseTimeLabels(rawSlots)
	if err != nil {
		s.logger.Warn("SetSlots: invalid slot for date=%s: %v", day, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.availabilityRepo.ReplaceDay(txCtx, date, slots, now)
	})
	if err != nil {
		s.logger.Error("SetSlots: failed to replace slots for date=%s: %v", day, err)
		return nil, fmt.Errorf("%w: SetSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetSlots: date=%s now has %d open slots", day, len(slots))
	return &domain.DayAvailability{Date: date, Slots: slots}, nil
}

// GetSlots возвращает свободные слоты на дату: открытые минус забронированные
func (s *Service) GetSlots(ctx context.Context, date time.Time) (*domain.DayAvailability, error) {
	day := date.Format(domain.DateFormat)

	var open, booked []types.TimeLabel
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if open, err = s.availabilityRepo.GetByDate(txCtx, date); err != nil {
			return err
		}
		if len(open) == 0 {
			return nil
		}
		booked, err = s.bookingRepo.GetBookedSlots(txCtx, date)
		return err
	})
	if err != nil {
		s.logger.Error("GetSlots: repository error for date=%s: %v", day, err)
		return nil, fmt.Errorf("%w: GetSlots - repository error: %v", ErrInternal, err)
	}

	free := domain.SubtractBooked(open, booked)
	s.logger.Info("GetSlots: date=%s, open=%d, booked=%d, free=%d", day, len(open), len(booked), len(free))

	return &domain.DayAvailability{Date: date, Slots: free}, nil
}

// GetCalendar возвращает свободные слоты по дням за период [from, to]
// Дни без свободных слотов пропускаются
func (s *Service) GetCalendar(ctx context.Context, from, to time.Time) ([]*domain.DayAvailability, error) {
	s.logger.Info("GetCalendar: period=%s to %s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'from' must not be after 'to'", ErrInvalidTimeRange)
	}
	if from.AddDate(0, 0, MaxCalendarDays-1).Before(to) {
		return nil, fmt.Errorf("%w: period must be at most %d days", ErrInvalidTimeRange, MaxCalendarDays)
	}

	var open, booked map[string][]types.TimeLabel
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if open, err = s.availabilityRepo.GetRange(txCtx, from, to); err != nil {
			return err
		}
		booked, err = s.bookingRepo.GetBookedSlotsInRange(txCtx, from, to)
		return err
	})
	if err != nil {
		s.logger.Error("GetCalendar: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCalendar - repository error: %v", ErrInternal, err)
	}

	days := make([]*domain.DayAvailability, 0, len(open))
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(domain.DateFormat)
		free := domain.SubtractBooked(open[key], booked[key])
		if len(free) == 0 {
			continue
		}
		days = append(days, &domain.DayAvailability{Date: d, Slots: free})
	}

	s.logger.Info("GetCalendar: %d days with free slots", len(days))
	return days, nil
}
