package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CounselingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CounselingService/pkg/metrics"
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// errSlotNotOpen сигнализирует откат транзакции, когда слот не открыт
var errSlotNotOpen = errors.New("slot not open")

// Service журнал бронирований
// Один слот (дата, время) бронируется не более одного раза. Бронирования не изменяются и не отменяются
type Service struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	declinedLog      DeclinedLog
	txManager        TransactionManager
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	declinedLog DeclinedLog,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		declinedLog:      declinedLog,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Reserve бронирует слот на дату за обратившимся
//
// Проверка, что слот открыт, и вставка выполняются в одной транзакции.
// Уникальность (дата, время) обеспечивает БД: из нескольких одновременных вызовов
// на один слот успешен ровно один, остальные получают ErrSlotAlreadyBooked.
// Каждый отказ записывается в журнал отклонённых обращений ровно один раз
func (s *Service) Reserve(ctx context.Context, date time.Time, slot types.TimeLabel, email string) (*models.BookingResponse, error) {
	day := date.Format(domain.DateFormat)
	email = domain.NormalizeEmail(email)
	s.logger.Info("Reserve: date=%s, time=%s, email=%s", day, slot, email)

	if !domain.IsValidEmail(email) {
		return nil, s.reject(ctx, email, domain.ReasonInvalidEmail, metrics.BookingResultRejected,
			fmt.Errorf("%w: %s", ErrInvalidInput, domain.ReasonInvalidEmail))
	}
	if slot.IsZero() {
		return nil, s.reject(ctx, email, domain.ReasonInvalidTime, metrics.BookingResultRejected,
			fmt.Errorf("%w: %s", ErrInvalidInput, domain.ReasonInvalidTime))
	}

	booking := &domain.Booking{
		ID:        uuid.New(),
		Date:      date,
		TimeSlot:  slot,
		Email:     email,
		CreatedAt: s.timeProvider.Now().UTC(),
	}

	var created *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		open, err := s.availabilityRepo.IsOpen(txCtx, date, slot)
		if err != nil {
			return err
		}
		if !open {
			return errSlotNotOpen
		}

		created, err = s.bookingRepo.Create(txCtx, booking)
		return err
	})

	if err != nil {
		switch {
		case errors.Is(err, errSlotNotOpen):
			return nil, s.reject(ctx, email, domain.ReasonSlotNotOpen, metrics.BookingResultRejected,
				fmt.Errorf("%w: %s %s", ErrSlotNotOpen, day, slot))
		case errors.Is(err, bookingRepo.ErrSlotAlreadyBooked):
			return nil, s.reject(ctx, email, domain.ReasonSlotAlreadyBooked, metrics.BookingResultConflict,
				fmt.Errorf("%w: %s %s", ErrSlotAlreadyBooked, day, slot))
		default:
			s.logger.Error("Reserve: failed to create booking for date=%s, time=%s: %v", day, slot, err)
			return nil, fmt.Errorf("%w: Reserve - %v", ErrInternal, err)
		}
	}

	s.incBooking(metrics.BookingResultCreated)
	s.logger.Info("Reserve: successfully created booking id=%s", created.ID)
	return models.FromDomainBooking(created), nil
}

// RecordRejection записывает отказ в бронировании, обнаруженный до обращения к журналу
// (например, дата вне разрешённого окна)
func (s *Service) RecordRejection(ctx context.Context, email, reason string) {
	s.incBooking(metrics.BookingResultRejected)
	s.record(ctx, domain.NormalizeEmail(email), reason)
}

// List возвращает все бронирования, отсортированные по дате и времени
func (s *Service) List(ctx context.Context) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// reject фиксирует отказ в журнале и метриках и возвращает err
func (s *Service) reject(ctx context.Context, email, reason, result string, err error) error {
	s.logger.Warn("Reserve: rejected email=%s: %v", email, err)
	s.incBooking(result)
	s.record(ctx, email, reason)
	return err
}

func (s *Service) record(ctx context.Context, email, reason string) {
	if _, err := s.declinedLog.Record(ctx, domain.DeclinedKindBooking, email, reason); err != nil {
		s.logger.Error("Reserve: failed to record rejection for email=%s: %v", email, err)
	}
}

func (s *Service) incBooking(result string) {
	if s.metrics != nil {
		s.metrics.IncBooking(result)
	}
}
