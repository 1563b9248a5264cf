package request_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/internal/service/bookings"
	"github.com/m04kA/SMC-CounselingService/internal/service/bookings/models"
)

// UseCase use case для бронирования слота обратившимся
type UseCase struct {
	bookingService BookingService
	window         domain.BookingWindow
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingService BookingService,
	window domain.BookingWindow,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingService: bookingService,
		window:         window,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case бронирования
// Ошибки формата проверяются раньше конфликтов: некорректный email на занятый слот вернёт ошибку формата.
// Каждый отказ попадает в журнал отклонённых обращений ровно один раз
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("RequestBooking: email=%s, date=%s, time=%s", req.Email, req.Date, req.TimeSlot)

	// 1. Формат
	parsed, rej := validateFormat(req, uc.window)
	if rej != nil {
		return nil, uc.reject(ctx, req.Email, rej)
	}

	// 2. Окно бронирования
	now := uc.timeProvider.Now()
	if rej := validateWindow(parsed, uc.window, now); rej != nil {
		return nil, uc.reject(ctx, parsed.email, rej)
	}

	// 3. Проверка открытого слота и атомарная вставка, отказы журналирует сервис
	booking, err := uc.bookingService.Reserve(ctx, parsed.date, parsed.slot, parsed.email)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrSlotAlreadyBooked):
			uc.logger.Warn("RequestBooking: slot %s %s already booked", req.Date, parsed.slot)
			return nil, ErrSlotAlreadyBooked
		case errors.Is(err, bookings.ErrSlotNotOpen):
			uc.logger.Warn("RequestBooking: slot %s %s is not open", req.Date, parsed.slot)
			return nil, ErrSlotNotOpen
		case errors.Is(err, bookings.ErrInvalidInput):
			uc.logger.Warn("RequestBooking: rejected by ledger: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("RequestBooking: failed to reserve slot: %v", err)
			return nil, fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("RequestBooking: successfully created booking id=%s", booking.ID)
	return booking, nil
}

// RejectMalformed журналирует обращение, тело которого не удалось разобрать
// Адрес из такого тела не извлекается, запись сохраняется без email
func (uc *UseCase) RejectMalformed(ctx context.Context) {
	uc.logger.Warn("RequestBooking: malformed request body")
	uc.bookingService.RecordRejection(ctx, "", domain.ReasonMalformedBody)
}

func (uc *UseCase) reject(ctx context.Context, email string, rej *rejection) error {
	uc.logger.Warn("RequestBooking: validation failed: %v", rej.err)
	uc.bookingService.RecordRejection(ctx, email, rej.reason)
	return rej.err
}
