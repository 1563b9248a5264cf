package request_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// BookingService интерфейс журнала бронирований
type BookingService interface {
	Reserve(ctx context.Context, date time.Time, slot types.TimeLabel, email string) (*models.BookingResponse, error)
	RecordRejection(ctx context.Context, email, reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
