package set_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

// AvailabilityService интерфейс хранилища доступности
type AvailabilityService interface {
	SetSlots(ctx context.Context, date time.Time, rawSlots []string) (*domain.DayAvailability, error)
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
