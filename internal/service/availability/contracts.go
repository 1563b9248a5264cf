package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// AvailabilityRepository интерфейс репозитория открытых слотов
type AvailabilityRepository interface {
	ReplaceDay(ctx context.Context, date time.Time, slots []types.TimeLabel, now time.Time) error
	GetByDate(ctx context.Context, date time.Time) ([]types.TimeLabel, error)
	GetRange(ctx context.Context, from, to time.Time) (map[string][]types.TimeLabel, error)
}

// BookingRepository интерфейс чтения забронированных слотов
type BookingRepository interface {
	GetBookedSlots(ctx context.Context, date time.Time) ([]types.TimeLabel, error)
	GetBookedSlotsInRange(ctx context.Context, from, to time.Time) (map[string][]types.TimeLabel, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
