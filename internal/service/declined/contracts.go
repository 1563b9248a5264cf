package declined

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

// DeclinedRepository интерфейс журнала отклонённых обращений
type DeclinedRepository interface {
	Append(ctx context.Context, record *domain.DeclinedRecord) (*domain.DeclinedRecord, error)
	List(ctx context.Context, kind domain.DeclinedKind) ([]*domain.DeclinedRecord, error)
}

// Metrics счётчики журнала (может быть nil)
type Metrics interface {
	IncDeclined(kind string)
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
