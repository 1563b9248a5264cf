package urgent

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

// UrgentRepository интерфейс репозитория очереди срочных запросов
type UrgentRepository interface {
	Create(ctx context.Context, req *domain.UrgentRequest) (*domain.UrgentRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UrgentRequest, error)
	List(ctx context.Context, statuses []domain.UrgentStatus) ([]*domain.UrgentRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.UrgentStatus, now time.Time) error
	Delete(ctx context.Context, id uuid.UUID, statuses []domain.UrgentStatus) error
}

// DeclinedLog журнал отклонённых обращений
type DeclinedLog interface {
	Record(ctx context.Context, kind domain.DeclinedKind, email, reason string) (*domain.DeclinedRecord, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики событий очереди (может быть nil)
type Metrics interface {
	IncUrgentEvent(event string)
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
