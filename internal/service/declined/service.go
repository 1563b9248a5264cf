package declined

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/internal/service/declined/models"
)

// Service журнал отклонённых обращений
// Записи только добавляются: ни изменения, ни удаления нет
type Service struct {
	repo         DeclinedRepository
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса журнала
func NewService(repo DeclinedRepository, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:         repo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Record добавляет запись об отклонённом обращении
// Если в контексте есть транзакция, запись попадает в неё
func (s *Service) Record(ctx context.Context, kind domain.DeclinedKind, email, reason string) (*domain.DeclinedRecord, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
	}

	record := &domain.DeclinedRecord{
		ID:        uuid.New(),
		Email:     strings.TrimSpace(email),
		Kind:      kind,
		Reason:    reason,
		CreatedAt: s.timeProvider.Now().UTC(),
	}

	created, err := s.repo.Append(ctx, record)
	if err != nil {
		s.logger.Error("Record: failed to append %s record for email=%s: %v", kind, record.Email, err)
		return nil, fmt.Errorf("%w: Record - repository error: %v", ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.IncDeclined(string(kind))
	}

	s.logger.Info("Record: appended %s record id=%s, reason=%q", kind, created.ID, reason)
	return created, nil
}

// List возвращает записи журнала, новые первыми
// kind - "urgent", "booking" или пустая строка для всех
func (s *Service) List(ctx context.Context, kind string) (*models.DeclinedListResponse, error) {
	filter := domain.DeclinedKind(kind)
	if filter != "" && !filter.IsValid() {
		s.logger.Warn("List: invalid kind filter=%q", kind)
		return nil, fmt.Errorf("%w: kind must be one of urgent, booking", ErrInvalidInput)
	}

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d declined records", len(records))
	return models.FromDomainDeclinedList(records), nil
}
