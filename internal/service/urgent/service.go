package urgent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	urgentRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/urgent"
	"github.com/m04kA/SMC-CounselingService/internal/service/urgent/models"
	"github.com/m04kA/SMC-CounselingService/pkg/metrics"
)

// Service очередь срочных обращений и их разбор оператором
type Service struct {
	repo             UrgentRepository
	declinedLog      DeclinedLog
	txManager        TransactionManager
	metrics          Metrics
	maxMessageLength int
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса срочных обращений
// maxMessageLength <= 0 означает значение по умолчанию
func NewService(
	repo UrgentRepository,
	declinedLog DeclinedLog,
	txManager TransactionManager,
	metrics Metrics,
	maxMessageLength int,
	logger Logger,
) *Service {
	if maxMessageLength <= 0 {
		maxMessageLength = domain.DefaultMaxMessageLength
	}

	return &Service{
		repo:             repo,
		declinedLog:      declinedLog,
		txManager:        txManager,
		metrics:          metrics,
		maxMessageLength: maxMessageLength,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Submit ставит обращение в очередь со статусом pending
// Отклонённая по формату заявка фиксируется в журнале с видом urgent
func (s *Service) Submit(ctx context.Context, req *models.SubmitRequest) (*models.UrgentRequestResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	message := strings.TrimSpace(req.Message)

	s.logger.Info("Submit: email=%s, message length=%d", email, utf8.RuneCountInString(message))

	if !domain.IsValidEmail(email) {
		s.reject(ctx, email, domain.ReasonInvalidEmail)
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, domain.ReasonInvalidEmail)
	}

	if utf8.RuneCountInString(message) > s.maxMessageLength {
		s.reject(ctx, email, domain.ReasonMessageTooLong)
		return nil, fmt.Errorf("%w: message must be at most %d characters", ErrInvalidInput, s.maxMessageLength)
	}

	now := s.timeProvider.Now().UTC()
	request := &domain.UrgentRequest{
		ID:        uuid.New(),
		Email:     email,
		Message:   message,
		Status:    domain.UrgentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, request)
	if err != nil {
		s.logger.Error("Submit: repository error: %v", err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	s.incEvent(metrics.UrgentEventSubmitted)
	s.logger.Info("Submit: created urgent request id=%s", created.ID)
	return models.FromDomainUrgentRequest(created), nil
}

// List возвращает обращения в порядке поступления
func (s *Service) List(ctx context.Context) (*models.UrgentRequestListResponse, error) {
	requests, err := s.repo.List(ctx, nil)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d urgent requests", len(requests))
	return models.FromDomainUrgentRequestList(requests), nil
}

// GetByID получает обращение по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.UrgentRequestResponse, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, urgentRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: urgent request id=%s not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUrgentRequest(request), nil
}

// Advance переводит обращение в следующий статус: pending -> reviewed -> resolved
// Переход условный по ожидаемому исходному статусу, поэтому из двух одновременных вызовов проходит один
// Любой другой переход возвращает ErrInvalidTransition и не меняет запись
func (s *Service) Advance(ctx context.Context, id uuid.UUID, status string) (*models.UrgentRequestResponse, error) {
	target := domain.UrgentStatus(strings.ToLower(strings.TrimSpace(status)))
	s.logger.Info("Advance: id=%s, target=%s", id, target)

	from, ok := target.PreviousStatus()
	if !ok {
		s.logger.Warn("Advance: no transition leads to status=%q", status)
		if _, err := s.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: cannot move to %q", ErrInvalidTransition, status)
	}

	var updated *domain.UrgentRequest

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		request, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		now := s.timeProvider.Now().UTC()
		if err := s.repo.UpdateStatus(txCtx, id, from, target, now); err != nil {
			return err
		}

		request.Status = target
		request.UpdatedAt = now
		updated = request
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, urgentRepo.ErrRequestNotFound):
			s.logger.Warn("Advance: urgent request id=%s not found", id)
			return nil, ErrRequestNotFound
		case errors.Is(err, urgentRepo.ErrStatusMismatch):
			s.logger.Warn("Advance: urgent request id=%s is not in status %s", id, from)
			return nil, fmt.Errorf("%w: request must be %s to become %s", ErrInvalidTransition, from, target)
		default:
			s.logger.Error("Advance: repository error for id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: Advance - repository error: %v", ErrInternal, err)
		}
	}

	s.incEvent(string(target))

	// Ответ строится из записи, прочитанной в той же транзакции: повторное чтение после коммита
	// могло бы не найти обращение, отклонённое сразу после перехода
	s.logger.Info("Advance: urgent request id=%s moved %s -> %s", id, from, target)
	return models.FromDomainUrgentRequest(updated), nil
}

// Decline снимает обращение с очереди и добавляет запись в журнал в одной транзакции
// Разрешено из pending и reviewed, решённое обращение отклонить нельзя
func (s *Service) Decline(ctx context.Context, id uuid.UUID, reason string) (*models.DeclinedResponse, error) {
	reason = strings.TrimSpace(reason)
	s.logger.Info("Decline: id=%s, reason=%q", id, reason)

	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(reason) > domain.MaxDeclineReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxDeclineReasonLength)
	}

	var record *domain.DeclinedRecord

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		request, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if !request.CanBeDeclined() {
			return fmt.Errorf("%w: request is already %s", ErrInvalidTransition, request.Status)
		}

		if err := s.repo.Delete(txCtx, id, domain.ActiveUrgentStatuses); err != nil {
			return err
		}

		record, err = s.declinedLog.Record(txCtx, domain.DeclinedKindUrgent, request.Email, reason)
		return err
	})

	if err != nil {
		switch {
		case errors.Is(err, urgentRepo.ErrRequestNotFound):
			s.logger.Warn("Decline: urgent request id=%s not found", id)
			return nil, ErrRequestNotFound
		case errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("Decline: %v", err)
			return nil, err
		case errors.Is(err, urgentRepo.ErrStatusMismatch):
			s.logger.Warn("Decline: urgent request id=%s was resolved concurrently", id)
			return nil, fmt.Errorf("%w: request is already resolved", ErrInvalidTransition)
		default:
			s.logger.Error("Decline: failed for id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: Decline - %v", ErrInternal, err)
		}
	}

	s.incEvent(metrics.UrgentEventDeclined)
	s.logger.Info("Decline: urgent request id=%s declined, record id=%s", id, record.ID)

	return &models.DeclinedResponse{
		ID:        record.ID.String(),
		RequestID: id.String(),
		Email:     record.Email,
		Kind:      string(record.Kind),
		Reason:    record.Reason,
		CreatedAt: record.CreatedAt,
	}, nil
}

func (s *Service) reject(ctx context.Context, email, reason string) {
	s.logger.Warn("Submit: rejected email=%s: %s", email, reason)

	if _, err := s.declinedLog.Record(ctx, domain.DeclinedKindUrgent, email, reason); err != nil {
		s.logger.Error("Submit: failed to record rejection: %v", err)
	}
}

func (s *Service) incEvent(event string) {
	if s.metrics != nil {
		s.metrics.IncUrgentEvent(event)
	}
}
