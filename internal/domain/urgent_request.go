package domain

import (
	"time"

	"github.com/google/uuid"
)

// UrgentStatus represents the triage status of an urgent request
type UrgentStatus string

const (
	UrgentStatusPending  UrgentStatus = "pending"
	UrgentStatusReviewed UrgentStatus = "reviewed"
	UrgentStatusResolved UrgentStatus = "resolved"
)

// UrgentRequest срочное обращение за поддержкой
type UrgentRequest struct {
	ID        uuid.UUID
	Email     string
	Message   string
	Status    UrgentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValid returns true for a known status value
func (s UrgentStatus) IsValid() bool {
	switch s {
	case UrgentStatusPending, UrgentStatusReviewed, UrgentStatusResolved:
		return true
	default:
		return false
	}
}

// PreviousStatus возвращает единственный статус, из которого разрешён переход в s
// Для pending (начальный статус) перехода нет
func (s UrgentStatus) PreviousStatus() (UrgentStatus, bool) {
	switch s {
	case UrgentStatusReviewed:
		return UrgentStatusPending, true
	case UrgentStatusResolved:
		return UrgentStatusReviewed, true
	default:
		return "", false
	}
}

// CanTransitionTo проверяет переход: только pending → reviewed → resolved, без пропусков и повторов
func (r *UrgentRequest) CanTransitionTo(target UrgentStatus) bool {
	from, ok := target.PreviousStatus()
	return ok && r.Status == from
}

// CanBeDeclined проверяет, что обращение ещё в активной очереди
func (r *UrgentRequest) CanBeDeclined() bool {
	for _, s := range ActiveUrgentStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}
