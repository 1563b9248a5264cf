package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeclinedKind тип отклонённой заявки
type DeclinedKind string

const (
	DeclinedKindUrgent  DeclinedKind = "urgent"
	DeclinedKindBooking DeclinedKind = "booking"
)

// DeclinedRecord запись журнала отклонённых заявок (только добавление)
type DeclinedRecord struct {
	ID        uuid.UUID
	Email     string
	Kind      DeclinedKind
	Reason    string
	CreatedAt time.Time
}

// IsValid проверяет, что тип известен
func (k DeclinedKind) IsValid() bool {
	return k == DeclinedKindUrgent || k == DeclinedKindBooking
}
