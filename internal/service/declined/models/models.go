package models

import (
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

// DeclinedRecordResponse запись журнала отклонённых обращений
type DeclinedRecordResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Kind      string    `json:"kind"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// DeclinedListResponse ответ со списком записей журнала
type DeclinedListResponse struct {
	DeclinedRequests []DeclinedRecordResponse `json:"declinedRequests"`
}

// FromDomainDeclinedRecord конвертирует domain модель в DTO
func FromDomainDeclinedRecord(r *domain.DeclinedRecord) *DeclinedRecordResponse {
	if r == nil {
		return nil
	}

	return &DeclinedRecordResponse{
		ID:        r.ID.String(),
		Email:     r.Email,
		Kind:      string(r.Kind),
		Reason:    r.Reason,
		CreatedAt: r.CreatedAt,
	}
}

// FromDomainDeclinedList конвертирует список domain моделей в DTO
func FromDomainDeclinedList(records []*domain.DeclinedRecord) *DeclinedListResponse {
	result := make([]DeclinedRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, *FromDomainDeclinedRecord(r))
	}

	return &DeclinedListResponse{DeclinedRequests: result}
}
