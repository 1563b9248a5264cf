package models

import (
	"time"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
)

// SubmitRequest запрос на создание срочного обращения
type SubmitRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// UpdateStatusRequest запрос на перевод обращения в следующий статус
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// DeclineRequest запрос на отклонение обращения
type DeclineRequest struct {
	Reason string `json:"reason"`
}

// UrgentRequestResponse ответ с данными срочного обращения
type UrgentRequestResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UrgentRequestListResponse ответ со списком обращений
type UrgentRequestListResponse struct {
	UrgentRequests []UrgentRequestResponse `json:"urgentRequests"`
}

// DeclinedResponse запись журнала, созданная при отклонении обращения
type DeclinedResponse struct {
	ID        string    `json:"id"`
	RequestID string    `json:"requestId"`
	Email     string    `json:"email"`
	Kind      string    `json:"kind"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainUrgentRequest конвертирует domain модель в DTO
func FromDomainUrgentRequest(r *domain.UrgentRequest) *UrgentRequestResponse {
	if r == nil {
		return nil
	}

	return &UrgentRequestResponse{
		ID:        r.ID.String(),
		Email:     r.Email,
		Message:   r.Message,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromDomainUrgentRequestList конвертирует список domain моделей в DTO
func FromDomainUrgentRequestList(requests []*domain.UrgentRequest) *UrgentRequestListResponse {
	result := make([]UrgentRequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, *FromDomainUrgentRequest(r))
	}

	return &UrgentRequestListResponse{UrgentRequests: result}
}
