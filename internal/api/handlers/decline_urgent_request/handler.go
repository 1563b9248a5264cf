package decline_urgent_request

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CounselingService/internal/api/handlers"
	"github.com/m04kA/SMC-CounselingService/internal/api/middleware"
	"github.com/m04kA/SMC-CounselingService/internal/service/urgent"
	"github.com/m04kA/SMC-CounselingService/internal/service/urgent/models"
)

const (
	msgInvalidRequestID   = "invalid urgent request ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidReason      = "decline reason is required and must not exceed 500 characters"
	msgNotFound           = "urgent request not found"
	msgInvalidTransition  = "resolved requests cannot be declined"
)

type Handler struct {
	service UrgentService
	logger  Logger
}

func NewHandler(service UrgentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/urgent-requests/{requestId}/decline
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	operatorID, _ := middleware.GetOperatorID(r.Context())

	requestID, err := uuid.Parse(mux.Vars(r)["requestId"])
	if err != nil {
		h.logger.Warn("POST /urgent-requests/{id}/decline - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req models.DeclineRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /urgent-requests/{id}/decline - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Decline(r.Context(), requestID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, urgent.ErrInvalidInput):
			h.logger.Warn("POST /urgent-requests/{id}/decline - Invalid reason: request_id=%s", requestID)
			handlers.RespondBadRequest(w, msgInvalidReason)

		case errors.Is(err, urgent.ErrRequestNotFound):
			h.logger.Warn("POST /urgent-requests/{id}/decline - Request not found: request_id=%s", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, urgent.ErrInvalidTransition):
			h.logger.Warn("POST /urgent-requests/{id}/decline - Request already resolved: request_id=%s", requestID)
			handlers.RespondConflict(w, handlers.CodeInvalidTransition, msgInvalidTransition)

		default:
			h.logger.Error("POST /urgent-requests/{id}/decline - Failed to decline request: request_id=%s, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /urgent-requests/{id}/decline - Request declined: request_id=%s, operator=%s",
		requestID, operatorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
