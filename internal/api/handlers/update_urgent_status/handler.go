package update_urgent_status

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
	msgNotFound           = "urgent request not found"
	msgInvalidTransition  = "status transition is not allowed"
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

// Handle PUT /api/v1/urgent-requests/{requestId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	operatorID, _ := middleware.GetOperatorID(r.Context())

	requestID, err := uuid.Parse(mux.Vars(r)["requestId"])
	if err != nil {
		h.logger.Warn("PUT /urgent-requests/{id}/status - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /urgent-requests/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Advance(r.Context(), requestID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, urgent.ErrRequestNotFound):
			h.logger.Warn("PUT /urgent-requests/{id}/status - Request not found: request_id=%s", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, urgent.ErrInvalidTransition):
			h.logger.Warn("PUT /urgent-requests/{id}/status - Invalid transition: request_id=%s, status=%s",
				requestID, req.Status)
			handlers.RespondConflict(w, handlers.CodeInvalidTransition, msgInvalidTransition)

		default:
			h.logger.Error("PUT /urgent-requests/{id}/status - Failed to update status: request_id=%s, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /urgent-requests/{id}/status - Status updated: request_id=%s, status=%s, operator=%s",
		requestID, result.Status, operatorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
