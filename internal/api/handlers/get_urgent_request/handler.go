package get_urgent_request

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CounselingService/internal/api/handlers"
	"github.com/m04kA/SMC-CounselingService/internal/service/urgent"
)

const (
	msgInvalidRequestID = "invalid urgent request ID"
	msgNotFound         = "urgent request not found"
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

// Handle GET /api/v1/urgent-requests/{requestId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(mux.Vars(r)["requestId"])
	if err != nil {
		h.logger.Warn("GET /urgent-requests/{id} - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	result, err := h.service.GetByID(r.Context(), requestID)
	if err != nil {
		switch {
		case errors.Is(err, urgent.ErrRequestNotFound):
			h.logger.Warn("GET /urgent-requests/{id} - Request not found: request_id=%s", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /urgent-requests/{id} - Failed to get request: request_id=%s, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /urgent-requests/{id} - Request retrieved: request_id=%s, status=%s", requestID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
