package create_urgent_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CounselingService/internal/api/handlers"
	"github.com/m04kA/SMC-CounselingService/internal/service/urgent"
	"github.com/m04kA/SMC-CounselingService/internal/service/urgent/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "invalid email or message too long"
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

// Handle POST /api/v1/urgent-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /urgent-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, urgent.ErrInvalidInput):
			h.logger.Warn("POST /urgent-requests - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /urgent-requests - Failed to submit urgent request: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /urgent-requests - Urgent request submitted: request_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
