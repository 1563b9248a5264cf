package list_urgent_requests

import (
	"net/http"

	"github.com/m04kA/SMC-CounselingService/internal/api/handlers"
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

// Handle GET /api/v1/urgent-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /urgent-requests - Failed to list urgent requests: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /urgent-requests - Urgent requests retrieved: count=%d", len(result.UrgentRequests))
	handlers.RespondJSON(w, http.StatusOK, result)
}
