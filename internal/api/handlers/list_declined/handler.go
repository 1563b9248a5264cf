package list_declined

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CounselingService/internal/api/handlers"
	"github.com/m04kA/SMC-CounselingService/internal/service/declined"
)

const msgInvalidKind = "invalid kind, expected urgent or booking"

type Handler struct {
	service DeclinedService
	logger  Logger
}

func NewHandler(service DeclinedService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/declined-requests?kind=urgent|booking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")

	result, err := h.service.List(r.Context(), kind)
	if err != nil {
		switch {
		case errors.Is(err, declined.ErrInvalidInput):
			h.logger.Warn("GET /declined-requests - Invalid kind: kind=%s", kind)
			handlers.RespondBadRequest(w, msgInvalidKind)

		default:
			h.logger.Error("GET /declined-requests - Failed to list declined requests: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /declined-requests - Declined requests retrieved: kind=%s, count=%d",
		kind, len(result.DeclinedRequests))
	handlers.RespondJSON(w, http.StatusOK, result)
}
