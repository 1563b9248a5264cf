package set_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CounselingService/internal/api/handlers"
	"github.com/m04kA/SMC-CounselingService/internal/api/middleware"
	"github.com/m04kA/SMC-CounselingService/internal/service/availability/models"
	setAvailability "github.com/m04kA/SMC-CounselingService/internal/usecase/set_availability"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingSlots       = "field 'slots' is required"
	msgInvalidDate        = "invalid date: expected YYYY-MM-DD, not in the past"
	msgDateTooFar         = "date is too far in the future"
	msgInvalidSlots       = "invalid time slots: expected H:MM AM|PM, at most 48 per day"
)

type Handler struct {
	useCase SetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase SetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/availability/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	operatorID, _ := middleware.GetOperatorID(r.Context())

	var req models.SetSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Slots == nil {
		h.logger.Warn("PUT /availability/{date} - Missing slots: date=%s", date)
		handlers.RespondBadRequest(w, msgMissingSlots)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &setAvailability.Request{Date: date, Slots: req.Slots})
	if err != nil {
		switch {
		case errors.Is(err, setAvailability.ErrInvalidDate):
			h.logger.Warn("PUT /availability/{date} - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, setAvailability.ErrDateTooFarInFuture):
			h.logger.Warn("PUT /availability/{date} - Date too far in future: %s", date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, setAvailability.ErrInvalidInput):
			h.logger.Warn("PUT /availability/{date} - Invalid slots: date=%s, error=%v", date, err)
			handlers.RespondBadRequest(w, msgInvalidSlots)

		default:
			h.logger.Error("PUT /availability/{date} - Failed to set availability: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability/{date} - Availability updated: date=%s, slots=%d, operator=%s",
		date, len(result.Slots), operatorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
