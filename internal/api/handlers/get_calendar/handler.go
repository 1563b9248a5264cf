package get_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CounselingService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-CounselingService/internal/usecase/get_availability"
)

const (
	msgMissingRange = "query parameters 'from' and 'to' are required"
	msgInvalidDate  = "invalid date format, expected YYYY-MM-DD"
	msgInvalidRange = "invalid period: 'from' must not be after 'to' and the period must be at most 92 days"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from, to := query.Get("from"), query.Get("to")

	if from == "" || to == "" {
		h.logger.Warn("GET /availability - Missing period: from=%q, to=%q", from, to)
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	result, err := h.useCase.ExecuteCalendar(r.Context(), &getAvailability.CalendarRequest{From: from, To: to})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability - Invalid date: from=%s, to=%s", from, to)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailability.ErrInvalidTimeRange):
			h.logger.Warn("GET /availability - Invalid period: from=%s, to=%s", from, to)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /availability - Failed to get calendar: from=%s, to=%s, error=%v", from, to, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Calendar retrieved: from=%s, to=%s, days=%d", from, to, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
