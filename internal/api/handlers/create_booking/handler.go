package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CounselingService/internal/api/handlers"
	"github.com/m04kA/SMC-CounselingService/internal/service/bookings/models"
	requestBooking "github.com/m04kA/SMC-CounselingService/internal/usecase/request_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "invalid email or time slot format, expected a valid email and H:MM AM|PM"
	msgInvalidDate        = "invalid booking date, expected YYYY-MM-DD not in the past"
	msgDateTooFar         = "booking date is too far in the future"
	msgTooLateToBook      = "too late to book this slot"
	msgSlotNotOpen        = "slot is not open for booking"
	msgSlotAlreadyBooked  = "slot already booked"
)

type Handler struct {
	useCase RequestBookingUseCase
	logger  Logger
}

func NewHandler(useCase RequestBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		h.useCase.RejectMalformed(r.Context())
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(&req))
	if err != nil {
		switch {
		case errors.Is(err, requestBooking.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings - Slot already booked: date=%s, time=%s", req.Date, req.TimeSlot)
			handlers.RespondConflict(w, handlers.CodeSlotAlreadyBooked, msgSlotAlreadyBooked)

		case errors.Is(err, requestBooking.ErrSlotNotOpen):
			h.logger.Warn("POST /bookings - Slot not open: date=%s, time=%s", req.Date, req.TimeSlot)
			handlers.RespondBadRequest(w, msgSlotNotOpen)

		case errors.Is(err, requestBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, requestBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, requestBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, requestBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: date=%s, time=%s", req.Date, req.TimeSlot)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, time=%s, error=%v",
				req.Date, req.TimeSlot, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, date=%s, time=%s",
		result.ID, result.Date, result.TimeSlot)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
