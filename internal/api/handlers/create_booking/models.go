package create_booking

import (
	"github.com/m04kA/SMC-CounselingService/internal/service/bookings/models"
	requestBooking "github.com/m04kA/SMC-CounselingService/internal/usecase/request_booking"
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Разбор даты и времени выполняет use case, чтобы отказ попал в журнал
func ToUseCaseRequest(r *models.CreateBookingRequest) *requestBooking.Request {
	return &requestBooking.Request{
		Email:    r.Email,
		Date:     r.Date,
		TimeSlot: r.TimeSlot,
	}
}
