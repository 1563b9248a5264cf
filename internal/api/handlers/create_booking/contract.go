package create_booking

import (
	"context"

	"github.com/m04kA/SMC-CounselingService/internal/service/bookings/models"
	requestBooking "github.com/m04kA/SMC-CounselingService/internal/usecase/request_booking"
)

type RequestBookingUseCase interface {
	Execute(ctx context.Context, req *requestBooking.Request) (*models.BookingResponse, error)
	RejectMalformed(ctx context.Context)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
