package get_calendar

import (
	"context"

	"github.com/m04kA/SMC-CounselingService/internal/service/availability/models"
	getAvailability "github.com/m04kA/SMC-CounselingService/internal/usecase/get_availability"
)

type GetCalendarUseCase interface {
	ExecuteCalendar(ctx context.Context, req *getAvailability.CalendarRequest) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
