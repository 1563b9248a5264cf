package get_availability

import (
	"context"

	"github.com/m04kA/SMC-CounselingService/internal/service/availability/models"
	getAvailability "github.com/m04kA/SMC-CounselingService/internal/usecase/get_availability"
)

type GetAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getAvailability.Request) (*models.DayAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
