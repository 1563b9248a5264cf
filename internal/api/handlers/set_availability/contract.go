package set_availability

import (
	"context"

	"github.com/m04kA/SMC-CounselingService/internal/service/availability/models"
	setAvailability "github.com/m04kA/SMC-CounselingService/internal/usecase/set_availability"
)

type SetAvailabilityUseCase interface {
	Execute(ctx context.Context, req *setAvailability.Request) (*models.DayAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
