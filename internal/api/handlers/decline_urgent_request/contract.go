package decline_urgent_request

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CounselingService/internal/service/urgent/models"
)

type UrgentService interface {
	Decline(ctx context.Context, id uuid.UUID, reason string) (*models.DeclinedResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
