package update_urgent_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CounselingService/internal/service/urgent/models"
)

type UrgentService interface {
	Advance(ctx context.Context, id uuid.UUID, status string) (*models.UrgentRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
