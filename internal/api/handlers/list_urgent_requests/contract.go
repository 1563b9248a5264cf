package list_urgent_requests

import (
	"context"

	"github.com/m04kA/SMC-CounselingService/internal/service/urgent/models"
)

type UrgentService interface {
	List(ctx context.Context) (*models.UrgentRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
