package create_urgent_request

import (
	"context"

	"github.com/m04kA/SMC-CounselingService/internal/service/urgent/models"
)

type UrgentService interface {
	Submit(ctx context.Context, req *models.SubmitRequest) (*models.UrgentRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
