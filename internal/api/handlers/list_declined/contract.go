package list_declined

import (
	"context"

	"github.com/m04kA/SMC-CounselingService/internal/service/declined/models"
)

type DeclinedService interface {
	List(ctx context.Context, kind string) (*models.DeclinedListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
