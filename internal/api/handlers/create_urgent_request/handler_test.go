package create_urgent_request

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/service/urgent"
	"github.com/m04kA/SMC-CounselingService/internal/service/urgent/models"
	"github.com/m04kA/SMC-CounselingService/pkg/logger"
)

type fakeService struct {
	got *models.SubmitRequest
	err error
}

func (f *fakeService) Submit(_ context.Context, req *models.SubmitRequest) (*models.UrgentRequestResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.UrgentRequestResponse{
		ID:      "0d6f3c1e-2f57-4a44-9c1a-6c0a2b3d4e5f",
		Email:   req.Email,
		Message: req.Message,
		Status:  "pending",
	}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "submitted",
			body:       `{"email":"a@x.com","message":"need help"}`,
			wantStatus: http.StatusCreated,
			wantBody:   `"status":"pending"`,
		},
		{
			name:       "malformed body",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"code":"VALIDATION_ERROR"`,
		},
		{
			name:       "invalid input",
			body:       `{"email":"invalid-email"}`,
			err:        urgent.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"code":"VALIDATION_ERROR"`,
		},
		{
			name:       "internal",
			body:       `{"email":"a@x.com"}`,
			err:        urgent.ErrInternal,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"code":"INTERNAL_ERROR"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			if tt.err != nil {
				svc.err = fmt.Errorf("%w: Submit - test", tt.err)
			}
			h := NewHandler(svc, logger.NewNop())

			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/urgent-requests", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHandle_PassesBody(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/urgent-requests",
		strings.NewReader(`{"email":"a@x.com","message":"need help"}`)))

	require.NotNil(t, svc.got)
	assert.Equal(t, "a@x.com", svc.got.Email)
	assert.Equal(t, "need help", svc.got.Message)
}
