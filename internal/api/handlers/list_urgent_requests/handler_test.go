package list_urgent_requests

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CounselingService/internal/service/urgent/models"
	"github.com/m04kA/SMC-CounselingService/pkg/logger"
)

type fakeService struct {
	list *models.UrgentRequestListResponse
	err  error
}

func (f *fakeService) List(context.Context) (*models.UrgentRequestListResponse, error) {
	return f.list, f.err
}

func TestHandle(t *testing.T) {
	svc := &fakeService{list: &models.UrgentRequestListResponse{UrgentRequests: []models.UrgentRequestResponse{
		{ID: "u1", Email: "a@x.com", Message: "first", Status: "pending"},
		{ID: "u2", Email: "b@x.com", Message: "second", Status: "reviewed"},
	}}}
	h := NewHandler(svc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/urgent-requests", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
	assert.Contains(t, w.Body.String(), `"status":"reviewed"`)
}

func TestHandle_InternalError(t *testing.T) {
	h := NewHandler(&fakeService{err: errors.New("db is down")}, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/urgent-requests", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","message":"internal server error"}`, w.Body.String())
}
