package list_declined

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CounselingService/internal/service/declined"
	"github.com/m04kA/SMC-CounselingService/internal/service/declined/models"
	"github.com/m04kA/SMC-CounselingService/pkg/logger"
)

// fakeService повторяет фильтрацию сервиса по kind
type fakeService struct {
	gotKind string
	records []models.DeclinedRecordResponse
	err     error
}

func (f *fakeService) List(_ context.Context, kind string) (*models.DeclinedListResponse, error) {
	f.gotKind = kind
	if f.err != nil {
		return nil, f.err
	}

	result := make([]models.DeclinedRecordResponse, 0, len(f.records))
	for _, r := range f.records {
		if kind == "" || r.Kind == kind {
			result = append(result, r)
		}
	}
	return &models.DeclinedListResponse{DeclinedRequests: result}, nil
}

func TestHandle_KindFilter(t *testing.T) {
	records := []models.DeclinedRecordResponse{
		{ID: "d1", Email: "a@x.com", Kind: "urgent", Reason: "out of scope"},
		{ID: "d2", Email: "b@x.com", Kind: "booking", Reason: "slot already booked"},
	}

	tests := []struct {
		name     string
		target   string
		wantKind string
		wantIDs  []string
		skipIDs  []string
	}{
		{name: "all", target: "/declined-requests", wantKind: "", wantIDs: []string{"d1", "d2"}},
		{name: "urgent", target: "/declined-requests?kind=urgent", wantKind: "urgent", wantIDs: []string{"d1"}, skipIDs: []string{"d2"}},
		{name: "booking", target: "/declined-requests?kind=booking", wantKind: "booking", wantIDs: []string{"d2"}, skipIDs: []string{"d1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{records: records}
			h := NewHandler(svc, logger.NewNop())

			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantKind, svc.gotKind)
			for _, id := range tt.wantIDs {
				assert.Contains(t, w.Body.String(), `"id":"`+id+`"`)
			}
			for _, id := range tt.skipIDs {
				assert.NotContains(t, w.Body.String(), `"id":"`+id+`"`)
			}
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unknown kind",
			err:        declined.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"code":"VALIDATION_ERROR","message":"invalid kind, expected urgent or booking"}`,
		},
		{
			name:       "internal",
			err:        declined.ErrInternal,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"code":"INTERNAL_ERROR","message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: fmt.Errorf("%w: List - test", tt.err)}
			h := NewHandler(svc, logger.NewNop())

			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodGet, "/declined-requests?kind=other", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, "other", svc.gotKind)
		})
	}
}
