package declined

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	declinedRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/declined"
	"github.com/m04kA/SMC-CounselingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-CounselingService/pkg/logger"
	"github.com/m04kA/SMC-CounselingService/pkg/sqlbuilder"
)

type countingMetrics struct {
	declined map[string]int
}

func (m *countingMetrics) IncDeclined(kind string) {
	m.declined[kind]++
}

func newTestService(t *testing.T) (*Service, *countingMetrics) {
	t.Helper()

	db := storagetest.NewSQLite(t)
	metrics := &countingMetrics{declined: map[string]int{}}

	svc := NewService(declinedRepo.NewRepository(db, sqlbuilder.SQLite), metrics, logger.NewNop())
	svc.timeProvider = storagetest.NewStepClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), time.Second)

	return svc, metrics
}

func TestService_RecordAndList(t *testing.T) {
	ctx := context.Background()
	svc, metrics := newTestService(t)

	_, err := svc.Record(ctx, domain.DeclinedKindBooking, " a@x.com ", domain.ReasonSlotAlreadyBooked)
	require.NoError(t, err)
	_, err = svc.Record(ctx, domain.DeclinedKindUrgent, "b@x.com", "spam")
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all.DeclinedRequests, 2)
	assert.Equal(t, "b@x.com", all.DeclinedRequests[0].Email)
	assert.Equal(t, "a@x.com", all.DeclinedRequests[1].Email)
	assert.Equal(t, "booking", all.DeclinedRequests[1].Kind)

	urgentOnly, err := svc.List(ctx, "urgent")
	require.NoError(t, err)
	require.Len(t, urgentOnly.DeclinedRequests, 1)
	assert.Equal(t, "spam", urgentOnly.DeclinedRequests[0].Reason)

	assert.Equal(t, map[string]int{"booking": 1, "urgent": 1}, metrics.declined)
}

func TestService_Record_InvalidKind(t *testing.T) {
	svc, metrics := newTestService(t)

	_, err := svc.Record(context.Background(), domain.DeclinedKind("other"), "a@x.com", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, metrics.declined)
}

func TestService_List_InvalidKind(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.List(context.Background(), "spam")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
