package declined_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/internal/infra/storage/declined"
	"github.com/m04kA/SMC-CounselingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-CounselingService/pkg/sqlbuilder"
)

func TestRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := declined.NewRepository(storagetest.NewSQLite(t), sqlbuilder.SQLite)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	records := []*domain.DeclinedRecord{
		{ID: uuid.New(), Email: "a@x.com", Kind: domain.DeclinedKindBooking, Reason: domain.ReasonSlotAlreadyBooked, CreatedAt: base},
		{ID: uuid.New(), Email: "b@x.com", Kind: domain.DeclinedKindUrgent, Reason: "spam", CreatedAt: base.Add(time.Minute)},
		{ID: uuid.New(), Email: "c@x.com", Kind: domain.DeclinedKindBooking, Reason: domain.ReasonInvalidTime, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range records {
		_, err := repo.Append(ctx, r)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c@x.com", all[0].Email)
	assert.Equal(t, "b@x.com", all[1].Email)
	assert.Equal(t, "a@x.com", all[2].Email)
	assert.Equal(t, domain.DeclinedKindUrgent, all[1].Kind)
	assert.Equal(t, "spam", all[1].Reason)

	bookings, err := repo.List(ctx, domain.DeclinedKindBooking)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, records[2].ID, bookings[0].ID)
}

func TestRepository_List_Empty(t *testing.T) {
	repo := declined.NewRepository(storagetest.NewSQLite(t), sqlbuilder.SQLite)

	got, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
