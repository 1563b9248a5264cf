package urgent_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-CounselingService/internal/infra/storage/urgent"
	"github.com/m04kA/SMC-CounselingService/pkg/sqlbuilder"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newRequest(email string, offset time.Duration) *domain.UrgentRequest {
	return &domain.UrgentRequest{
		ID:        uuid.New(),
		Email:     email,
		Message:   "need help",
		Status:    domain.UrgentStatusPending,
		CreatedAt: base.Add(offset),
		UpdatedAt: base.Add(offset),
	}
}

func TestRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := urgent.NewRepository(storagetest.NewSQLite(t), sqlbuilder.SQLite)

	second := newRequest("b@x.com", time.Minute)
	first := newRequest("a@x.com", 0)

	_, err := repo.Create(ctx, second)
	require.NoError(t, err)
	_, err = repo.Create(ctx, first)
	require.NoError(t, err)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, domain.UrgentStatusPending, all[0].Status)
	assert.Equal(t, "need help", all[0].Message)
}

func TestRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := urgent.NewRepository(storagetest.NewSQLite(t), sqlbuilder.SQLite)

	req, err := repo.Create(ctx, newRequest("a@x.com", 0))
	require.NoError(t, err)

	later := base.Add(time.Hour)
	require.NoError(t, repo.UpdateStatus(ctx, req.ID, domain.UrgentStatusPending, domain.UrgentStatusReviewed, later))

	got, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UrgentStatusReviewed, got.Status)
	assert.True(t, later.Equal(got.UpdatedAt))
	assert.True(t, base.Equal(got.CreatedAt))

	// устаревший ожидаемый статус
	err = repo.UpdateStatus(ctx, req.ID, domain.UrgentStatusPending, domain.UrgentStatusReviewed, later)
	assert.ErrorIs(t, err, urgent.ErrStatusMismatch)

	err = repo.UpdateStatus(ctx, uuid.New(), domain.UrgentStatusPending, domain.UrgentStatusReviewed, later)
	assert.ErrorIs(t, err, urgent.ErrRequestNotFound)
}

func TestRepository_ListByStatus(t *testing.T) {
	ctx := context.Background()
	repo := urgent.NewRepository(storagetest.NewSQLite(t), sqlbuilder.SQLite)

	pending, err := repo.Create(ctx, newRequest("a@x.com", 0))
	require.NoError(t, err)
	reviewed, err := repo.Create(ctx, newRequest("b@x.com", time.Minute))
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, reviewed.ID, domain.UrgentStatusPending, domain.UrgentStatusReviewed, base))

	got, err := repo.List(ctx, []domain.UrgentStatus{domain.UrgentStatusPending})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].ID)

	got, err = repo.List(ctx, domain.ActiveUrgentStatuses)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := urgent.NewRepository(storagetest.NewSQLite(t), sqlbuilder.SQLite)

	req, err := repo.Create(ctx, newRequest("a@x.com", 0))
	require.NoError(t, err)

	err = repo.Delete(ctx, req.ID, []domain.UrgentStatus{domain.UrgentStatusResolved})
	assert.ErrorIs(t, err, urgent.ErrStatusMismatch)

	require.NoError(t, repo.Delete(ctx, req.ID, domain.ActiveUrgentStatuses))

	_, err = repo.GetByID(ctx, req.ID)
	assert.ErrorIs(t, err, urgent.ErrRequestNotFound)

	err = repo.Delete(ctx, req.ID, domain.ActiveUrgentStatuses)
	assert.ErrorIs(t, err, urgent.ErrRequestNotFound)
}
