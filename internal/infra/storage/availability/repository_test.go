package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-CounselingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-CounselingService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, s)
	require.NoError(t, err)
	return d
}

func labels(t *testing.T, raw ...string) []types.TimeLabel {
	t.Helper()
	ls, err := types.ParseTimeLabels(raw)
	require.NoError(t, err)
	return ls
}

func TestRepository_ReplaceDay(t *testing.T) {
	ctx := context.Background()
	repo := availability.NewRepository(storagetest.NewSQLite(t), sqlbuilder.SQLite)
	day := mustDate(t, "2026-03-10")

	require.NoError(t, repo.ReplaceDay(ctx, day, labels(t, "5:00 PM", "6:00 AM", "10:00 AM"), now))

	got, err := repo.GetByDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, []string{"6:00 AM", "10:00 AM", "5:00 PM"}, types.TimeLabelStrings(got))

	// повторный вызов заменяет набор, а не дополняет
	require.NoError(t, repo.ReplaceDay(ctx, day, labels(t, "11:00 PM"), now))

	got, err = repo.GetByDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00 PM"}, types.TimeLabelStrings(got))

	require.NoError(t, repo.ReplaceDay(ctx, day, nil, now))

	got, err = repo.GetByDate(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRepository_ReplaceDay_KeepsSingleDayRow(t *testing.T) {
	ctx := context.Background()
	db := storagetest.NewSQLite(t)
	repo := availability.NewRepository(db, sqlbuilder.SQLite)
	day := mustDate(t, "2026-03-10")

	require.NoError(t, repo.ReplaceDay(ctx, day, labels(t, "9:00 AM"), now))
	require.NoError(t, repo.ReplaceDay(ctx, day, nil, now.Add(time.Minute)))
	require.NoError(t, repo.ReplaceDay(ctx, mustDate(t, "2026-03-11"), labels(t, "9:00 AM"), now))

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM availability_days WHERE slot_date = ?", "2026-03-10").Scan(&count))
	assert.Equal(t, 1, count)

	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM availability_days").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestRepository_GetByDate_UnknownDay(t *testing.T) {
	repo := availability.NewRepository(storagetest.NewSQLite(t), sqlbuilder.SQLite)

	got, err := repo.GetByDate(context.Background(), mustDate(t, "2030-01-01"))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepository_IsOpen(t *testing.T) {
	ctx := context.Background()
	repo := availability.NewRepository(storagetest.NewSQLite(t), sqlbuilder.SQLite)
	day := mustDate(t, "2026-03-10")

	require.NoError(t, repo.ReplaceDay(ctx, day, labels(t, "10:00 AM"), now))

	open, err := repo.IsOpen(ctx, day, types.MustParseTimeLabel("10:00 AM"))
	require.NoError(t, err)
	assert.True(t, open)

	open, err = repo.IsOpen(ctx, day, types.MustParseTimeLabel("11:00 AM"))
	require.NoError(t, err)
	assert.False(t, open)

	open, err = repo.IsOpen(ctx, mustDate(t, "2026-03-11"), types.MustParseTimeLabel("10:00 AM"))
	require.NoError(t, err)
	assert.False(t, open)
}

func TestRepository_GetRange(t *testing.T) {
	ctx := context.Background()
	repo := availability.NewRepository(storagetest.NewSQLite(t), sqlbuilder.SQLite)

	require.NoError(t, repo.ReplaceDay(ctx, mustDate(t, "2026-03-09"), labels(t, "9:00 AM"), now))
	require.NoError(t, repo.ReplaceDay(ctx, mustDate(t, "2026-03-10"), labels(t, "2:00 PM", "9:00 AM"), now))
	require.NoError(t, repo.ReplaceDay(ctx, mustDate(t, "2026-03-12"), labels(t, "8:00 PM"), now))

	got, err := repo.GetRange(ctx, mustDate(t, "2026-03-10"), mustDate(t, "2026-03-12"))
	require.NoError(t, err)

	assert.Len(t, got, 2)
	assert.Equal(t, []string{"9:00 AM", "2:00 PM"}, types.TimeLabelStrings(got["2026-03-10"]))
	assert.Equal(t, []string{"8:00 PM"}, types.TimeLabelStrings(got["2026-03-12"]))
}
