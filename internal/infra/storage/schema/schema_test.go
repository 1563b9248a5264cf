package schema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/infra/storage/schema"
	"github.com/m04kA/SMC-CounselingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-CounselingService/pkg/sqlbuilder"
)

func TestStatements_Dialects(t *testing.T) {
	pg := schema.Statements(sqlbuilder.Postgres)
	lite := schema.Statements(sqlbuilder.SQLite)

	require.Len(t, pg, 7)
	require.Len(t, lite, 7)
	assert.Contains(t, pg[0], "availability_days")
	assert.Contains(t, pg[2], "TIMESTAMPTZ")
	assert.NotContains(t, lite[2], "TIMESTAMPTZ")
	assert.Contains(t, pg[2], "UNIQUE (booking_date, time_label)")
}

func TestMigrate_Idempotent(t *testing.T) {
	db := storagetest.NewSQLite(t)

	// повторное применение не должно падать
	require.NoError(t, schema.Migrate(context.Background(), db, sqlbuilder.SQLite))
}
