// Package storagetest поднимает SQLite в памяти со схемой сервиса для тестов репозиториев и сервисов.
package storagetest

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/infra/storage/schema"
	"github.com/m04kA/SMC-CounselingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CounselingService/pkg/sqlbuilder"
)

// NewSQLite открывает изолированную базу в памяти и применяет схему
// Пул ограничен одним соединением: у каждого соединения SQLite ":memory:" своя база,
// а конкурентные транзакции в тестах просто ждут освобождения соединения
func NewSQLite(t testing.TB) *dbmetrics.DB {
	t.Helper()

	raw, err := sql.Open(sqlbuilder.SQLite.DriverName(), ":memory:")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = raw.Close() })

	db := dbmetrics.Wrap(raw, nil)
	require.NoError(t, schema.Migrate(context.Background(), db, sqlbuilder.SQLite))

	return db
}
