package schema

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CounselingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CounselingService/pkg/sqlbuilder"
)

// Даты хранятся строкой YYYY-MM-DD в обоих диалектах, чтобы не зависеть от часового пояса сервера БД.
// minute_of_day дублирует time_label для хронологической сортировки в SQL.
// availability_days хранит по строке на дату: её блокировка сериализует замену набора слотов дня.
const statementsTemplate = `
CREATE TABLE IF NOT EXISTS availability_days (
	slot_date  TEXT PRIMARY KEY,
	updated_at %[1]s NOT NULL
);

CREATE TABLE IF NOT EXISTS availability_slots (
	slot_date     TEXT NOT NULL,
	time_label    TEXT NOT NULL,
	minute_of_day INTEGER NOT NULL,
	created_at    %[1]s NOT NULL,
	PRIMARY KEY (slot_date, time_label)
);

CREATE TABLE IF NOT EXISTS bookings (
	id            TEXT PRIMARY KEY,
	booking_date  TEXT NOT NULL,
	time_label    TEXT NOT NULL,
	minute_of_day INTEGER NOT NULL,
	email         TEXT NOT NULL,
	created_at    %[1]s NOT NULL,
	CONSTRAINT bookings_slot_unique UNIQUE (booking_date, time_label)
);

CREATE TABLE IF NOT EXISTS urgent_requests (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL,
	message    TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL,
	created_at %[1]s NOT NULL,
	updated_at %[1]s NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_urgent_requests_created_at ON urgent_requests (created_at);

CREATE TABLE IF NOT EXISTS declined_records (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL,
	kind       TEXT NOT NULL,
	reason     TEXT NOT NULL,
	created_at %[1]s NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_declined_records_created_at ON declined_records (created_at);
`

// Statements возвращает DDL для диалекта, по одному оператору на элемент
func Statements(d sqlbuilder.Dialect) []string {
	timestampType := "TIMESTAMPTZ"
	if d == sqlbuilder.SQLite {
		timestampType = "TIMESTAMP"
	}

	return splitStatements(fmt.Sprintf(statementsTemplate, timestampType))
}

// Migrate создает таблицы, если их ещё нет
func Migrate(ctx context.Context, db dbmetrics.DBExecutor, d sqlbuilder.Dialect) error {
	for _, stmt := range Statements(d) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: failed to apply %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}
