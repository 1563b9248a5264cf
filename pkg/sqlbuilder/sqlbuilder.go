package sqlbuilder

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Dialect поддерживаемая СУБД
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// pgUniqueViolation код ошибки PostgreSQL unique_violation
const pgUniqueViolation = "23505"

// ParseDialect проверяет название драйвера из конфигурации
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case Postgres, SQLite:
		return Dialect(s), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", s)
	}
}

// DriverName имя драйвера для sql.Open
func (d Dialect) DriverName() string {
	if d == SQLite {
		return "sqlite3"
	}
	return "postgres"
}

// SupportsRowLocks true, если СУБД поддерживает SELECT ... FOR UPDATE / FOR SHARE
// В SQLite запись сериализована на уровне всей базы, построчные блокировки не нужны
func (d Dialect) SupportsRowLocks() bool {
	return d == Postgres
}

// New возвращает squirrel builder с плейсхолдерами для диалекта ($1 для PostgreSQL, ? для SQLite)
func New(d Dialect) squirrel.StatementBuilderType {
	if d == SQLite {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// IsUniqueViolation проверяет, что ошибка вызвана нарушением уникального ограничения
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
