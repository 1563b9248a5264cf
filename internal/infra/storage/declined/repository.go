package declined

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CounselingService/pkg/sqlbuilder"
)

// Repository журнал отклонённых обращений (только добавление)
type Repository struct {
	db DBExecutor
	sb squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, sb: sqlbuilder.New(dialect)}
}

// Append добавляет запись в журнал
func (r *Repository) Append(ctx context.Context, record *domain.DeclinedRecord) (*domain.DeclinedRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Insert("declined_records").
		Columns("id", "email", "kind", "reason", "created_at").
		Values(
			record.ID,
			record.Email,
			string(record.Kind),
			record.Reason,
			record.CreatedAt.UTC(),
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return record, nil
}

// List возвращает записи журнала, новые первыми
// kind фильтрует по виду обращения, пустое значение означает все виды
func (r *Repository) List(ctx context.Context, kind domain.DeclinedKind) ([]*domain.DeclinedRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.sb.Select("id", "email", "kind", "reason", "created_at").
		From("declined_records").
		OrderBy("created_at DESC", "id DESC")

	if kind != "" {
		builder = builder.Where(squirrel.Eq{"kind": string(kind)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.DeclinedRecord, 0)
	for rows.Next() {
		var record domain.DeclinedRecord
		var kind string

		if err := rows.Scan(&record.ID, &record.Email, &kind, &record.Reason, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		record.Kind = domain.DeclinedKind(kind)
		record.CreatedAt = record.CreatedAt.UTC()
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}
