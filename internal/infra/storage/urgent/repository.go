package urgent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CounselingService/pkg/sqlbuilder"
)

var requestColumns = []string{
	"id",
	"email",
	"message",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий очереди срочных запросов
type Repository struct {
	db DBExecutor
	sb squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория срочных запросов
func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, sb: sqlbuilder.New(dialect)}
}

// Create добавляет запрос в очередь
func (r *Repository) Create(ctx context.Context, req *domain.UrgentRequest) (*domain.UrgentRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Insert("urgent_requests").
		Columns(requestColumns...).
		Values(
			req.ID,
			req.Email,
			req.Message,
			string(req.Status),
			req.CreatedAt.UTC(),
			req.UpdatedAt.UTC(),
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return req, nil
}

// GetByID получает запрос по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UrgentRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(requestColumns...).
		From("urgent_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// List возвращает запросы в порядке поступления
// Если statuses не пуст, возвращаются только запросы с этими статусами
func (r *Repository) List(ctx context.Context, statuses []domain.UrgentStatus) ([]*domain.UrgentRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.sb.Select(requestColumns...).
		From("urgent_requests").
		OrderBy("created_at ASC", "id ASC")

	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		builder = builder.Where(squirrel.Eq{"status": values})
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

	requests := make([]*domain.UrgentRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// UpdateStatus переводит запрос из статуса from в статус to
// Обновление условное (WHERE status = from): из двух одновременных переходов применяется только один.
// Если ни одна строка не изменилась, возвращает ErrRequestNotFound или ErrStatusMismatch
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.UrgentStatus, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update("urgent_requests").
		Set("status", string(to)).
		Set("updated_at", now.UTC()).
		Where(squirrel.Eq{"id": id, "status": string(from)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return r.checkAffected(ctx, result, id, "UpdateStatus")
}

// Delete удаляет запрос, если его статус входит в statuses
func (r *Repository) Delete(ctx context.Context, id uuid.UUID, statuses []domain.UrgentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	query, args, err := r.sb.Delete("urgent_requests").
		Where(squirrel.Eq{"id": id, "status": values}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return r.checkAffected(ctx, result, id, "Delete")
}

// checkAffected отличает отсутствующую запись от записи в неподходящем статусе
func (r *Repository) checkAffected(ctx context.Context, result sql.Result, id uuid.UUID, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrStatusMismatch
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.UrgentRequest, error) {
	var req domain.UrgentRequest
	var status string

	err := row.Scan(
		&req.ID,
		&req.Email,
		&req.Message,
		&status,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.Status = domain.UrgentStatus(status)
	req.CreatedAt = req.CreatedAt.UTC()
	req.UpdatedAt = req.UpdatedAt.UTC()

	return &req, nil
}
