package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CounselingService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// Repository репозиторий открытых оператором слотов
type Repository struct {
	db      DBExecutor
	sb      squirrel.StatementBuilderType
	dialect sqlbuilder.Dialect
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{
		db:      db,
		sb:      sqlbuilder.New(dialect),
		dialect: dialect,
	}
}

// ReplaceDay заменяет набор открытых слотов на дату целиком
// Должен вызываться внутри транзакции, иначе читатель может увидеть день пустым между DELETE и INSERT.
// Сначала блокируется строка дня в availability_days: параллельные замены одной даты выполняются
// по очереди, и побеждает последняя, без слияния наборов
func (r *Repository) ReplaceDay(ctx context.Context, date time.Time, slots []types.TimeLabel, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	day := date.Format(domain.DateFormat)

	if err := r.lockDay(ctx, executor, day, now); err != nil {
		return err
	}

	deleteQuery, deleteArgs, err := r.sb.Delete("availability_slots").
		Where(squirrel.Eq{"slot_date": day}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceDay - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceDay - delete slots for %s: %v", ErrExecQuery, day, err)
	}

	if len(slots) == 0 {
		return nil
	}

	insert := r.sb.Insert("availability_slots").
		Columns("slot_date", "time_label", "minute_of_day", "created_at")
	for _, slot := range slots {
		insert = insert.Values(day, slot.String(), slot.MinuteOfDay(), now.UTC())
	}

	insertQuery, insertArgs, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceDay - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceDay - insert slots for %s: %v", ErrExecQuery, day, err)
	}

	return nil
}

// lockDay создаёт или обновляет строку дня
// UPSERT берёт блокировку строки до конца транзакции, второй писатель ждёт коммита первого
// и затем в новом снимке видит уже записанные им слоты
func (r *Repository) lockDay(ctx context.Context, executor DBExecutor, day string, now time.Time) error {
	query, args, err := r.sb.Insert("availability_days").
		Columns("slot_date", "updated_at").
		Values(day, now.UTC()).
		Suffix("ON CONFLICT (slot_date) DO UPDATE SET updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceDay - build lock query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceDay - lock day %s: %v", ErrExecQuery, day, err)
	}

	return nil
}

// GetByDate возвращает открытые слоты на дату в хронологическом порядке
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]types.TimeLabel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select("time_label").
		From("availability_slots").
		Where(squirrel.Eq{"slot_date": date.Format(domain.DateFormat)}).
		OrderBy("minute_of_day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]types.TimeLabel, 0)
	for rows.Next() {
		var slot types.TimeLabel
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan time_label: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetRange возвращает открытые слоты за период [from, to], ключ - дата YYYY-MM-DD
// Дни без открытых слотов в результат не попадают
func (r *Repository) GetRange(ctx context.Context, from, to time.Time) (map[string][]types.TimeLabel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select("slot_date", "time_label").
		From("availability_slots").
		Where(squirrel.GtOrEq{"slot_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"slot_date": to.Format(domain.DateFormat)}).
		OrderBy("slot_date ASC", "minute_of_day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string][]types.TimeLabel)
	for rows.Next() {
		var day string
		var slot types.TimeLabel
		if err := rows.Scan(&day, &slot); err != nil {
			return nil, fmt.Errorf("%w: GetRange - scan row: %v", ErrScanRow, err)
		}
		result[day] = append(result[day], slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRange - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// IsOpen проверяет, что слот открыт оператором
// Внутри транзакции на PostgreSQL строка блокируется FOR SHARE до конца транзакции,
// чтобы параллельная замена дня не закрыла слот между проверкой и вставкой бронирования
func (r *Repository) IsOpen(ctx context.Context, date time.Time, slot types.TimeLabel) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.sb.Select("1").
		From("availability_slots").
		Where(squirrel.Eq{
			"slot_date":  date.Format(domain.DateFormat),
			"time_label": slot.String(),
		})
	if r.dialect.SupportsRowLocks() && dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR SHARE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsOpen - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsOpen - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}
