package booking

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
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"booking_date",
	"time_label",
	"email",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
	sb squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, dialect sqlbuilder.Dialect) *Repository {
	return &Repository{db: db, sb: sqlbuilder.New(dialect)}
}

// Create создает новое бронирование
// Уникальность слота гарантируется ограничением UNIQUE (booking_date, time_label):
// из нескольких конкурентных вставок одного ключа проходит ровно одна, остальные получают ErrSlotAlreadyBooked.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Insert("bookings").
		Columns(
			"id",
			"booking_date",
			"time_label",
			"minute_of_day",
			"email",
			"created_at",
		).
		Values(
			booking.ID,
			booking.Date.Format(domain.DateFormat),
			booking.TimeSlot.String(),
			booking.TimeSlot.MinuteOfDay(),
			booking.Email,
			booking.CreatedAt.UTC(),
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if sqlbuilder.IsUniqueViolation(err) {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetAll получает все бронирования, отсортированные по дате и времени
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(bookingColumns...).
		From("bookings").
		OrderBy("booking_date ASC", "minute_of_day ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBookedSlots получает забронированные слоты на дату (отсортированы по времени)
func (r *Repository) GetBookedSlots(ctx context.Context, date time.Time) ([]types.TimeLabel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select("time_label").
		From("bookings").
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		OrderBy("minute_of_day ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]types.TimeLabel, 0)
	for rows.Next() {
		var slot types.TimeLabel
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: GetBookedSlots - scan time_label: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetBookedSlotsInRange получает забронированные слоты за период [from, to] сгруппированные по дате
func (r *Repository) GetBookedSlotsInRange(ctx context.Context, from, to time.Time) (map[string][]types.TimeLabel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select("booking_date", "time_label").
		From("bookings").
		Where(squirrel.GtOrEq{"booking_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"booking_date": to.Format(domain.DateFormat)}).
		OrderBy("booking_date ASC", "minute_of_day ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlotsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlotsInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string][]types.TimeLabel)
	for rows.Next() {
		var date string
		var slot types.TimeLabel
		if err := rows.Scan(&date, &slot); err != nil {
			return nil, fmt.Errorf("%w: GetBookedSlotsInRange - scan row: %v", ErrScanRow, err)
		}
		result[date] = append(result[date], slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlotsInRange - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var date string

	err := row.Scan(
		&booking.ID,
		&date,
		&booking.TimeSlot,
		&booking.Email,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date, err = time.Parse(domain.DateFormat, date)
	if err != nil {
		return nil, fmt.Errorf("invalid booking_date %q: %w", date, err)
	}
	booking.CreatedAt = booking.CreatedAt.UTC()

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
