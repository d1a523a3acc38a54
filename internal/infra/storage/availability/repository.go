package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetCare-BookingService/pkg/psqlbuilder"
)

const (
	windowsTable          = "availability_windows"
	blockedDatesTable     = "blocked_dates"
	blockedIntervalsTable = "blocked_intervals"
)

var windowColumns = []string{
	"id",
	"provider_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_available",
	"slot_duration_minutes",
	"buffer_minutes",
	"created_at",
	"updated_at",
}

var blockedIntervalColumns = []string{
	"id",
	"provider_id",
	"block_start",
	"block_end",
	"note",
	"created_at",
}

// Repository репозиторий расписания провайдера и блокировок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWindows возвращает доступные окна на день недели.
// Порядок (start_time, id) обязателен: от него зависит порядок слотов.
func (r *Repository) ListWindows(ctx context.Context, providerID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
	query, args, err := psqlbuilder.Select(windowColumns...).
		From(windowsTable).
		Where(squirrel.Eq{"provider_id": providerID, "day_of_week": dayOfWeek, "is_available": true}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWindows - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryWindows(ctx, "ListWindows", query, args)
}

// ListAllWindows возвращает все окна провайдера, включая выключенные
func (r *Repository) ListAllWindows(ctx context.Context, providerID int64) ([]*domain.AvailabilityWindow, error) {
	query, args, err := psqlbuilder.Select(windowColumns...).
		From(windowsTable).
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("day_of_week ASC", "start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAllWindows - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryWindows(ctx, "ListAllWindows", query, args)
}

// GetWindow получает окно по ID
func (r *Repository) GetWindow(ctx context.Context, id int64) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From(windowsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindow - build select query: %v", ErrBuildQuery, err)
	}

	window, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindow - scan window: %v", ErrScanRow, err)
	}

	return window, nil
}

// CreateWindow сохраняет новое окно
func (r *Repository) CreateWindow(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(windowsTable).
		Columns(
			"provider_id",
			"day_of_week",
			"start_time",
			"end_time",
			"is_available",
			"slot_duration_minutes",
			"buffer_minutes",
		).
		Values(
			window.ProviderID,
			window.DayOfWeek,
			window.StartTime,
			window.EndTime,
			window.IsAvailable,
			window.SlotDurationMinutes,
			window.BufferMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWindow - build insert query: %v", ErrBuildQuery, err)
	}

	created := *window
	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateWindow - execute insert: %v", ErrExecQuery, err)
	}
	created.CreatedAt = createdAt.Time
	created.UpdatedAt = updatedAt.Time

	return &created, nil
}

// UpdateWindow заменяет изменяемые поля окна
func (r *Repository) UpdateWindow(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(windowsTable).
		Set("day_of_week", window.DayOfWeek).
		Set("start_time", window.StartTime).
		Set("end_time", window.EndTime).
		Set("is_available", window.IsAvailable).
		Set("slot_duration_minutes", window.SlotDurationMinutes).
		Set("buffer_minutes", window.BufferMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": window.ID, "provider_id": window.ProviderID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateWindow - build update query: %v", ErrBuildQuery, err)
	}

	updated := *window
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateWindow - execute update: %v", ErrExecQuery, err)
	}
	updated.CreatedAt = createdAt.Time
	updated.UpdatedAt = updatedAt.Time

	return &updated, nil
}

// DeleteWindow удаляет окно провайдера; бронирования не затрагиваются
func (r *Repository) DeleteWindow(ctx context.Context, providerID, id int64) error {
	return r.delete(ctx, "DeleteWindow", windowsTable, providerID, id, ErrWindowNotFound)
}

// HasBlockedDate проверяет блокировку всего дня
func (r *Repository) HasBlockedDate(ctx context.Context, providerID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(blockedDatesTable).
		Where(squirrel.Eq{"provider_id": providerID, "blocked_date": domain.DateOnly(date)}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasBlockedDate - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasBlockedDate - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// CreateBlockedDate блокирует день; повторная блокировка даёт ErrDuplicateBlockedDate
func (r *Repository) CreateBlockedDate(ctx context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(blockedDatesTable).
		Columns("provider_id", "blocked_date", "reason").
		Values(block.ProviderID, domain.DateOnly(block.BlockedDate), block.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	created := *block
	created.BlockedDate = domain.DateOnly(block.BlockedDate)

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &createdAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateBlockedDate
		}
		return nil, fmt.Errorf("%w: CreateBlockedDate - execute insert: %v", ErrExecQuery, err)
	}
	created.CreatedAt = createdAt.Time

	return &created, nil
}

// DeleteBlockedDate снимает блокировку дня
func (r *Repository) DeleteBlockedDate(ctx context.Context, providerID, id int64) error {
	return r.delete(ctx, "DeleteBlockedDate", blockedDatesTable, providerID, id, ErrBlockNotFound)
}

// ListBlockedIntervals возвращает блокировки, пересекающие [from, to)
func (r *Repository) ListBlockedIntervals(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedIntervalColumns...).
		From(blockedIntervalsTable).
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Lt{"block_start": to}).
		Where(squirrel.Gt{"block_end": from}).
		OrderBy("block_start ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedIntervals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.BlockedInterval, 0)
	for rows.Next() {
		var b domain.BlockedInterval
		var createdAt sql.NullTime
		if err := rows.Scan(&b.ID, &b.ProviderID, &b.BlockStart, &b.BlockEnd, &b.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedIntervals - scan row: %v", ErrScanRow, err)
		}
		b.CreatedAt = createdAt.Time
		blocks = append(blocks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedIntervals - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// CreateBlockedInterval сохраняет блокировку части дня
func (r *Repository) CreateBlockedInterval(ctx context.Context, block *domain.BlockedInterval) (*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(blockedIntervalsTable).
		Columns("provider_id", "block_start", "block_end", "note").
		Values(block.ProviderID, block.BlockStart, block.BlockEnd, block.Note).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedInterval - build insert query: %v", ErrBuildQuery, err)
	}

	created := *block
	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedInterval - execute insert: %v", ErrExecQuery, err)
	}
	created.CreatedAt = createdAt.Time

	return &created, nil
}

// DeleteBlockedInterval снимает блокировку части дня
func (r *Repository) DeleteBlockedInterval(ctx context.Context, providerID, id int64) error {
	return r.delete(ctx, "DeleteBlockedInterval", blockedIntervalsTable, providerID, id, ErrBlockNotFound)
}

// delete удаляет строку провайдера; чужая или отсутствующая строка -> notFound
func (r *Repository) delete(ctx context.Context, op, table string, providerID, id int64, notFound error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id, "provider_id": providerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

func (r *Repository) queryWindows(ctx context.Context, op, query string, args []interface{}) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return windows, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row scanner) (*domain.AvailabilityWindow, error) {
	var w domain.AvailabilityWindow
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&w.ID,
		&w.ProviderID,
		&w.DayOfWeek,
		&w.StartTime,
		&w.EndTime,
		&w.IsAvailable,
		&w.SlotDurationMinutes,
		&w.BufferMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time
	return &w, nil
}
