package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetCare-BookingService/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"user_id",
	"pet_id",
	"provider_id",
	"provider_service_id",
	"booking_date",
	"start_time",
	"end_time",
	"booking_mode",
	"status",
	"cancellation_reason",
	"cancellation_by",
	"price_at_booking",
	"provider_notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Пересечение с активным бронированием отсекает ограничение bookings_no_overlap -> ErrOverlap.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"pet_id",
			"provider_id",
			"provider_service_id",
			"booking_date",
			"start_time",
			"end_time",
			"start_minute",
			"end_minute",
			"booking_mode",
			"status",
			"cancellation_reason",
			"cancellation_by",
			"price_at_booking",
			"provider_notes",
		).
		Values(
			booking.UserID,
			booking.PetID,
			booking.ProviderID,
			booking.ProviderServiceID,
			domain.DateOnly(booking.BookingDate),
			booking.StartTime,
			booking.EndTime,
			booking.StartTime.Minutes(),
			booking.EndTime.Minutes(),
			booking.BookingMode,
			booking.Status,
			booking.CancellationReason,
			booking.CancellationBy,
			booking.PriceAtBooking,
			booking.ProviderNotes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *booking
	created.BookingDate = domain.DateOnly(booking.BookingDate)

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&created.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isConcurrencyConflict(err) {
			return nil, fmt.Errorf("%w: Create: %v", ErrOverlap, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	created.CreatedAt = createdAt.Time
	created.UpdatedAt = updatedAt.Time

	return &created, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до её конца.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if isConcurrencyConflict(err) {
			return nil, fmt.Errorf("%w: GetByID: %v", ErrOverlap, err)
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Update сохраняет изменяемые поля бронирования
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("provider_id", booking.ProviderID).
		Set("provider_service_id", booking.ProviderServiceID).
		Set("booking_date", domain.DateOnly(booking.BookingDate)).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("start_minute", booking.StartTime.Minutes()).
		Set("end_minute", booking.EndTime.Minutes()).
		Set("booking_mode", booking.BookingMode).
		Set("status", booking.Status).
		Set("cancellation_reason", booking.CancellationReason).
		Set("cancellation_by", booking.CancellationBy).
		Set("provider_notes", booking.ProviderNotes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if isConcurrencyConflict(err) {
			return nil, fmt.Errorf("%w: Update: %v", ErrOverlap, err)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// List получает бронирования с фильтрацией.
// Поддерживает фильтрацию по:
// - Провайдеру и/или клиенту
// - Периоду (StartDate, EndDate) - опционально
// - Статусу (Status) - опционально
// - Включению неактивных бронирований (IncludeInactive)
//
// Выборка на одного провайдера и одну дату внутри транзакции блокируется FOR UPDATE:
// так проверка пересечений при создании бронирования видит согласованный набор строк.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.ProviderID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"provider_id": *filter.ProviderID})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": domain.DateOnly(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": domain.DateOnly(*filter.EndDate)})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		activeStatusStrings := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings})
	}

	singleDay := filter.StartDate != nil && filter.EndDate != nil &&
		domain.DateOnly(*filter.StartDate).Equal(domain.DateOnly(*filter.EndDate))

	if singleDay {
		// Для конкретной даты сортируем по времени начала (ASC)
		selectBuilder = selectBuilder.OrderBy("start_time ASC", "id ASC")
	} else {
		// Для периода сортируем по дате и времени (DESC - сначала новые)
		selectBuilder = selectBuilder.OrderBy("booking_date DESC", "start_time DESC", "id DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDay && filter.ProviderID != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	// Под SERIALIZABLE чтение с FOR UPDATE тоже может получить 40001/40P01
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if isConcurrencyConflict(err) {
			return nil, fmt.Errorf("%w: List: %v", ErrOverlap, err)
		}
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		if isConcurrencyConflict(err) {
			return nil, fmt.Errorf("%w: List: %v", ErrOverlap, err)
		}
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в порядке columns
func scanBooking(row scanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.PetID,
		&booking.ProviderID,
		&booking.ProviderServiceID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.BookingMode,
		&booking.Status,
		&booking.CancellationReason,
		&booking.CancellationBy,
		&booking.PriceAtBooking,
		&booking.ProviderNotes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.BookingDate = domain.DateOnly(booking.BookingDate)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
