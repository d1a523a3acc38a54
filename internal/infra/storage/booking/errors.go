package booking

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// Коды ошибок PostgreSQL, означающие конкурентную запись в то же время
const (
	pgExclusionViolation    = "23P01"
	pgSerializationFailure  = "40001"
	pgDeadlockDetected      = "40P01"
	bookingsNoOverlapConstr = "bookings_no_overlap"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking.repository: booking not found", domain.ErrNotFound)

	// ErrOverlap возвращается, когда запись пересекается с активным бронированием провайдера
	ErrOverlap = fmt.Errorf("%w: booking.repository: overlapping active booking", domain.ErrConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// MapTxError переводит ошибки конкурентной записи в ErrOverlap.
// Подключается к txmanager.WithErrorMapper: конфликт сериализации может прийти только на COMMIT.
func MapTxError(err error) error {
	if isConcurrencyConflict(err) && !errors.Is(err, ErrOverlap) {
		return fmt.Errorf("%w: %v", ErrOverlap, err)
	}
	return err
}

func isConcurrencyConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch pqErr.Code {
	case pgSerializationFailure, pgDeadlockDetected:
		return true
	case pgExclusionViolation:
		return pqErr.Constraint == "" || pqErr.Constraint == bookingsNoOverlapConstr
	}
	return false
}
