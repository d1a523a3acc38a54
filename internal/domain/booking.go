package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// CancelledBy сторона, отменившая бронирование
type CancelledBy string

const (
	CancelledByUser     CancelledBy = "user"
	CancelledByProvider CancelledBy = "provider"
	CancelledByAdmin    CancelledBy = "admin"
)

// BookingMode формат оказания услуги
type BookingMode string

const (
	BookingModeInPerson  BookingMode = "in_person"
	BookingModeHomeVisit BookingMode = "home_visit"
	BookingModeVirtual   BookingMode = "virtual"
)

// ParseBookingMode проверяет формат оказания услуги
func ParseBookingMode(s string) (BookingMode, error) {
	switch m := BookingMode(s); m {
	case BookingModeInPerson, BookingModeHomeVisit, BookingModeVirtual:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown booking mode %q", ErrInvalidInput, s)
	}
}

// Booking represents a pet-care service booking.
// Bookings are never hard-deleted: cancelled is a terminal state kept for history.
type Booking struct {
	ID                int64
	UserID            int64
	PetID             int64
	ProviderID        int64
	ProviderServiceID int64
	BookingDate       time.Time
	StartTime         types.TimeString
	EndTime           types.TimeString
	BookingMode       BookingMode
	Status            BookingStatus

	CancellationReason *string
	CancellationBy     *CancelledBy

	PriceAtBooking float64
	ProviderNotes  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies provider time (pending or confirmed)
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// DurationMinutes длительность бронирования в минутах
func (b *Booking) DurationMinutes() int {
	return b.EndTime.Minutes() - b.StartTime.Minutes()
}

// Overlaps проверяет пересечение [start, end) бронирования с интервалом в минутах
func (b *Booking) Overlaps(startMinutes, endMinutes int) bool {
	return Overlaps(b.StartTime.Minutes(), b.EndTime.Minutes(), startMinutes, endMinutes)
}

// ApplyStatus выставляет статус и ведёт поля отмены:
// при отмене записывает сторону и причину, при любом другом статусе очищает их.
func (b *Booking) ApplyStatus(status BookingStatus, by CancelledBy, reason *string) {
	b.Status = status
	if status == StatusCancelled {
		b.CancellationBy = &by
		b.CancellationReason = reason
		return
	}
	b.CancellationBy = nil
	b.CancellationReason = nil
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	ProviderID      *int64         // Фильтр по провайдеру (опционально)
	UserID          *int64         // Фильтр по клиенту (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать completed/cancelled/no_show
}

// DateOnly отбрасывает время, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
