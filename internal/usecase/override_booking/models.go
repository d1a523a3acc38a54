package override_booking

import (
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// Request модель запроса на ручную правку бронирования
type Request struct {
	Actor     domain.Actor
	BookingID int64
	Patch     BookingPatch
}

// BookingPatch изменяемые поля бронирования; nil означает "не менять"
type BookingPatch struct {
	BookingDate        *time.Time
	StartTime          *types.TimeString
	EndTime            *types.TimeString
	Status             *domain.BookingStatus
	CancellationReason *string
	ProviderNotes      *string
	BookingMode        *domain.BookingMode
}

// IsEmpty возвращает true, если патч ничего не меняет
func (p *BookingPatch) IsEmpty() bool {
	return p.BookingDate == nil &&
		p.StartTime == nil &&
		p.EndTime == nil &&
		p.Status == nil &&
		p.CancellationReason == nil &&
		p.ProviderNotes == nil &&
		p.BookingMode == nil
}

// ChangesTime возвращает true, если патч двигает окно бронирования
func (p *BookingPatch) ChangesTime() bool {
	return p.BookingDate != nil || p.StartTime != nil || p.EndTime != nil
}

// ApplyTo накладывает патч на копию бронирования и возвращает результат.
// Поля отмены ведёт вызывающая сторона через ApplyStatus.
func (p *BookingPatch) ApplyTo(b domain.Booking) domain.Booking {
	if p.BookingDate != nil {
		b.BookingDate = domain.DateOnly(*p.BookingDate)
	}
	if p.StartTime != nil {
		b.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		b.EndTime = *p.EndTime
	}
	if p.ProviderNotes != nil {
		b.ProviderNotes = p.ProviderNotes
	}
	if p.BookingMode != nil {
		b.BookingMode = *p.BookingMode
	}
	return b
}
