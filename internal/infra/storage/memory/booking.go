package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	store *Store
}

// Create сохраняет бронирование; активное бронирование не может пересекать другое активное
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	var created *domain.Booking

	err := r.store.write(ctx, func() error {
		if booking.IsActive() && r.store.overlapsLocked(booking) {
			return ErrOverlap
		}

		b := clone(booking)
		b.BookingDate = domain.DateOnly(b.BookingDate)
		if b.ID == 0 {
			b.ID = r.store.id()
		} else {
			r.store.reserveID(b.ID)
		}
		now := r.store.now()
		b.CreatedAt = now
		b.UpdatedAt = now

		r.store.bookings[b.ID] = b
		created = clone(b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(b), nil
}

// Update заменяет изменяемые поля бронирования
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	var updated *domain.Booking

	err := r.store.write(ctx, func() error {
		existing, ok := r.store.bookings[booking.ID]
		if !ok {
			return ErrNotFound
		}
		if booking.IsActive() && r.store.overlapsLocked(booking) {
			return ErrOverlap
		}

		b := clone(booking)
		b.BookingDate = domain.DateOnly(b.BookingDate)
		b.CreatedAt = existing.CreatedAt
		b.UpdatedAt = r.store.now()

		r.store.bookings[b.ID] = b
		updated = clone(b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// List возвращает бронирования по фильтру.
// Для одной даты сортирует по времени начала, иначе сначала новые.
func (r *BookingRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if matches(b, filter) {
			result = append(result, clone(b))
		}
	}

	singleDay := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	slices.SortFunc(result, func(a, b *domain.Booking) int {
		c := a.BookingDate.Compare(b.BookingDate)
		if c == 0 {
			c = strings.Compare(a.StartTime.String(), b.StartTime.String())
		}
		if c == 0 {
			c = int(a.ID - b.ID)
		}
		if singleDay {
			return c
		}
		return -c
	})

	return result, nil
}

func matches(b *domain.Booking, filter domain.BookingsFilter) bool {
	if filter.ProviderID != nil && b.ProviderID != *filter.ProviderID {
		return false
	}
	if filter.UserID != nil && b.UserID != *filter.UserID {
		return false
	}
	if filter.StartDate != nil && b.BookingDate.Before(domain.DateOnly(*filter.StartDate)) {
		return false
	}
	if filter.EndDate != nil && b.BookingDate.After(domain.DateOnly(*filter.EndDate)) {
		return false
	}
	if filter.Status != nil {
		return b.Status == *filter.Status
	}
	return filter.IncludeInactive || b.IsActive()
}

// overlapsLocked проверяет пересечение с другими активными бронированиями провайдера на ту же дату.
// Вызывается под s.mu.
func (s *Store) overlapsLocked(candidate *domain.Booking) bool {
	for _, b := range s.bookings {
		if b.ID == candidate.ID || !b.IsActive() {
			continue
		}
		if b.ProviderID != candidate.ProviderID || !b.BookingDate.Equal(domain.DateOnly(candidate.BookingDate)) {
			continue
		}
		if b.Overlaps(candidate.StartTime.Minutes(), candidate.EndTime.Minutes()) {
			return true
		}
	}
	return false
}
