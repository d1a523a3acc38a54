package memory

import (
	"context"
	"slices"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// AvailabilityRepository расписание и блокировки в памяти
type AvailabilityRepository struct {
	store *Store
}

// ListWindows возвращает доступные окна на день недели, упорядоченные по началу и id
func (r *AvailabilityRepository) ListWindows(ctx context.Context, providerID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.AvailabilityWindow, 0)
	for _, w := range r.store.windows {
		if w.ProviderID == providerID && w.DayOfWeek == dayOfWeek && w.IsAvailable {
			result = append(result, clone(w))
		}
	}
	sortWindows(result)
	return result, nil
}

// ListAllWindows возвращает все окна провайдера, включая выключенные
func (r *AvailabilityRepository) ListAllWindows(ctx context.Context, providerID int64) ([]*domain.AvailabilityWindow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.AvailabilityWindow, 0)
	for _, w := range r.store.windows {
		if w.ProviderID == providerID {
			result = append(result, clone(w))
		}
	}
	sortWindows(result)
	return result, nil
}

// GetWindow получает окно по ID
func (r *AvailabilityRepository) GetWindow(ctx context.Context, id int64) (*domain.AvailabilityWindow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	w, ok := r.store.windows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(w), nil
}

// CreateWindow сохраняет новое окно
func (r *AvailabilityRepository) CreateWindow(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	var created *domain.AvailabilityWindow

	err := r.store.write(ctx, func() error {
		w := clone(window)
		w.ID = r.store.id()
		now := r.store.now()
		w.CreatedAt = now
		w.UpdatedAt = now

		r.store.windows[w.ID] = w
		created = clone(w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateWindow заменяет окно целиком
func (r *AvailabilityRepository) UpdateWindow(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	var updated *domain.AvailabilityWindow

	err := r.store.write(ctx, func() error {
		existing, ok := r.store.windows[window.ID]
		if !ok {
			return ErrNotFound
		}

		w := clone(window)
		w.CreatedAt = existing.CreatedAt
		w.UpdatedAt = r.store.now()

		r.store.windows[w.ID] = w
		updated = clone(w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteWindow удаляет окно провайдера; существующие бронирования не затрагиваются
func (r *AvailabilityRepository) DeleteWindow(ctx context.Context, providerID, id int64) error {
	return r.store.write(ctx, func() error {
		w, ok := r.store.windows[id]
		if !ok || w.ProviderID != providerID {
			return ErrNotFound
		}
		delete(r.store.windows, id)
		return nil
	})
}

// HasBlockedDate проверяет блокировку всего дня
func (r *AvailabilityRepository) HasBlockedDate(ctx context.Context, providerID int64, date time.Time) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	day := domain.DateOnly(date)
	for _, b := range r.store.blockedDates {
		if b.ProviderID == providerID && b.BlockedDate.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

// CreateBlockedDate блокирует день; повторная блокировка той же даты запрещена
func (r *AvailabilityRepository) CreateBlockedDate(ctx context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error) {
	var created *domain.BlockedDate

	err := r.store.write(ctx, func() error {
		day := domain.DateOnly(block.BlockedDate)
		for _, b := range r.store.blockedDates {
			if b.ProviderID == block.ProviderID && b.BlockedDate.Equal(day) {
				return ErrDuplicate
			}
		}

		b := clone(block)
		b.ID = r.store.id()
		b.BlockedDate = day
		b.CreatedAt = r.store.now()

		r.store.blockedDates[b.ID] = b
		created = clone(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteBlockedDate снимает блокировку дня
func (r *AvailabilityRepository) DeleteBlockedDate(ctx context.Context, providerID, id int64) error {
	return r.store.write(ctx, func() error {
		b, ok := r.store.blockedDates[id]
		if !ok || b.ProviderID != providerID {
			return ErrNotFound
		}
		delete(r.store.blockedDates, id)
		return nil
	})
}

// ListBlockedIntervals возвращает блокировки, пересекающие [from, to)
func (r *AvailabilityRepository) ListBlockedIntervals(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.BlockedInterval, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.BlockedInterval, 0)
	for _, b := range r.store.blockedIntervals {
		if b.ProviderID == providerID && b.BlockStart.Before(to) && b.BlockEnd.After(from) {
			result = append(result, clone(b))
		}
	}
	slices.SortFunc(result, func(a, b *domain.BlockedInterval) int {
		return a.BlockStart.Compare(b.BlockStart)
	})
	return result, nil
}

// CreateBlockedInterval сохраняет блокировку части дня
func (r *AvailabilityRepository) CreateBlockedInterval(ctx context.Context, block *domain.BlockedInterval) (*domain.BlockedInterval, error) {
	var created *domain.BlockedInterval

	err := r.store.write(ctx, func() error {
		b := clone(block)
		b.ID = r.store.id()
		b.CreatedAt = r.store.now()

		r.store.blockedIntervals[b.ID] = b
		created = clone(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteBlockedInterval снимает блокировку части дня
func (r *AvailabilityRepository) DeleteBlockedInterval(ctx context.Context, providerID, id int64) error {
	return r.store.write(ctx, func() error {
		b, ok := r.store.blockedIntervals[id]
		if !ok || b.ProviderID != providerID {
			return ErrNotFound
		}
		delete(r.store.blockedIntervals, id)
		return nil
	})
}

func sortWindows(windows []*domain.AvailabilityWindow) {
	slices.SortFunc(windows, func(a, b *domain.AvailabilityWindow) int {
		if c := a.DayOfWeek - b.DayOfWeek; c != 0 {
			return c
		}
		if c := a.StartTime.Minutes() - b.StartTime.Minutes(); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
}
