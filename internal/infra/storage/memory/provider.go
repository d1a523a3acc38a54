package memory

import (
	"context"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// ProviderRepository провайдеры и их услуги в памяти
type ProviderRepository struct {
	store *Store
}

// GetByID получает провайдера по ID
func (r *ProviderRepository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.providers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

// GetByUserID получает провайдера по учётной записи
func (r *ProviderRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.providers {
		if p.UserID == userID {
			return clone(p), nil
		}
	}
	return nil, ErrNotFound
}

// GetService получает услугу провайдера
func (r *ProviderRepository) GetService(ctx context.Context, providerID, serviceID int64) (*domain.ProviderService, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	svc, ok := r.store.services[serviceID]
	if !ok || svc.ProviderID != providerID {
		return nil, ErrNotFound
	}
	return clone(svc), nil
}

// PetRepository питомцы в памяти
type PetRepository struct {
	store *Store
}

// GetByID получает питомца по ID
func (r *PetRepository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.pets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(p), nil
}
