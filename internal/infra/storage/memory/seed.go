package memory

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/types"
)

// Seed справочные данные для локального запуска без БД
type Seed struct {
	Providers []SeedProvider `toml:"providers"`
	Services  []SeedService  `toml:"services"`
	Pets      []SeedPet      `toml:"pets"`
	Windows   []SeedWindow   `toml:"windows"`
}

type SeedProvider struct {
	ID     int64  `toml:"id"`
	UserID int64  `toml:"user_id"`
	Name   string `toml:"name"`
}

type SeedService struct {
	ID              int64   `toml:"id"`
	ProviderID      int64   `toml:"provider_id"`
	Name            string  `toml:"name"`
	DurationMinutes int     `toml:"duration_minutes"`
	Price           float64 `toml:"price"`
}

type SeedPet struct {
	ID      int64  `toml:"id"`
	OwnerID int64  `toml:"owner_id"`
	Name    string `toml:"name"`
}

type SeedWindow struct {
	ProviderID          int64  `toml:"provider_id"`
	DayOfWeek           int    `toml:"day_of_week"`
	StartTime           string `toml:"start_time"`
	EndTime             string `toml:"end_time"`
	SlotDurationMinutes int    `toml:"slot_duration_minutes"`
	BufferMinutes       int    `toml:"buffer_minutes"`
}

// LoadSeedFile читает TOML-файл и заполняет хранилище
func (s *Store) LoadSeedFile(path string) error {
	var seed Seed
	if _, err := toml.DecodeFile(path, &seed); err != nil {
		return fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}
	return s.LoadSeed(seed)
}

// LoadSeed заполняет хранилище; окна проходят ту же валидацию, что и через API
func (s *Store) LoadSeed(seed Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range seed.Providers {
		s.reserveID(p.ID)
		s.providers[p.ID] = &domain.Provider{ID: p.ID, UserID: p.UserID, Name: p.Name, IsActive: true}
	}
	for _, svc := range seed.Services {
		s.reserveID(svc.ID)
		s.services[svc.ID] = &domain.ProviderService{
			ID:              svc.ID,
			ProviderID:      svc.ProviderID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
			IsActive:        true,
		}
	}
	for _, p := range seed.Pets {
		s.reserveID(p.ID)
		s.pets[p.ID] = &domain.Pet{ID: p.ID, OwnerID: p.OwnerID, Name: p.Name}
	}

	for i, sw := range seed.Windows {
		start, err := types.NewTimeStringFromString(sw.StartTime)
		if err != nil {
			return fmt.Errorf("seed window #%d: %w", i, err)
		}
		end, err := types.NewTimeStringFromString(sw.EndTime)
		if err != nil {
			return fmt.Errorf("seed window #%d: %w", i, err)
		}

		w := &domain.AvailabilityWindow{
			ProviderID:          sw.ProviderID,
			DayOfWeek:           sw.DayOfWeek,
			StartTime:           start,
			EndTime:             end,
			IsAvailable:         true,
			SlotDurationMinutes: sw.SlotDurationMinutes,
			BufferMinutes:       sw.BufferMinutes,
		}
		if err := w.Validate(); err != nil {
			return fmt.Errorf("seed window #%d: %w", i, err)
		}

		w.ID = s.id()
		w.CreatedAt = s.now()
		w.UpdatedAt = w.CreatedAt
		s.windows[w.ID] = w
	}

	return nil
}
