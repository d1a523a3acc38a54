package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/PetCare-BookingService/internal/config"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/PetCare-BookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/PetCare-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PetCare-BookingService/internal/infra/storage/memory"
	petRepo "github.com/m04kA/PetCare-BookingService/internal/infra/storage/pet"
	providerRepo "github.com/m04kA/PetCare-BookingService/internal/infra/storage/provider"
	"github.com/m04kA/PetCare-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetCare-BookingService/pkg/logger"
	"github.com/m04kA/PetCare-BookingService/pkg/metrics"
	"github.com/m04kA/PetCare-BookingService/pkg/txmanager"
)

type bookingStorage interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

type availabilityStorage interface {
	ListWindows(ctx context.Context, providerID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error)
	ListAllWindows(ctx context.Context, providerID int64) ([]*domain.AvailabilityWindow, error)
	GetWindow(ctx context.Context, id int64) (*domain.AvailabilityWindow, error)
	CreateWindow(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	UpdateWindow(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, providerID, id int64) error
	HasBlockedDate(ctx context.Context, providerID int64, date time.Time) (bool, error)
	CreateBlockedDate(ctx context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, providerID, id int64) error
	ListBlockedIntervals(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.BlockedInterval, error)
	CreateBlockedInterval(ctx context.Context, block *domain.BlockedInterval) (*domain.BlockedInterval, error)
	DeleteBlockedInterval(ctx context.Context, providerID, id int64) error
}

type providerStorage interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error)
	GetService(ctx context.Context, providerID, serviceID int64) (*domain.ProviderService, error)
}

type petStorage interface {
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage набор репозиториев выбранного драйвера
type storage struct {
	bookings     bookingStorage
	availability availabilityStorage
	providers    providerStorage
	pets         petStorage
	tx           txManager
	close        func()
}

func openStorage(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		return openMemory(cfg, log)
	default:
		return openPostgres(cfg, m, stopCh, log)
	}
}

func openPostgres(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrapped *dbmetrics.DB
	if m != nil {
		wrapped = dbmetrics.WrapWithDefault(db, m, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrapped = dbmetrics.Plain(db)
	}

	return &storage{
		bookings:     bookingRepo.NewRepository(wrapped),
		availability: availabilityRepo.NewRepository(wrapped),
		providers:    providerRepo.NewRepository(wrapped),
		pets:         petRepo.NewRepository(wrapped),
		tx:           txmanager.NewTransactionManager(wrapped, txmanager.WithErrorMapper(bookingRepo.MapTxError)),
		close: func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		},
	}, nil
}

func openMemory(cfg *config.Config, log *logger.Logger) (*storage, error) {
	store := memory.NewStore()

	if cfg.Storage.SeedFile != "" {
		if err := store.LoadSeedFile(cfg.Storage.SeedFile); err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
		log.Info("Memory storage seeded from %s", cfg.Storage.SeedFile)
	}
	log.Warn("Using in-memory storage, data will be lost on restart")

	return &storage{
		bookings:     store.Bookings(),
		availability: store.Availability(),
		providers:    store.Providers(),
		pets:         store.Pets(),
		tx:           store.TxManager(),
		close:        func() {},
	}, nil
}
