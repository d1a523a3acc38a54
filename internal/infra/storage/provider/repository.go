package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetCare-BookingService/pkg/psqlbuilder"
)

const (
	providersTable = "providers"
	servicesTable  = "provider_services"
)

// Repository справочник провайдеров и их услуг; только чтение
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает провайдера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	return r.getProvider(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUserID получает провайдера по учётной записи владельца
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error) {
	return r.getProvider(ctx, "GetByUserID", squirrel.Eq{"user_id": userID})
}

// GetService получает услугу провайдера; услуга другого провайдера считается не найденной
func (r *Repository) GetService(ctx context.Context, providerID, serviceID int64) (*domain.ProviderService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "provider_id", "name", "duration_minutes", "price", "is_active").
		From(servicesTable).
		Where(squirrel.Eq{"id": serviceID, "provider_id": providerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ProviderService
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.ProviderID,
		&s.Name,
		&s.DurationMinutes,
		&s.Price,
		&s.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &s, nil
}

func (r *Repository) getProvider(ctx context.Context, op string, where squirrel.Eq) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "name", "is_active").
		From(providersTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var p domain.Provider
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.UserID, &p.Name, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan provider: %v", ErrScanRow, op, err)
	}

	return &p, nil
}
