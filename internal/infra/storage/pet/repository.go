package pet

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

const petsTable = "pets"

var (
	// ErrPetNotFound возвращается, когда питомец не найден
	ErrPetNotFound = fmt.Errorf("%w: pet.repository: pet not found", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pet.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pet.repository: failed to scan row")
)

// Repository справочник питомцев
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает питомца по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "owner_id", "name").
		From(petsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Pet
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.OwnerID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan pet: %v", ErrScanRow, err)
	}

	return &p, nil
}
