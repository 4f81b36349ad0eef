package repository

import (
	"context"
	"fmt"

	"pet-rental/internal/data/entity"
	"pet-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PetSearchFilter narrows the public listing query. Zero values mean "any".
type PetSearchFilter struct {
	Species  string
	City     string
	PriceMin *float64
	PriceMax *float64
}

type PetRepository interface {
	Create(ctx context.Context, pet *entity.Pet) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Pet, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Pet, error)
	Search(ctx context.Context, filter PetSearchFilter, limit, offset int) ([]*entity.Pet, error)
	CountSearch(ctx context.Context, filter PetSearchFilter) (int64, error)
	Update(ctx context.Context, pet *entity.Pet) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

type petRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPetRepository(db database.PgxIface, log *zap.Logger) PetRepository {
	return &petRepository{
		db:  db,
		log: log.With(zap.String("repository", "pet")),
	}
}

const petColumns = `id, owner_id, name, species, breed, age_months, description, city,
	       daily_rate, listing_type, status, available_from, available_to, view_count,
	       created_at, updated_at, deleted_at`

func scanPet(row pgx.Row) (*entity.Pet, error) {
	var p entity.Pet
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.AgeMonths,
		&p.Description,
		&p.City,
		&p.DailyRate,
		&p.ListingType,
		&p.Status,
		&p.AvailableFrom,
		&p.AvailableTo,
		&p.ViewCount,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *petRepository) Create(ctx context.Context, pet *entity.Pet) error {
	query := `
		INSERT INTO pets (id, owner_id, name, species, breed, age_months, description, city,
		                  daily_rate, listing_type, status, available_from, available_to,
		                  view_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		pet.ID,
		pet.OwnerID,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.AgeMonths,
		pet.Description,
		pet.City,
		pet.DailyRate,
		pet.ListingType,
		pet.Status,
		pet.AvailableFrom,
		pet.AvailableTo,
		pet.ViewCount,
		pet.CreatedAt,
		pet.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create pet",
			zap.Error(err),
			zap.String("owner_id", pet.OwnerID.String()),
			zap.String("name", pet.Name),
		)
		return fmt.Errorf("create pet %s: %w", pet.Name, err)
	}

	return nil
}

func (r *petRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE id = $1 AND deleted_at IS NULL`

	pet, err := scanPet(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pet by ID",
			zap.Error(err),
			zap.String("pet_id", id.String()),
		)
		return nil, fmt.Errorf("find pet by ID %s: %w", id.String(), err)
	}

	return pet, nil
}

func (r *petRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE owner_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to find pets by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find pets by owner %s: %w", ownerID.String(), err)
	}

	return collectPets(rows)
}

func collectPets(rows pgx.Rows) ([]*entity.Pet, error) {
	defer rows.Close()

	var pets []*entity.Pet
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pet row: %w", err)
		}
		pets = append(pets, pet)
	}

	return pets, rows.Err()
}

func searchClauses(filter PetSearchFilter) (string, []any) {
	query := ` WHERE status = 'active' AND listing_type = 'rent' AND deleted_at IS NULL`
	var args []any

	if filter.Species != "" {
		args = append(args, filter.Species)
		query += fmt.Sprintf(` AND species ILIKE $%d`, len(args))
	}
	if filter.City != "" {
		args = append(args, filter.City)
		query += fmt.Sprintf(` AND city ILIKE $%d`, len(args))
	}
	if filter.PriceMin != nil {
		args = append(args, *filter.PriceMin)
		query += fmt.Sprintf(` AND daily_rate >= $%d`, len(args))
	}
	if filter.PriceMax != nil {
		args = append(args, *filter.PriceMax)
		query += fmt.Sprintf(` AND daily_rate <= $%d`, len(args))
	}

	return query, args
}

func (r *petRepository) Search(ctx context.Context, filter PetSearchFilter, limit, offset int) ([]*entity.Pet, error) {
	where, args := searchClauses(filter)
	query := `SELECT ` + petColumns + ` FROM pets` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to search pets", zap.Error(err))
		return nil, fmt.Errorf("search pets: %w", err)
	}

	return collectPets(rows)
}

func (r *petRepository) CountSearch(ctx context.Context, filter PetSearchFilter) (int64, error) {
	where, args := searchClauses(filter)
	query := `SELECT COUNT(*) FROM pets` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count pets", zap.Error(err))
		return 0, fmt.Errorf("count pets: %w", err)
	}

	return count, nil
}

func (r *petRepository) Update(ctx context.Context, pet *entity.Pet) error {
	query := `
		UPDATE pets
		SET name = $2, species = $3, breed = $4, age_months = $5, description = $6,
		    city = $7, daily_rate = $8, listing_type = $9, status = $10,
		    available_from = $11, available_to = $12, updated_at = $13
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		pet.ID,
		pet.Name,
		pet.Species,
		pet.Breed,
		pet.AgeMonths,
		pet.Description,
		pet.City,
		pet.DailyRate,
		pet.ListingType,
		pet.Status,
		pet.AvailableFrom,
		pet.AvailableTo,
		pet.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update pet",
			zap.Error(err),
			zap.String("pet_id", pet.ID.String()),
		)
		return fmt.Errorf("update pet %s: %w", pet.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pet %s not found", pet.ID.String())
	}

	return nil
}

func (r *petRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE pets SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete pet",
			zap.Error(err),
			zap.String("pet_id", id.String()),
		)
		return fmt.Errorf("delete pet %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pet %s not found", id.String())
	}

	r.log.Info("Pet deleted", zap.String("pet_id", id.String()))
	return nil
}

func (r *petRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE pets SET view_count = view_count + 1 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("increment view count for pet %s: %w", id.String(), err)
	}

	return nil
}
