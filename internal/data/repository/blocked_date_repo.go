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

// ErrBlockRowMissing is returned when a blocked-date write matched no row;
// the record was deleted after the service-level lookup.
var ErrBlockRowMissing = fmt.Errorf("blocked date row not found")

// Conflicts carries the records a guarded date-range mutation collided with.
type Conflicts struct {
	Bookings []*entity.Booking
	Blocks   []*entity.BlockedDate
}

func (c *Conflicts) Any() bool {
	return c != nil && (len(c.Bookings) > 0 || len(c.Blocks) > 0)
}

type BlockedDateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BlockedDate, error)
	FindByPet(ctx context.Context, petID uuid.UUID) ([]*entity.BlockedDate, error)
	FindByPets(ctx context.Context, petIDs []uuid.UUID, rng entity.DateRange) ([]*entity.BlockedDate, error)

	// Occupancy query, uncapped like its booking counterpart.
	FindOverlapping(ctx context.Context, petID uuid.UUID, rng entity.DateRange, excludeID uuid.UUID) ([]*entity.BlockedDate, error)

	// Guarded mutators: one transaction, pet row locked, conflicts
	// re-checked against both active bookings and other blocks.
	CreateGuarded(ctx context.Context, block *entity.BlockedDate) (*Conflicts, error)
	UpdateGuarded(ctx context.Context, block *entity.BlockedDate) (*Conflicts, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type blockedDateRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBlockedDateRepository(db database.PgxIface, log *zap.Logger) BlockedDateRepository {
	return &blockedDateRepository{
		db:  db,
		log: log.With(zap.String("repository", "blocked_date")),
	}
}

const blockColumns = `id, pet_id, start_date, end_date, reason, notes, created_at, updated_at`

func scanBlock(row pgx.Row) (*entity.BlockedDate, error) {
	var b entity.BlockedDate
	err := row.Scan(
		&b.ID,
		&b.PetID,
		&b.DateRange.StartDate,
		&b.DateRange.EndDate,
		&b.Reason,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBlocks(rows pgx.Rows) ([]*entity.BlockedDate, error) {
	defer rows.Close()

	var blocks []*entity.BlockedDate
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blocked date row: %w", err)
		}
		blocks = append(blocks, block)
	}

	return blocks, rows.Err()
}

func (r *blockedDateRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BlockedDate, error) {
	query := `SELECT ` + blockColumns + ` FROM blocked_dates WHERE id = $1`

	block, err := scanBlock(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find blocked date by ID",
			zap.Error(err),
			zap.String("block_id", id.String()),
		)
		return nil, fmt.Errorf("find blocked date by ID %s: %w", id.String(), err)
	}

	return block, nil
}

func (r *blockedDateRepository) FindByPet(ctx context.Context, petID uuid.UUID) ([]*entity.BlockedDate, error) {
	query := `SELECT ` + blockColumns + ` FROM blocked_dates WHERE pet_id = $1 ORDER BY start_date`

	rows, err := r.db.Query(ctx, query, petID)
	if err != nil {
		r.log.Error("Failed to find blocked dates by pet",
			zap.Error(err),
			zap.String("pet_id", petID.String()),
		)
		return nil, fmt.Errorf("find blocked dates for pet %s: %w", petID.String(), err)
	}

	return collectBlocks(rows)
}

func (r *blockedDateRepository) FindByPets(ctx context.Context, petIDs []uuid.UUID, rng entity.DateRange) ([]*entity.BlockedDate, error) {
	if len(petIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + blockColumns + `
		FROM blocked_dates
		WHERE pet_id = ANY($1)
		  AND start_date <= $2
		  AND end_date >= $3
		ORDER BY start_date
	`

	rows, err := r.db.Query(ctx, query, petIDs, rng.EndDate, rng.StartDate)
	if err != nil {
		r.log.Error("Failed to find blocked dates by pets", zap.Error(err))
		return nil, fmt.Errorf("find blocked dates by pets: %w", err)
	}

	return collectBlocks(rows)
}

func (r *blockedDateRepository) FindOverlapping(ctx context.Context, petID uuid.UUID, rng entity.DateRange, excludeID uuid.UUID) ([]*entity.BlockedDate, error) {
	blocks, err := findOverlappingBlocks(ctx, r.db, petID, rng, excludeID)
	if err != nil {
		r.log.Error("Failed to find overlapping blocked dates",
			zap.Error(err),
			zap.String("pet_id", petID.String()),
			zap.String("range", rng.String()),
		)
		return nil, err
	}
	return blocks, nil
}

func findOverlappingBlocks(ctx context.Context, q database.Querier, petID uuid.UUID, rng entity.DateRange, excludeID uuid.UUID) ([]*entity.BlockedDate, error) {
	query := `
		SELECT ` + blockColumns + `
		FROM blocked_dates
		WHERE pet_id = $1
		  AND start_date <= $2
		  AND end_date >= $3
		  AND id != $4
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, petID, rng.EndDate, rng.StartDate, excludeID)
	if err != nil {
		return nil, fmt.Errorf("find overlapping blocks for pet %s: %w", petID.String(), err)
	}

	return collectBlocks(rows)
}

func (r *blockedDateRepository) CreateGuarded(ctx context.Context, block *entity.BlockedDate) (*Conflicts, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create block tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockPetRow(ctx, tx, block.PetID); err != nil {
		return nil, err
	}

	conflicts, err := conflictsWithin(ctx, tx, block.PetID, block.DateRange, uuid.Nil, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if conflicts.Any() {
		return conflicts, nil
	}

	query := `
		INSERT INTO blocked_dates (id, pet_id, start_date, end_date, reason, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, query,
		block.ID,
		block.PetID,
		block.DateRange.StartDate,
		block.DateRange.EndDate,
		block.Reason,
		block.Notes,
		block.CreatedAt,
		block.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create blocked date",
			zap.Error(err),
			zap.String("pet_id", block.PetID.String()),
		)
		return nil, fmt.Errorf("create blocked date for pet %s: %w", block.PetID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create blocked date: %w", err)
	}

	return nil, nil
}

func (r *blockedDateRepository) UpdateGuarded(ctx context.Context, block *entity.BlockedDate) (*Conflicts, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update block tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockPetRow(ctx, tx, block.PetID); err != nil {
		return nil, err
	}

	// The block being updated is excluded from its own conflict set.
	conflicts, err := conflictsWithin(ctx, tx, block.PetID, block.DateRange, uuid.Nil, block.ID)
	if err != nil {
		return nil, err
	}
	if conflicts.Any() {
		return conflicts, nil
	}

	query := `
		UPDATE blocked_dates
		SET start_date = $2, end_date = $3, reason = $4, notes = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query,
		block.ID,
		block.DateRange.StartDate,
		block.DateRange.EndDate,
		block.Reason,
		block.Notes,
		block.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update blocked date",
			zap.Error(err),
			zap.String("block_id", block.ID.String()),
		)
		return nil, fmt.Errorf("update blocked date %s: %w", block.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return nil, ErrBlockRowMissing
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update blocked date: %w", err)
	}

	return nil, nil
}

// conflictsWithin gathers active bookings and blocks overlapping the range,
// inside the caller's transaction. Both guarded mutator families use it so a
// booking can never slip past a block, nor a block past a booking.
func conflictsWithin(ctx context.Context, q database.Querier, petID uuid.UUID, rng entity.DateRange, excludeBookingID, excludeBlockID uuid.UUID) (*Conflicts, error) {
	bookings, err := findOverlappingBookings(ctx, q, petID, rng, excludeBookingID)
	if err != nil {
		return nil, err
	}

	blocks, err := findOverlappingBlocks(ctx, q, petID, rng, excludeBlockID)
	if err != nil {
		return nil, err
	}

	return &Conflicts{Bookings: bookings, Blocks: blocks}, nil
}

func (r *blockedDateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM blocked_dates WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete blocked date",
			zap.Error(err),
			zap.String("block_id", id.String()),
		)
		return fmt.Errorf("delete blocked date %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrBlockRowMissing
	}

	r.log.Info("Blocked date deleted", zap.String("block_id", id.String()))
	return nil
}
