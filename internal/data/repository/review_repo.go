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

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByBookingAndReviewer(ctx context.Context, bookingID, reviewerID uuid.UUID) (*entity.Review, error)
	FindByPet(ctx context.Context, petID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountByPet(ctx context.Context, petID uuid.UUID) (int64, error)
	AverageRatingByPet(ctx context.Context, petID uuid.UUID) (float64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `id, booking_id, pet_id, reviewer_id, rating, comment, created_at`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var rev entity.Review
	err := row.Scan(
		&rev.ID,
		&rev.BookingID,
		&rev.PetID,
		&rev.ReviewerID,
		&rev.Rating,
		&rev.Comment,
		&rev.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, booking_id, pet_id, reviewer_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.BookingID,
		review.PetID,
		review.ReviewerID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("booking_id", review.BookingID.String()),
		)
		return fmt.Errorf("create review for booking %s: %w", review.BookingID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByBookingAndReviewer(ctx context.Context, bookingID, reviewerID uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE booking_id = $1 AND reviewer_id = $2`

	review, err := scanReview(r.db.QueryRow(ctx, query, bookingID, reviewerID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find review by booking %s: %w", bookingID.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByPet(ctx context.Context, petID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE pet_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, petID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by pet",
			zap.Error(err),
			zap.String("pet_id", petID.String()),
		)
		return nil, fmt.Errorf("find reviews for pet %s: %w", petID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) CountByPet(ctx context.Context, petID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE pet_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, petID).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews by pet",
			zap.Error(err),
			zap.String("pet_id", petID.String()),
		)
		return 0, fmt.Errorf("count reviews for pet %s: %w", petID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) AverageRatingByPet(ctx context.Context, petID uuid.UUID) (float64, error) {
	query := `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE pet_id = $1`

	var avg float64
	if err := r.db.QueryRow(ctx, query, petID).Scan(&avg); err != nil {
		r.log.Error("Failed to average ratings by pet",
			zap.Error(err),
			zap.String("pet_id", petID.String()),
		)
		return 0, fmt.Errorf("average rating for pet %s: %w", petID.String(), err)
	}

	return avg, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	return nil
}
