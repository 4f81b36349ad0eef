package usecase

import (
	"context"
	"fmt"
	"time"

	"pet-rental/internal/data/entity"
	"pet-rental/internal/data/repository"
	"pet-rental/internal/dto/request"
	"pet-rental/internal/dto/response"
	"pet-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	// CreateReview lets a participant of a completed booking rate the pet.
	// One review per reviewer per booking.
	CreateReview(ctx context.Context, reviewerID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	ListPetReviews(ctx context.Context, petID string, page, perPage int) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetPetReviewStats(ctx context.Context, petID string) (*response.ReviewStatsResponse, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, reviewerID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newErr(CodeValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid booking ID format %s", req.BookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	if booking == nil {
		return nil, newErr(CodeNotFound, "booking %s not found", req.BookingID)
	}

	if booking.OwnerID != reviewerID && booking.RenterID != reviewerID {
		return nil, newErr(CodeForbidden, "you are not a participant of this booking")
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, newErr(CodeValidation, "only completed bookings can be reviewed")
	}

	existing, err := s.repo.Review.FindByBookingAndReviewer(ctx, bookingID, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	if existing != nil {
		return nil, newErr(CodeConflict, "you already reviewed this booking")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		BookingID:  bookingID,
		PetID:      booking.PetID,
		ReviewerID: reviewerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("booking_id", bookingID.String()),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) ListPetReviews(ctx context.Context, petID string, page, perPage int) (*response.PaginatedResponse[response.ReviewResponse], error) {
	petUUID, err := uuid.Parse(petID)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid pet ID format %s", petID)
	}

	pager := request.PaginatedRequest{Page: page, PerPage: perPage}

	reviews, err := s.repo.Review.FindByPet(ctx, petUUID, pager.Limit(), pager.Offset())
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountByPet(ctx, petUUID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	items := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		items[i] = response.ReviewToResponse(review)
	}

	return response.NewPaginatedResponse(items, page, pager.Limit(), total), nil
}

func (s *reviewService) GetPetReviewStats(ctx context.Context, petID string) (*response.ReviewStatsResponse, error) {
	petUUID, err := uuid.Parse(petID)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid pet ID format %s", petID)
	}

	count, err := s.repo.Review.CountByPet(ctx, petUUID)
	if err != nil {
		return nil, fmt.Errorf("review stats: %w", err)
	}

	avg, err := s.repo.Review.AverageRatingByPet(ctx, petUUID)
	if err != nil {
		return nil, fmt.Errorf("review stats: %w", err)
	}

	return &response.ReviewStatsResponse{
		PetID:         petID,
		ReviewCount:   int(count),
		AverageRating: avg,
	}, nil
}
