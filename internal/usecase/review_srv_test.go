package usecase_test

import (
	"context"
	"testing"

	"pet-rental/internal/data/entity"
	"pet-rental/internal/data/repository"
	"pet-rental/internal/dto/request"
	"pet-rental/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func completedBooking(bookingID, petID, ownerID, renterID uuid.UUID) *entity.Booking {
	return &entity.Booking{
		Base:     entity.Base{ID: bookingID},
		PetID:    petID,
		OwnerID:  ownerID,
		RenterID: renterID,
		Status:   entity.BookingStatusCompleted,
	}
}

func TestCreateReview_Success(t *testing.T) {
	bookingID := uuid.New()
	petID := uuid.New()
	renterID := uuid.New()

	var created *entity.Review

	repo := &repository.Repository{
		Booking: &bookingRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return completedBooking(bookingID, petID, uuid.New(), renterID), nil
			},
		},
		Review: &reviewRepoMock{
			createFn: func(ctx context.Context, review *entity.Review) error {
				created = review
				return nil
			},
		},
	}
	svc := usecase.NewReviewService(repo, zap.NewNop())

	resp, err := svc.CreateReview(context.Background(), renterID, &request.CreateReviewRequest{
		BookingID: bookingID.String(),
		Rating:    5,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, petID, created.PetID)
	assert.Equal(t, renterID, created.ReviewerID)
	assert.Equal(t, 5, resp.Rating)
}

func TestCreateReview_NotCompleted(t *testing.T) {
	bookingID := uuid.New()
	renterID := uuid.New()

	booking := completedBooking(bookingID, uuid.New(), uuid.New(), renterID)
	booking.Status = entity.BookingStatusAccepted

	repo := &repository.Repository{
		Booking: &bookingRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return booking, nil
			},
		},
	}
	svc := usecase.NewReviewService(repo, zap.NewNop())

	_, err := svc.CreateReview(context.Background(), renterID, &request.CreateReviewRequest{
		BookingID: bookingID.String(),
		Rating:    4,
	})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeValidation, usecase.Code(err))
}

func TestCreateReview_NotParticipant(t *testing.T) {
	bookingID := uuid.New()

	repo := &repository.Repository{
		Booking: &bookingRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return completedBooking(bookingID, uuid.New(), uuid.New(), uuid.New()), nil
			},
		},
	}
	svc := usecase.NewReviewService(repo, zap.NewNop())

	_, err := svc.CreateReview(context.Background(), uuid.New(), &request.CreateReviewRequest{
		BookingID: bookingID.String(),
		Rating:    3,
	})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeForbidden, usecase.Code(err))
}

func TestCreateReview_Duplicate(t *testing.T) {
	bookingID := uuid.New()
	renterID := uuid.New()

	repo := &repository.Repository{
		Booking: &bookingRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return completedBooking(bookingID, uuid.New(), uuid.New(), renterID), nil
			},
		},
		Review: &reviewRepoMock{
			findByBookingAndReviewerFn: func(ctx context.Context, bID, rID uuid.UUID) (*entity.Review, error) {
				return &entity.Review{BaseSimple: entity.BaseSimple{ID: uuid.New()}}, nil
			},
		},
	}
	svc := usecase.NewReviewService(repo, zap.NewNop())

	_, err := svc.CreateReview(context.Background(), renterID, &request.CreateReviewRequest{
		BookingID: bookingID.String(),
		Rating:    5,
	})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeConflict, usecase.Code(err))
}

func TestGetPetReviewStats(t *testing.T) {
	petID := uuid.New()

	repo := &repository.Repository{
		Review: &reviewRepoMock{
			countByPetFn: func(ctx context.Context, id uuid.UUID) (int64, error) {
				return 12, nil
			},
			averageRatingFn: func(ctx context.Context, id uuid.UUID) (float64, error) {
				return 4.25, nil
			},
		},
	}
	svc := usecase.NewReviewService(repo, zap.NewNop())

	stats, err := svc.GetPetReviewStats(context.Background(), petID.String())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.ReviewCount)
	assert.Equal(t, 4.25, stats.AverageRating)
}
