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

func TestCreatePet_WindowValidation(t *testing.T) {
	repo := &repository.Repository{Pet: &petRepoMock{}}
	svc := usecase.NewPetService(repo, zap.NewNop())

	from := "2026-06-01"
	to := "2026-05-01"
	_, err := svc.CreatePet(context.Background(), uuid.New(), &request.CreatePetRequest{
		Name:          "Biscuit",
		Species:       "dog",
		DailyRate:     40,
		ListingType:   "rent",
		AvailableFrom: &from,
		AvailableTo:   &to,
	})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeValidation, usecase.Code(err))
}

func TestDeletePet_BlockedByActiveBookings(t *testing.T) {
	petID := uuid.New()
	ownerID := uuid.New()

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
				return activePet(petID, ownerID), nil
			},
		},
		Booking: &bookingRepoMock{
			countPetActiveFn: func(ctx context.Context, id uuid.UUID) (int64, error) {
				return 2, nil
			},
		},
	}
	svc := usecase.NewPetService(repo, zap.NewNop())

	err := svc.DeletePet(context.Background(), ownerID, petID.String())
	require.Error(t, err)
	assert.Equal(t, usecase.CodeConflict, usecase.Code(err))
}

func TestDeletePet_Success(t *testing.T) {
	petID := uuid.New()
	ownerID := uuid.New()
	deleted := false

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
				return activePet(petID, ownerID), nil
			},
			deleteFn: func(ctx context.Context, id uuid.UUID) error {
				deleted = true
				return nil
			},
		},
		Booking: &bookingRepoMock{},
	}
	svc := usecase.NewPetService(repo, zap.NewNop())

	require.NoError(t, svc.DeletePet(context.Background(), ownerID, petID.String()))
	assert.True(t, deleted)
}

func TestUpdatePet_NotOwner(t *testing.T) {
	petID := uuid.New()

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
				return activePet(petID, uuid.New()), nil
			},
		},
	}
	svc := usecase.NewPetService(repo, zap.NewNop())

	name := "Rex"
	_, err := svc.UpdatePet(context.Background(), uuid.New(), petID.String(),
		&request.UpdatePetRequest{Name: &name})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeForbidden, usecase.Code(err))
}
