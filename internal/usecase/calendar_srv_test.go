package usecase_test

import (
	"context"
	"errors"
	"testing"

	"pet-rental/internal/data/entity"
	"pet-rental/internal/data/repository"
	"pet-rental/internal/dto/request"
	"pet-rental/internal/dto/response"
	"pet-rental/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetPetCalendar_Overlay(t *testing.T) {
	petID := uuid.New()
	blockID := uuid.New()
	bookingID := uuid.New()
	renterID := uuid.New()

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
				return activePet(petID, uuid.New()), nil
			},
		},
		Booking: &bookingRepoMock{
			findOverlappingFn: func(ctx context.Context, id uuid.UUID, rng entity.DateRange, excludeID uuid.UUID) ([]*entity.Booking, error) {
				return []*entity.Booking{{
					Base:      entity.Base{ID: bookingID},
					RenterID:  renterID,
					DateRange: testRange(t, "2026-03-12", "2026-03-14"),
					Status:    entity.BookingStatusAccepted,
				}}, nil
			},
		},
		BlockedDate: &blockedDateRepoMock{
			findOverlappingFn: func(ctx context.Context, id uuid.UUID, rng entity.DateRange, excludeID uuid.UUID) ([]*entity.BlockedDate, error) {
				return []*entity.BlockedDate{{
					BaseNoDelete: entity.BaseNoDelete{ID: blockID},
					DateRange:    testRange(t, "2026-03-11", "2026-03-13"),
					Reason:       entity.BlockReasonMaintenance,
				}}, nil
			},
		},
	}
	svc := usecase.NewCalendarService(repo, testConfig(), zap.NewNop())

	cal, err := svc.GetPetCalendar(context.Background(), petID.String(), "2026-03-10", "2026-03-15")
	require.NoError(t, err)
	require.Len(t, cal.Calendar, 6)

	byDate := make(map[string]response.CalendarDay)
	for _, day := range cal.Calendar {
		byDate[day.Date] = day
	}

	assert.Equal(t, response.DayAvailable, byDate["2026-03-10"].Status)
	assert.Equal(t, response.DayBlocked, byDate["2026-03-11"].Status)
	assert.Equal(t, "maintenance", byDate["2026-03-11"].Reason)

	// A day that is both blocked and booked reads as booked.
	assert.Equal(t, response.DayBooked, byDate["2026-03-12"].Status)
	assert.Equal(t, bookingID.String(), byDate["2026-03-12"].BookingID)
	assert.Equal(t, "accepted", byDate["2026-03-12"].BookingStatus)
	assert.Empty(t, byDate["2026-03-12"].Reason)

	assert.Equal(t, response.DayBooked, byDate["2026-03-14"].Status)
	assert.Equal(t, response.DayAvailable, byDate["2026-03-15"].Status)
}

func TestGetPetCalendar_SpanCap(t *testing.T) {
	repo := &repository.Repository{
		Pet: &petRepoMock{},
	}
	svc := usecase.NewCalendarService(repo, testConfig(), zap.NewNop())

	// 91 days with a 90-day cap.
	_, err := svc.GetPetCalendar(context.Background(), uuid.NewString(), "2026-03-01", "2026-05-30")
	require.Error(t, err)
	assert.Equal(t, usecase.CodeValidation, usecase.Code(err))
}

func TestCreateBlockedDate_NotOwner(t *testing.T) {
	petID := uuid.New()

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
				return activePet(petID, uuid.New()), nil
			},
		},
	}
	svc := usecase.NewCalendarService(repo, testConfig(), zap.NewNop())

	_, err := svc.CreateBlockedDate(context.Background(), uuid.New(), petID.String(),
		&request.CreateBlockedDateRequest{
			StartDate: "2026-03-10",
			EndDate:   "2026-03-14",
			Reason:    "maintenance",
		})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeForbidden, usecase.Code(err))
}

func TestCreateBlockedDate_BookingConflict(t *testing.T) {
	petID := uuid.New()
	ownerID := uuid.New()
	bookingID := uuid.New()

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
				return activePet(petID, ownerID), nil
			},
		},
		BlockedDate: &blockedDateRepoMock{
			createGuardedFn: func(ctx context.Context, block *entity.BlockedDate) (*repository.Conflicts, error) {
				return &repository.Conflicts{
					Bookings: []*entity.Booking{{
						Base:      entity.Base{ID: bookingID},
						DateRange: testRange(t, "2026-03-11", "2026-03-12"),
						Status:    entity.BookingStatusPending,
					}},
				}, nil
			},
		},
	}
	svc := usecase.NewCalendarService(repo, testConfig(), zap.NewNop())

	_, err := svc.CreateBlockedDate(context.Background(), ownerID, petID.String(),
		&request.CreateBlockedDateRequest{
			StartDate: "2026-03-10",
			EndDate:   "2026-03-14",
			Reason:    "personal",
		})
	require.Error(t, err)

	var conflict *usecase.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "dates already booked", conflict.Message)
	assert.Equal(t, []string{bookingID.String()}, conflict.BookingIDs)
	assert.Equal(t, []string{"2026-03-11", "2026-03-12"}, conflict.ConflictingDates)
}

func TestCreateBlockedDate_Success(t *testing.T) {
	petID := uuid.New()
	ownerID := uuid.New()

	var created *entity.BlockedDate

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
				return activePet(petID, ownerID), nil
			},
		},
		BlockedDate: &blockedDateRepoMock{
			createGuardedFn: func(ctx context.Context, block *entity.BlockedDate) (*repository.Conflicts, error) {
				created = block
				return nil, nil
			},
		},
	}
	svc := usecase.NewCalendarService(repo, testConfig(), zap.NewNop())

	resp, err := svc.CreateBlockedDate(context.Background(), ownerID, petID.String(),
		&request.CreateBlockedDateRequest{
			StartDate: "2026-03-10",
			EndDate:   "2026-03-14",
		})
	require.NoError(t, err)
	require.NotNil(t, created)

	// Missing reason defaults to "unavailable".
	assert.Equal(t, entity.BlockReasonUnavailable, created.Reason)
	assert.Equal(t, "2026-03-10", resp.StartDate)
	assert.Equal(t, "2026-03-14", resp.EndDate)
}

func TestUpdateBlockedDate_RowGone(t *testing.T) {
	petID := uuid.New()
	ownerID := uuid.New()
	blockID := uuid.New()

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
				return activePet(petID, ownerID), nil
			},
		},
		BlockedDate: &blockedDateRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.BlockedDate, error) {
				return &entity.BlockedDate{
					BaseNoDelete: entity.BaseNoDelete{ID: blockID},
					PetID:        petID,
					DateRange:    testRange(t, "2026-03-10", "2026-03-14"),
					Reason:       entity.BlockReasonPersonal,
				}, nil
			},
			updateGuardedFn: func(ctx context.Context, block *entity.BlockedDate) (*repository.Conflicts, error) {
				// Deleted between the read and the update.
				return nil, repository.ErrBlockRowMissing
			},
		},
	}
	svc := usecase.NewCalendarService(repo, testConfig(), zap.NewNop())

	_, err := svc.UpdateBlockedDate(context.Background(), ownerID, blockID.String(),
		&request.UpdateBlockedDateRequest{})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeNotFound, usecase.Code(err))
}

func TestDeleteBlockedDate_RowGone(t *testing.T) {
	petID := uuid.New()
	ownerID := uuid.New()
	blockID := uuid.New()

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
				return activePet(petID, ownerID), nil
			},
		},
		BlockedDate: &blockedDateRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.BlockedDate, error) {
				return &entity.BlockedDate{
					BaseNoDelete: entity.BaseNoDelete{ID: blockID},
					PetID:        petID,
					DateRange:    testRange(t, "2026-03-10", "2026-03-14"),
					Reason:       entity.BlockReasonPersonal,
				}, nil
			},
			deleteFn: func(ctx context.Context, id uuid.UUID) error {
				return repository.ErrBlockRowMissing
			},
		},
	}
	svc := usecase.NewCalendarService(repo, testConfig(), zap.NewNop())

	err := svc.DeleteBlockedDate(context.Background(), ownerID, blockID.String())
	require.Error(t, err)
	assert.Equal(t, usecase.CodeNotFound, usecase.Code(err))
}

func TestGetMySchedule_MergesAndSorts(t *testing.T) {
	userID := uuid.New()
	petID := uuid.New()

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByOwnerFn: func(ctx context.Context, ownerID uuid.UUID) ([]*entity.Pet, error) {
				pet := activePet(petID, userID)
				return []*entity.Pet{pet}, nil
			},
		},
		Booking: &bookingRepoMock{
			findForScheduleFn: func(ctx context.Context, id uuid.UUID, rng entity.DateRange, asOwner *bool) ([]*entity.Booking, error) {
				return []*entity.Booking{{
					Base:       entity.Base{ID: uuid.New()},
					PetID:      petID,
					DateRange:  testRange(t, "2026-03-20", "2026-03-22"),
					Status:     entity.BookingStatusAccepted,
					GrandTotal: 220,
				}}, nil
			},
		},
		BlockedDate: &blockedDateRepoMock{
			findByPetsFn: func(ctx context.Context, petIDs []uuid.UUID, rng entity.DateRange) ([]*entity.BlockedDate, error) {
				return []*entity.BlockedDate{{
					BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
					PetID:        petID,
					DateRange:    testRange(t, "2026-03-12", "2026-03-13"),
					Reason:       entity.BlockReasonPersonal,
				}}, nil
			},
		},
	}
	svc := usecase.NewCalendarService(repo, testConfig(), zap.NewNop())

	events, err := svc.GetMySchedule(context.Background(), userID, "2026-03-10", "2026-04-10", nil)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "blocked", events[0].EventType)
	assert.Equal(t, "2026-03-12", events[0].StartDate)
	assert.Equal(t, "booking", events[1].EventType)
	assert.Equal(t, "2026-03-20", events[1].StartDate)
	assert.Equal(t, "Biscuit", events[1].PetName)
}
