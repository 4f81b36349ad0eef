package usecase_test

import (
	"context"
	"errors"
	"testing"

	"pet-rental/internal/data/entity"
	"pet-rental/internal/data/repository"
	"pet-rental/internal/dto/request"
	"pet-rental/internal/usecase"
	"pet-rental/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Booking: utils.BookingConfig{
			ServiceFeePercent: 0.10,
			CalendarMaxDays:   90,
		},
	}
}

func TestCreateBooking_Pricing(t *testing.T) {
	petID := uuid.New()
	ownerID := uuid.New()
	renterID := uuid.New()

	var created *entity.Booking
	var notified *entity.Notification

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
				return activePet(petID, ownerID), nil
			},
		},
		Booking: &bookingRepoMock{
			createGuardedFn: func(ctx context.Context, booking *entity.Booking) (*repository.Conflicts, error) {
				created = booking
				return nil, nil
			},
		},
		Notification: &notificationRepoMock{
			createFn: func(ctx context.Context, n *entity.Notification) error {
				notified = n
				return nil
			},
		},
	}
	svc := usecase.NewBookingService(repo, testConfig(), zap.NewNop())

	resp, err := svc.CreateBooking(context.Background(), renterID, &request.CreateBookingRequest{
		PetID:     petID.String(),
		StartDate: "2026-03-10",
		EndDate:   "2026-03-14",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	// 5 inclusive days at 40/day plus the 10% fee.
	assert.Equal(t, 5, created.TotalDays)
	assert.Equal(t, 200.0, created.TotalAmount)
	assert.Equal(t, 20.0, created.ServiceFee)
	assert.Equal(t, 220.0, created.GrandTotal)
	assert.Equal(t, entity.BookingStatusPending, created.Status)
	assert.Equal(t, ownerID, created.OwnerID)

	assert.Equal(t, 220.0, resp.GrandTotal)
	assert.Equal(t, "2026-03-10", resp.StartDate)

	require.NotNil(t, notified)
	assert.Equal(t, ownerID, notified.RecipientID)
	assert.Equal(t, entity.NotificationBookingRequested, notified.Type)
}

func TestCreateBooking_OwnPet(t *testing.T) {
	petID := uuid.New()
	ownerID := uuid.New()

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
				return activePet(petID, ownerID), nil
			},
		},
	}
	svc := usecase.NewBookingService(repo, testConfig(), zap.NewNop())

	_, err := svc.CreateBooking(context.Background(), ownerID, &request.CreateBookingRequest{
		PetID:     petID.String(),
		StartDate: "2026-03-10",
		EndDate:   "2026-03-14",
	})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeValidation, usecase.Code(err))
}

func TestCreateBooking_OutsideWindow(t *testing.T) {
	petID := uuid.New()
	pet := activePet(petID, uuid.New())
	to := parseDay(t, "2026-03-12")
	pet.AvailableTo = &to

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
				return pet, nil
			},
		},
	}
	svc := usecase.NewBookingService(repo, testConfig(), zap.NewNop())

	_, err := svc.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		PetID:     petID.String(),
		StartDate: "2026-03-10",
		EndDate:   "2026-03-14",
	})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeUnavailable, usecase.Code(err))
	assert.Contains(t, err.Error(), "2026-03-12")
}

func TestCreateBooking_Conflict(t *testing.T) {
	petID := uuid.New()
	conflictID := uuid.New()

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
				return activePet(petID, uuid.New()), nil
			},
		},
		Booking: &bookingRepoMock{
			createGuardedFn: func(ctx context.Context, booking *entity.Booking) (*repository.Conflicts, error) {
				return &repository.Conflicts{
					Bookings: []*entity.Booking{{
						Base:      entity.Base{ID: conflictID},
						DateRange: testRange(t, "2026-03-12", "2026-03-13"),
						Status:    entity.BookingStatusAccepted,
					}},
				}, nil
			},
		},
	}
	svc := usecase.NewBookingService(repo, testConfig(), zap.NewNop())

	_, err := svc.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		PetID:     petID.String(),
		StartDate: "2026-03-10",
		EndDate:   "2026-03-14",
	})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeConflict, usecase.Code(err))

	var conflict *usecase.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "dates already booked", conflict.Message)
	assert.Equal(t, []string{conflictID.String()}, conflict.BookingIDs)
	assert.Equal(t, []string{"2026-03-12", "2026-03-13"}, conflict.ConflictingDates)
}

func TestUpdateBookingStatus_RenterCannotAccept(t *testing.T) {
	ownerID := uuid.New()
	renterID := uuid.New()
	bookingID := uuid.New()

	repo := &repository.Repository{
		Booking: &bookingRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return &entity.Booking{
					Base:      entity.Base{ID: bookingID},
					OwnerID:   ownerID,
					RenterID:  renterID,
					DateRange: testRange(t, "2026-03-10", "2026-03-14"),
					Status:    entity.BookingStatusPending,
				}, nil
			},
		},
	}
	svc := usecase.NewBookingService(repo, testConfig(), zap.NewNop())

	_, err := svc.UpdateBookingStatus(context.Background(), renterID, bookingID.String(),
		&request.UpdateBookingStatusRequest{Status: "accepted"})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeForbidden, usecase.Code(err))
}

func TestUpdateBookingStatus_InvalidTransition(t *testing.T) {
	ownerID := uuid.New()
	bookingID := uuid.New()

	repo := &repository.Repository{
		Booking: &bookingRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return &entity.Booking{
					Base:      entity.Base{ID: bookingID},
					OwnerID:   ownerID,
					RenterID:  uuid.New(),
					DateRange: testRange(t, "2026-03-10", "2026-03-14"),
					Status:    entity.BookingStatusPending,
				}, nil
			},
		},
	}
	svc := usecase.NewBookingService(repo, testConfig(), zap.NewNop())

	_, err := svc.UpdateBookingStatus(context.Background(), ownerID, bookingID.String(),
		&request.UpdateBookingStatusRequest{Status: "completed"})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeConflict, usecase.Code(err))
}

func TestUpdateBookingStatus_RenterCancels(t *testing.T) {
	ownerID := uuid.New()
	renterID := uuid.New()
	bookingID := uuid.New()

	var updatedTo entity.BookingStatus
	var notified *entity.Notification

	repo := &repository.Repository{
		Booking: &bookingRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return &entity.Booking{
					Base:      entity.Base{ID: bookingID},
					OwnerID:   ownerID,
					RenterID:  renterID,
					DateRange: testRange(t, "2026-03-10", "2026-03-14"),
					Status:    entity.BookingStatusAccepted,
				}, nil
			},
			updateStatusGuardedFn: func(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*repository.Conflicts, error) {
				updatedTo = status
				return nil, nil
			},
		},
		Notification: &notificationRepoMock{
			createFn: func(ctx context.Context, n *entity.Notification) error {
				notified = n
				return nil
			},
		},
	}
	svc := usecase.NewBookingService(repo, testConfig(), zap.NewNop())

	resp, err := svc.UpdateBookingStatus(context.Background(), renterID, bookingID.String(),
		&request.UpdateBookingStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusCancelled, updatedTo)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)

	// The owner hears about the renter's cancellation.
	require.NotNil(t, notified)
	assert.Equal(t, ownerID, notified.RecipientID)
	assert.Equal(t, entity.NotificationBookingCancelled, notified.Type)
}

func TestUpdateBookingStatus_AcceptRaceConflict(t *testing.T) {
	ownerID := uuid.New()
	bookingID := uuid.New()
	otherID := uuid.New()

	repo := &repository.Repository{
		Booking: &bookingRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return &entity.Booking{
					Base:      entity.Base{ID: bookingID},
					OwnerID:   ownerID,
					RenterID:  uuid.New(),
					DateRange: testRange(t, "2026-03-10", "2026-03-14"),
					Status:    entity.BookingStatusPending,
				}, nil
			},
			updateStatusGuardedFn: func(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*repository.Conflicts, error) {
				return &repository.Conflicts{
					Bookings: []*entity.Booking{{
						Base:      entity.Base{ID: otherID},
						DateRange: testRange(t, "2026-03-11", "2026-03-12"),
						Status:    entity.BookingStatusAccepted,
					}},
				}, nil
			},
		},
	}
	svc := usecase.NewBookingService(repo, testConfig(), zap.NewNop())

	_, err := svc.UpdateBookingStatus(context.Background(), ownerID, bookingID.String(),
		&request.UpdateBookingStatusRequest{Status: "accepted"})
	require.Error(t, err)

	var conflict *usecase.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []string{otherID.String()}, conflict.BookingIDs)
}

func TestUpdateBookingStatus_StaleAcceptAfterCancel(t *testing.T) {
	ownerID := uuid.New()
	bookingID := uuid.New()

	// The service reads a pending booking, but by the time the row is
	// locked a cancel has already committed. The transition check on the
	// locked row must win over the stale read.
	repo := &repository.Repository{
		Booking: &bookingRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return &entity.Booking{
					Base:      entity.Base{ID: bookingID},
					OwnerID:   ownerID,
					RenterID:  uuid.New(),
					DateRange: testRange(t, "2026-03-10", "2026-03-14"),
					Status:    entity.BookingStatusPending,
				}, nil
			},
			updateStatusGuardedFn: func(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*repository.Conflicts, error) {
				return nil, &repository.InvalidTransitionError{
					From: entity.BookingStatusCancelled,
					To:   entity.BookingStatusAccepted,
				}
			},
		},
	}
	svc := usecase.NewBookingService(repo, testConfig(), zap.NewNop())

	_, err := svc.UpdateBookingStatus(context.Background(), ownerID, bookingID.String(),
		&request.UpdateBookingStatusRequest{Status: "accepted"})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeConflict, usecase.Code(err))
	assert.Contains(t, err.Error(), "cancelled")
}

func TestUpdateBookingStatus_RowGone(t *testing.T) {
	ownerID := uuid.New()
	bookingID := uuid.New()

	repo := &repository.Repository{
		Booking: &bookingRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return &entity.Booking{
					Base:      entity.Base{ID: bookingID},
					OwnerID:   ownerID,
					RenterID:  uuid.New(),
					DateRange: testRange(t, "2026-03-10", "2026-03-14"),
					Status:    entity.BookingStatusPending,
				}, nil
			},
			updateStatusGuardedFn: func(ctx context.Context, id uuid.UUID, status entity.BookingStatus) (*repository.Conflicts, error) {
				return nil, repository.ErrBookingRowMissing
			},
		},
	}
	svc := usecase.NewBookingService(repo, testConfig(), zap.NewNop())

	_, err := svc.UpdateBookingStatus(context.Background(), ownerID, bookingID.String(),
		&request.UpdateBookingStatusRequest{Status: "accepted"})
	require.Error(t, err)
	assert.Equal(t, usecase.CodeNotFound, usecase.Code(err))
}

func TestCreateBooking_KeepsSpecialRequests(t *testing.T) {
	petID := uuid.New()

	var created *entity.Booking

	repo := &repository.Repository{
		Pet: &petRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
				return activePet(petID, uuid.New()), nil
			},
		},
		Booking: &bookingRepoMock{
			createGuardedFn: func(ctx context.Context, booking *entity.Booking) (*repository.Conflicts, error) {
				created = booking
				return nil, nil
			},
		},
		Notification: &notificationRepoMock{},
	}
	svc := usecase.NewBookingService(repo, testConfig(), zap.NewNop())

	wants := "two walks a day, no dry food"
	resp, err := svc.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		PetID:           petID.String(),
		StartDate:       "2026-03-10",
		EndDate:         "2026-03-14",
		SpecialRequests: &wants,
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	require.NotNil(t, created.SpecialRequests)
	assert.Equal(t, wants, *created.SpecialRequests)

	require.NotNil(t, resp.SpecialRequests)
	assert.Equal(t, wants, *resp.SpecialRequests)
}

func TestGetBooking_ForbiddenForStranger(t *testing.T) {
	bookingID := uuid.New()

	repo := &repository.Repository{
		Booking: &bookingRepoMock{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
				return &entity.Booking{
					Base:     entity.Base{ID: bookingID},
					OwnerID:  uuid.New(),
					RenterID: uuid.New(),
					Status:   entity.BookingStatusPending,
				}, nil
			},
		},
	}
	svc := usecase.NewBookingService(repo, testConfig(), zap.NewNop())

	_, err := svc.GetBooking(context.Background(), uuid.New(), bookingID.String())
	require.Error(t, err)
	assert.Equal(t, usecase.CodeForbidden, usecase.Code(err))
}

func TestGetEarnings(t *testing.T) {
	ownerID := uuid.New()

	repo := &repository.Repository{
		Booking: &bookingRepoMock{
			sumCompletedFn: func(ctx context.Context, id uuid.UUID) (float64, float64, int64, error) {
				assert.Equal(t, ownerID, id)
				return 1250.5, 125.05, 7, nil
			},
		},
	}
	svc := usecase.NewBookingService(repo, testConfig(), zap.NewNop())

	earnings, err := svc.GetEarnings(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1250.5, earnings.TotalEarnings)
	assert.Equal(t, 125.05, earnings.TotalFeesPaid)
	assert.Equal(t, int64(7), earnings.CompletedBookings)
}
