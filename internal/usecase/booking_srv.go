package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"pet-rental/internal/data/entity"
	"pet-rental/internal/data/repository"
	"pet-rental/internal/dto/request"
	"pet-rental/internal/dto/response"
	"pet-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, renterID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, userID uuid.UUID, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBookingStatus(ctx context.Context, userID uuid.UUID, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	GetEarnings(ctx context.Context, ownerID uuid.UUID) (*response.EarningsResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, renterID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, newErr(CodeValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	petID, err := uuid.Parse(req.PetID)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid pet ID format %s", req.PetID)
	}

	rng, err := entity.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, newErr(CodeValidation, "%s", err.Error())
	}

	pet, err := s.repo.Pet.FindByID(ctx, petID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if pet == nil {
		return nil, newErr(CodeNotFound, "pet %s not found", req.PetID)
	}

	if pet.OwnerID == renterID {
		return nil, newErr(CodeValidation, "cannot book your own pet")
	}
	if pet.Status != entity.PetStatusActive || pet.ListingType != entity.ListingTypeRent {
		return nil, newErr(CodeUnavailable, "pet %s is not listed for rent", req.PetID)
	}

	if result := checkWindow(pet, rng); result != nil {
		return nil, newErr(CodeUnavailable, "%s", result.BlockedReason)
	}

	now := time.Now().UTC()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PetID:           pet.ID,
		OwnerID:         pet.OwnerID,
		RenterID:        renterID,
		DateRange:       rng,
		Status:          entity.BookingStatusPending,
		PaymentStatus:   entity.PaymentStatusPending,
		Message:         req.Message,
		SpecialRequests: req.SpecialRequests,
		PickupTime:      req.PickupTime,
		DropoffTime:     req.DropoffTime,
	}
	priceBooking(booking, pet.DailyRate, s.config.Booking.ServiceFeePercent)

	conflicts, err := s.repo.Booking.CreateGuarded(ctx, booking)
	if err == repository.ErrPetRowMissing {
		return nil, newErr(CodeNotFound, "pet %s not found", req.PetID)
	}
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if conflicts.Any() {
		return nil, conflictsToError(rng, conflicts)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("pet_id", pet.ID.String()),
		zap.String("range", rng.String()),
	)

	s.notify(ctx, pet.OwnerID, entity.NotificationBookingRequested,
		"New booking request",
		fmt.Sprintf("%s has a booking request for %s", pet.Name, rng.String()),
		booking.ID)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// priceBooking fills the money fields: nightly rate times inclusive days,
// plus the configurable platform fee.
func priceBooking(b *entity.Booking, dailyRate, feePercent float64) {
	b.TotalDays = b.DateRange.TotalDays()
	b.DailyRate = dailyRate
	b.TotalAmount = roundMoney(dailyRate * float64(b.TotalDays))
	b.ServiceFee = roundMoney(b.TotalAmount * feePercent)
	b.GrandTotal = roundMoney(b.TotalAmount + b.ServiceFee)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// conflictsToError turns a guarded-mutator refusal into a ConflictError.
// Booking collisions take precedence over block collisions so the client
// always learns about the harder conflict first.
func conflictsToError(rng entity.DateRange, conflicts *repository.Conflicts) error {
	if len(conflicts.Bookings) > 0 {
		result := bookingConflictResult(rng, conflicts.Bookings)
		return &ConflictError{
			Message:          result.BlockedReason,
			BookingIDs:       result.BookingIDs,
			ConflictingDates: result.ConflictingDates,
		}
	}

	result := blockConflictResult(rng, conflicts.Blocks)
	return &ConflictError{
		Message:          result.BlockedReason,
		BlockIDs:         result.BlockIDs,
		ConflictingDates: result.ConflictingDates,
	}
}

func (s *bookingService) GetBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.findParticipantBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// findParticipantBooking loads a booking and verifies the caller is its
// owner or renter.
func (s *bookingService) findParticipantBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, newErr(CodeNotFound, "booking %s not found", bookingID)
	}

	if booking.OwnerID != userID && booking.RenterID != userID {
		return nil, newErr(CodeForbidden, "you are not a participant of this booking")
	}

	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, userID uuid.UUID, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	status := entity.BookingStatus(req.Status)

	bookings, err := s.repo.Booking.FindByUser(ctx, userID, req.AsOwner, status, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUser(ctx, userID, req.AsOwner, status)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, userID uuid.UUID, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newErr(CodeValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.findParticipantBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	target := entity.BookingStatus(req.Status)
	if !booking.CanTransition(target) {
		return nil, newErr(CodeConflict, "cannot change booking status from %s to %s",
			booking.Status, target)
	}
	if entity.OwnerOnlyTransition(target) && booking.OwnerID != userID {
		return nil, newErr(CodeForbidden, "only the pet owner can set status %s", target)
	}

	conflicts, err := s.repo.Booking.UpdateStatusGuarded(ctx, booking.ID, target)
	var invalid *repository.InvalidTransitionError
	switch {
	case errors.As(err, &invalid):
		// The locked row disagreed with the copy read above: another
		// participant moved the booking first.
		return nil, newErr(CodeConflict, "cannot change booking status from %s to %s",
			invalid.From, invalid.To)
	case err == repository.ErrBookingRowMissing:
		return nil, newErr(CodeNotFound, "booking %s not found", bookingID)
	case err != nil:
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	if conflicts.Any() {
		return nil, conflictsToError(booking.DateRange, conflicts)
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(target)),
	)

	s.notifyTransition(ctx, booking, userID, target)

	booking.Status = target
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// notifyTransition tells the other participant what happened. Delivery is
// best effort.
func (s *bookingService) notifyTransition(ctx context.Context, booking *entity.Booking, actorID uuid.UUID, target entity.BookingStatus) {
	recipient := booking.RenterID
	if actorID == booking.RenterID {
		recipient = booking.OwnerID
	}

	var (
		kind  entity.NotificationType
		title string
	)
	switch target {
	case entity.BookingStatusAccepted:
		kind, title = entity.NotificationBookingAccepted, "Booking accepted"
	case entity.BookingStatusRejected:
		kind, title = entity.NotificationBookingRejected, "Booking rejected"
	case entity.BookingStatusCancelled:
		kind, title = entity.NotificationBookingCancelled, "Booking cancelled"
	case entity.BookingStatusInProgress:
		kind, title = entity.NotificationBookingStarted, "Booking started"
	case entity.BookingStatusCompleted:
		kind, title = entity.NotificationBookingCompleted, "Booking completed"
	default:
		return
	}

	s.notify(ctx, recipient, kind, title,
		fmt.Sprintf("Booking for %s is now %s", booking.DateRange.String(), target),
		booking.ID)
}

func (s *bookingService) notify(ctx context.Context, recipientID uuid.UUID, kind entity.NotificationType, title, message string, bookingID uuid.UUID) {
	n := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		RecipientID:     recipientID,
		Type:            kind,
		Title:           title,
		Message:         message,
		RelatedEntityID: &bookingID,
	}

	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.log.Warn("Failed to deliver notification",
			zap.Error(err),
			zap.String("recipient_id", recipientID.String()),
			zap.String("type", string(kind)),
		)
	}
}

func (s *bookingService) GetEarnings(ctx context.Context, ownerID uuid.UUID) (*response.EarningsResponse, error) {
	total, fees, count, err := s.repo.Booking.SumCompletedForOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get earnings: %w", err)
	}

	return &response.EarningsResponse{
		TotalEarnings:     roundMoney(total),
		TotalFeesPaid:     roundMoney(fees),
		CompletedBookings: count,
	}, nil
}
