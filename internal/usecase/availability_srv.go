package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pet-rental/internal/data/entity"
	"pet-rental/internal/data/repository"
	"pet-rental/internal/dto/response"
	"pet-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// CheckAvailability reports whether a pet is free for the whole closed
	// range. A negative answer names the reason, the exact conflicting days
	// and the colliding record ids.
	CheckAvailability(ctx context.Context, petID string, startDate, endDate string) (*response.AvailabilityResult, error)
}

type availabilityService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) CheckAvailability(ctx context.Context, petID string, startDate, endDate string) (*response.AvailabilityResult, error) {
	petUUID, err := uuid.Parse(petID)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid pet ID format %s", petID)
	}

	rng, err := entity.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, newErr(CodeValidation, "%s", err.Error())
	}

	// Same cap as the calendar projection: the conflicting-days payload
	// materializes every day of the span.
	if maxDays := s.config.Booking.CalendarMaxDays; rng.TotalDays() > maxDays {
		return nil, newErr(CodeValidation, "date range exceeds the %d-day maximum", maxDays)
	}

	pet, err := s.repo.Pet.FindByID(ctx, petUUID)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if pet == nil {
		return nil, newErr(CodeNotFound, "pet %s not found", petID)
	}

	if result := checkWindow(pet, rng); result != nil {
		return result, nil
	}

	bookings, err := s.repo.Booking.FindOverlapping(ctx, petUUID, rng, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if len(bookings) > 0 {
		return bookingConflictResult(rng, bookings), nil
	}

	blocks, err := s.repo.BlockedDate.FindOverlapping(ctx, petUUID, rng, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if len(blocks) > 0 {
		return blockConflictResult(rng, blocks), nil
	}

	return &response.AvailabilityResult{IsAvailable: true}, nil
}

// checkWindow verifies the request falls inside the pet's outer availability
// window; nil means the window poses no objection.
func checkWindow(pet *entity.Pet, rng entity.DateRange) *response.AvailabilityResult {
	ok, boundary, before := pet.WithinAvailabilityWindow(rng)
	if ok {
		return nil
	}

	reason := fmt.Sprintf("pet is only available until %s", entity.FormatDate(boundary))
	if before {
		reason = fmt.Sprintf("pet is only available from %s", entity.FormatDate(boundary))
	}
	return &response.AvailabilityResult{IsAvailable: false, BlockedReason: reason}
}

func bookingConflictResult(rng entity.DateRange, bookings []*entity.Booking) *response.AvailabilityResult {
	ranges := make([]entity.DateRange, len(bookings))
	ids := make([]string, len(bookings))
	for i, b := range bookings {
		ranges[i] = b.DateRange
		ids[i] = b.ID.String()
	}

	return &response.AvailabilityResult{
		IsAvailable:      false,
		BlockedReason:    "dates already booked",
		ConflictingDates: conflictingDays(rng, ranges),
		BookingIDs:       ids,
	}
}

func blockConflictResult(rng entity.DateRange, blocks []*entity.BlockedDate) *response.AvailabilityResult {
	ranges := make([]entity.DateRange, len(blocks))
	ids := make([]string, len(blocks))
	for i, b := range blocks {
		ranges[i] = b.DateRange
		ids[i] = b.ID.String()
	}

	return &response.AvailabilityResult{
		IsAvailable:      false,
		BlockedReason:    fmt.Sprintf("dates blocked by owner: %s", blocks[0].Reason),
		ConflictingDates: conflictingDays(rng, ranges),
		BlockIDs:         ids,
	}
}

// conflictingDays returns the sorted union of days where the requested range
// intersects any of the occupying ranges, formatted as YYYY-MM-DD.
func conflictingDays(rng entity.DateRange, occupied []entity.DateRange) []string {
	seen := make(map[time.Time]struct{})
	for _, o := range occupied {
		overlap, ok := rng.Intersect(o)
		if !ok {
			continue
		}
		for _, day := range overlap.Days() {
			seen[day] = struct{}{}
		}
	}

	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]string, len(days))
	for i, day := range days {
		out[i] = entity.FormatDate(day)
	}
	return out
}
