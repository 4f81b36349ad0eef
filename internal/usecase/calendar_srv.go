package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pet-rental/internal/data/entity"
	"pet-rental/internal/data/repository"
	"pet-rental/internal/dto/request"
	"pet-rental/internal/dto/response"
	"pet-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CalendarService interface {
	// GetPetCalendar projects the pet's bookings and blocks onto a per-day
	// status list. The span is capped by configuration.
	GetPetCalendar(ctx context.Context, petID string, startDate, endDate string) (*response.PetCalendarResponse, error)

	CreateBlockedDate(ctx context.Context, ownerID uuid.UUID, petID string, req *request.CreateBlockedDateRequest) (*response.BlockedDateResponse, error)
	UpdateBlockedDate(ctx context.Context, ownerID uuid.UUID, blockID string, req *request.UpdateBlockedDateRequest) (*response.BlockedDateResponse, error)
	DeleteBlockedDate(ctx context.Context, ownerID uuid.UUID, blockID string) error
	ListBlockedDates(ctx context.Context, ownerID uuid.UUID, petID string) ([]response.BlockedDateResponse, error)

	// GetMySchedule merges the user's bookings with the blocks on their own
	// pets into one chronological event list.
	GetMySchedule(ctx context.Context, userID uuid.UUID, startDate, endDate string, asOwner *bool) ([]response.ScheduleEvent, error)
}

type calendarService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewCalendarService(repo *repository.Repository, config *utils.Config, log *zap.Logger) CalendarService {
	return &calendarService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "calendar")),
	}
}

// parseSpan resolves an optional date pair into a capped range. Missing
// start defaults to today; missing end defaults to start plus the cap.
func (s *calendarService) parseSpan(startDate, endDate string) (entity.DateRange, error) {
	maxDays := s.config.Booking.CalendarMaxDays

	start := entity.NormalizeDate(time.Now().UTC())
	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return entity.DateRange{}, newErr(CodeValidation, "invalid start_date %q", startDate)
		}
		start = entity.NormalizeDate(parsed)
	}

	end := start.AddDate(0, 0, maxDays-1)
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return entity.DateRange{}, newErr(CodeValidation, "invalid end_date %q", endDate)
		}
		end = entity.NormalizeDate(parsed)
	}

	rng, err := entity.NewDateRange(start, end)
	if err != nil {
		return entity.DateRange{}, newErr(CodeValidation, "%s", err.Error())
	}

	if rng.TotalDays() > maxDays {
		return entity.DateRange{}, newErr(CodeValidation,
			"date range exceeds the %d-day maximum", maxDays)
	}

	return rng, nil
}

func (s *calendarService) GetPetCalendar(ctx context.Context, petID string, startDate, endDate string) (*response.PetCalendarResponse, error) {
	petUUID, err := uuid.Parse(petID)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid pet ID format %s", petID)
	}

	rng, err := s.parseSpan(startDate, endDate)
	if err != nil {
		return nil, err
	}

	pet, err := s.repo.Pet.FindByID(ctx, petUUID)
	if err != nil {
		return nil, fmt.Errorf("get pet calendar: %w", err)
	}
	if pet == nil {
		return nil, newErr(CodeNotFound, "pet %s not found", petID)
	}

	blocks, err := s.repo.BlockedDate.FindOverlapping(ctx, petUUID, rng, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("get pet calendar: %w", err)
	}

	bookings, err := s.repo.Booking.FindOverlapping(ctx, petUUID, rng, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("get pet calendar: %w", err)
	}

	return &response.PetCalendarResponse{
		PetID:     pet.ID.String(),
		PetName:   pet.Name,
		StartDate: entity.FormatDate(rng.StartDate),
		EndDate:   entity.FormatDate(rng.EndDate),
		Calendar:  projectCalendar(rng, blocks, bookings),
	}, nil
}

// projectCalendar overlays blocks and then bookings on top of an
// all-available baseline, so a day both blocked and booked reads as booked.
func projectCalendar(rng entity.DateRange, blocks []*entity.BlockedDate, bookings []*entity.Booking) []response.CalendarDay {
	days := rng.Days()
	calendar := make([]response.CalendarDay, len(days))
	index := make(map[time.Time]int, len(days))

	for i, day := range days {
		calendar[i] = response.CalendarDay{
			Date:   entity.FormatDate(day),
			Status: response.DayAvailable,
		}
		index[day] = i
	}

	for _, block := range blocks {
		overlap, ok := rng.Intersect(block.DateRange)
		if !ok {
			continue
		}
		for _, day := range overlap.Days() {
			i := index[day]
			calendar[i].Status = response.DayBlocked
			calendar[i].Reason = string(block.Reason)
			calendar[i].BlockID = block.ID.String()
		}
	}

	for _, booking := range bookings {
		overlap, ok := rng.Intersect(booking.DateRange)
		if !ok {
			continue
		}
		for _, day := range overlap.Days() {
			i := index[day]
			calendar[i] = response.CalendarDay{
				Date:          calendar[i].Date,
				Status:        response.DayBooked,
				BookingID:     booking.ID.String(),
				BookingStatus: string(booking.Status),
				RenterID:      booking.RenterID.String(),
			}
		}
	}

	return calendar
}

// ownedPet loads a pet and verifies the caller owns it.
func (s *calendarService) ownedPet(ctx context.Context, ownerID uuid.UUID, petID uuid.UUID) (*entity.Pet, error) {
	pet, err := s.repo.Pet.FindByID(ctx, petID)
	if err != nil {
		return nil, fmt.Errorf("find pet: %w", err)
	}
	if pet == nil {
		return nil, newErr(CodeNotFound, "pet %s not found", petID.String())
	}
	if pet.OwnerID != ownerID {
		return nil, newErr(CodeForbidden, "you do not own this pet")
	}
	return pet, nil
}

func (s *calendarService) CreateBlockedDate(ctx context.Context, ownerID uuid.UUID, petID string, req *request.CreateBlockedDateRequest) (*response.BlockedDateResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newErr(CodeValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	petUUID, err := uuid.Parse(petID)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid pet ID format %s", petID)
	}

	rng, err := entity.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, newErr(CodeValidation, "%s", err.Error())
	}

	if _, err := s.ownedPet(ctx, ownerID, petUUID); err != nil {
		return nil, err
	}

	reason := entity.BlockReason(req.Reason)
	if reason == "" {
		reason = entity.BlockReasonUnavailable
	}

	now := time.Now().UTC()
	block := &entity.BlockedDate{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PetID:     petUUID,
		DateRange: rng,
		Reason:    reason,
		Notes:     req.Notes,
	}

	conflicts, err := s.repo.BlockedDate.CreateGuarded(ctx, block)
	if err == repository.ErrPetRowMissing {
		return nil, newErr(CodeNotFound, "pet %s not found", petID)
	}
	if err != nil {
		return nil, fmt.Errorf("create blocked date: %w", err)
	}
	if conflicts.Any() {
		return nil, conflictsToError(rng, conflicts)
	}

	s.log.Info("Blocked date created",
		zap.String("block_id", block.ID.String()),
		zap.String("pet_id", petUUID.String()),
		zap.String("range", rng.String()),
	)

	resp := response.BlockedDateToResponse(block)
	return &resp, nil
}

func (s *calendarService) UpdateBlockedDate(ctx context.Context, ownerID uuid.UUID, blockID string, req *request.UpdateBlockedDateRequest) (*response.BlockedDateResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newErr(CodeValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	blockUUID, err := uuid.Parse(blockID)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid block ID format %s", blockID)
	}

	block, err := s.repo.BlockedDate.FindByID(ctx, blockUUID)
	if err != nil {
		return nil, fmt.Errorf("update blocked date: %w", err)
	}
	if block == nil {
		return nil, newErr(CodeNotFound, "blocked date %s not found", blockID)
	}

	if _, err := s.ownedPet(ctx, ownerID, block.PetID); err != nil {
		return nil, err
	}

	start := entity.FormatDate(block.DateRange.StartDate)
	if req.StartDate != nil {
		start = *req.StartDate
	}
	end := entity.FormatDate(block.DateRange.EndDate)
	if req.EndDate != nil {
		end = *req.EndDate
	}

	rng, err := entity.ParseDateRange(start, end)
	if err != nil {
		return nil, newErr(CodeValidation, "%s", err.Error())
	}
	block.DateRange = rng

	if req.Reason != nil {
		block.Reason = entity.BlockReason(*req.Reason)
	}
	if req.Notes != nil {
		block.Notes = req.Notes
	}
	block.UpdatedAt = time.Now().UTC()

	conflicts, err := s.repo.BlockedDate.UpdateGuarded(ctx, block)
	if err == repository.ErrBlockRowMissing {
		return nil, newErr(CodeNotFound, "blocked date %s not found", blockID)
	}
	if err != nil {
		return nil, fmt.Errorf("update blocked date: %w", err)
	}
	if conflicts.Any() {
		return nil, conflictsToError(rng, conflicts)
	}

	resp := response.BlockedDateToResponse(block)
	return &resp, nil
}

func (s *calendarService) DeleteBlockedDate(ctx context.Context, ownerID uuid.UUID, blockID string) error {
	blockUUID, err := uuid.Parse(blockID)
	if err != nil {
		return newErr(CodeValidation, "invalid block ID format %s", blockID)
	}

	block, err := s.repo.BlockedDate.FindByID(ctx, blockUUID)
	if err != nil {
		return fmt.Errorf("delete blocked date: %w", err)
	}
	if block == nil {
		return newErr(CodeNotFound, "blocked date %s not found", blockID)
	}

	if _, err := s.ownedPet(ctx, ownerID, block.PetID); err != nil {
		return err
	}

	if err := s.repo.BlockedDate.Delete(ctx, blockUUID); err != nil {
		if err == repository.ErrBlockRowMissing {
			return newErr(CodeNotFound, "blocked date %s not found", blockID)
		}
		return fmt.Errorf("delete blocked date: %w", err)
	}
	return nil
}

func (s *calendarService) ListBlockedDates(ctx context.Context, ownerID uuid.UUID, petID string) ([]response.BlockedDateResponse, error) {
	petUUID, err := uuid.Parse(petID)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid pet ID format %s", petID)
	}

	if _, err := s.ownedPet(ctx, ownerID, petUUID); err != nil {
		return nil, err
	}

	blocks, err := s.repo.BlockedDate.FindByPet(ctx, petUUID)
	if err != nil {
		return nil, fmt.Errorf("list blocked dates: %w", err)
	}

	items := make([]response.BlockedDateResponse, len(blocks))
	for i, block := range blocks {
		items[i] = response.BlockedDateToResponse(block)
	}
	return items, nil
}

func (s *calendarService) GetMySchedule(ctx context.Context, userID uuid.UUID, startDate, endDate string, asOwner *bool) ([]response.ScheduleEvent, error) {
	rng, err := s.parseSpan(startDate, endDate)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindForUserSchedule(ctx, userID, rng, asOwner)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	pets, err := s.repo.Pet.FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	petNames := make(map[uuid.UUID]string, len(pets))
	petIDs := make([]uuid.UUID, 0, len(pets))
	for _, pet := range pets {
		petNames[pet.ID] = pet.Name
		petIDs = append(petIDs, pet.ID)
	}

	blocks, err := s.repo.BlockedDate.FindByPets(ctx, petIDs, rng)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	events := make([]response.ScheduleEvent, 0, len(bookings)+len(blocks))
	for _, b := range bookings {
		events = append(events, response.ScheduleEvent{
			ID:        b.ID.String(),
			PetID:     b.PetID.String(),
			PetName:   petNames[b.PetID],
			StartDate: entity.FormatDate(b.DateRange.StartDate),
			EndDate:   entity.FormatDate(b.DateRange.EndDate),
			EventType: "booking",
			Status:    string(b.Status),
			Price:     b.GrandTotal,
		})
	}
	for _, block := range blocks {
		events = append(events, response.ScheduleEvent{
			ID:        block.ID.String(),
			PetID:     block.PetID.String(),
			PetName:   petNames[block.PetID],
			StartDate: entity.FormatDate(block.DateRange.StartDate),
			EndDate:   entity.FormatDate(block.DateRange.EndDate),
			EventType: "blocked",
			Status:    string(block.Reason),
			Reason:    string(block.Reason),
			Notes:     block.Notes,
		})
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].StartDate != events[j].StartDate {
			return events[i].StartDate < events[j].StartDate
		}
		return events[i].ID < events[j].ID
	})

	return events, nil
}
