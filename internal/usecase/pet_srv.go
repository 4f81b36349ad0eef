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

type PetService interface {
	CreatePet(ctx context.Context, ownerID uuid.UUID, req *request.CreatePetRequest) (*response.PetResponse, error)
	GetPet(ctx context.Context, petID string) (*response.PetResponse, error)
	GetMyPets(ctx context.Context, ownerID uuid.UUID) ([]response.PetResponse, error)
	SearchPets(ctx context.Context, req *request.SearchPetRequest) (*response.PaginatedResponse[response.PetResponse], error)
	UpdatePet(ctx context.Context, ownerID uuid.UUID, petID string, req *request.UpdatePetRequest) (*response.PetResponse, error)
	DeletePet(ctx context.Context, ownerID uuid.UUID, petID string) error
}

type petService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPetService(repo *repository.Repository, log *zap.Logger) PetService {
	return &petService{
		repo: repo,
		log:  log.With(zap.String("service", "pet")),
	}
}

// parseOptionalDate turns an optional YYYY-MM-DD string into a normalized
// day pointer.
func parseOptionalDate(value *string, field string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid %s %q", field, *value)
	}

	day := entity.NormalizeDate(parsed)
	return &day, nil
}

func (s *petService) CreatePet(ctx context.Context, ownerID uuid.UUID, req *request.CreatePetRequest) (*response.PetResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create pet validation failed", zap.Any("errors", errs))
		return nil, newErr(CodeValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	availableFrom, err := parseOptionalDate(req.AvailableFrom, "available_from")
	if err != nil {
		return nil, err
	}
	availableTo, err := parseOptionalDate(req.AvailableTo, "available_to")
	if err != nil {
		return nil, err
	}
	if availableFrom != nil && availableTo != nil && availableTo.Before(*availableFrom) {
		return nil, newErr(CodeValidation, "available_to must not be before available_from")
	}

	now := time.Now().UTC()
	pet := &entity.Pet{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:       ownerID,
		Name:          req.Name,
		Species:       req.Species,
		Breed:         req.Breed,
		AgeMonths:     req.AgeMonths,
		Description:   req.Description,
		City:          req.City,
		DailyRate:     req.DailyRate,
		ListingType:   entity.ListingType(req.ListingType),
		Status:        entity.PetStatusActive,
		AvailableFrom: availableFrom,
		AvailableTo:   availableTo,
	}

	if err := s.repo.Pet.Create(ctx, pet); err != nil {
		return nil, fmt.Errorf("create pet: %w", err)
	}

	s.log.Info("Pet created",
		zap.String("pet_id", pet.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)

	resp := response.PetToResponse(pet)
	return &resp, nil
}

func (s *petService) GetPet(ctx context.Context, petID string) (*response.PetResponse, error) {
	petUUID, err := uuid.Parse(petID)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid pet ID format %s", petID)
	}

	pet, err := s.repo.Pet.FindByID(ctx, petUUID)
	if err != nil {
		return nil, fmt.Errorf("get pet: %w", err)
	}
	if pet == nil {
		return nil, newErr(CodeNotFound, "pet %s not found", petID)
	}

	if err := s.repo.Pet.IncrementViewCount(ctx, petUUID); err != nil {
		s.log.Warn("Failed to bump view count",
			zap.Error(err),
			zap.String("pet_id", petID),
		)
	}

	resp := response.PetToResponse(pet)
	return &resp, nil
}

func (s *petService) GetMyPets(ctx context.Context, ownerID uuid.UUID) ([]response.PetResponse, error) {
	pets, err := s.repo.Pet.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get my pets: %w", err)
	}

	items := make([]response.PetResponse, len(pets))
	for i, pet := range pets {
		items[i] = response.PetToResponse(pet)
	}
	return items, nil
}

func (s *petService) SearchPets(ctx context.Context, req *request.SearchPetRequest) (*response.PaginatedResponse[response.PetResponse], error) {
	filter := repository.PetSearchFilter{
		Species:  req.Species,
		City:     req.City,
		PriceMin: req.PriceMin,
		PriceMax: req.PriceMax,
	}

	pets, err := s.repo.Pet.Search(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("search pets: %w", err)
	}

	total, err := s.repo.Pet.CountSearch(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search pets: %w", err)
	}

	items := make([]response.PetResponse, len(pets))
	for i, pet := range pets {
		items[i] = response.PetToResponse(pet)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

// findOwnedPet loads a pet and verifies the caller owns it.
func (s *petService) findOwnedPet(ctx context.Context, ownerID uuid.UUID, petID string) (*entity.Pet, error) {
	petUUID, err := uuid.Parse(petID)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid pet ID format %s", petID)
	}

	pet, err := s.repo.Pet.FindByID(ctx, petUUID)
	if err != nil {
		return nil, fmt.Errorf("find pet: %w", err)
	}
	if pet == nil {
		return nil, newErr(CodeNotFound, "pet %s not found", petID)
	}
	if pet.OwnerID != ownerID {
		return nil, newErr(CodeForbidden, "you do not own this pet")
	}

	return pet, nil
}

func (s *petService) UpdatePet(ctx context.Context, ownerID uuid.UUID, petID string, req *request.UpdatePetRequest) (*response.PetResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newErr(CodeValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	pet, err := s.findOwnedPet(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		pet.Name = *req.Name
	}
	if req.Species != nil {
		pet.Species = *req.Species
	}
	if req.Breed != nil {
		pet.Breed = req.Breed
	}
	if req.AgeMonths != nil {
		pet.AgeMonths = req.AgeMonths
	}
	if req.Description != nil {
		pet.Description = req.Description
	}
	if req.City != nil {
		pet.City = req.City
	}
	if req.DailyRate != nil {
		pet.DailyRate = *req.DailyRate
	}
	if req.Status != nil {
		pet.Status = entity.PetStatus(*req.Status)
	}
	if req.AvailableFrom != nil {
		from, err := parseOptionalDate(req.AvailableFrom, "available_from")
		if err != nil {
			return nil, err
		}
		pet.AvailableFrom = from
	}
	if req.AvailableTo != nil {
		to, err := parseOptionalDate(req.AvailableTo, "available_to")
		if err != nil {
			return nil, err
		}
		pet.AvailableTo = to
	}
	if pet.AvailableFrom != nil && pet.AvailableTo != nil && pet.AvailableTo.Before(*pet.AvailableFrom) {
		return nil, newErr(CodeValidation, "available_to must not be before available_from")
	}
	pet.UpdatedAt = time.Now().UTC()

	if err := s.repo.Pet.Update(ctx, pet); err != nil {
		return nil, fmt.Errorf("update pet: %w", err)
	}

	resp := response.PetToResponse(pet)
	return &resp, nil
}

func (s *petService) DeletePet(ctx context.Context, ownerID uuid.UUID, petID string) error {
	pet, err := s.findOwnedPet(ctx, ownerID, petID)
	if err != nil {
		return err
	}

	// A listing with live bookings cannot disappear under its renters.
	active, err := s.repo.Booking.CountPetActive(ctx, pet.ID)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	if active > 0 {
		return newErr(CodeConflict, "pet has %d active bookings and cannot be removed", active)
	}

	if err := s.repo.Pet.Delete(ctx, pet.ID); err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}

	s.log.Info("Pet removed",
		zap.String("pet_id", pet.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	return nil
}
