package response

import (
	"time"

	"pet-rental/internal/data/entity"
)

type PetResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Name          string    `json:"name"`
	Species       string    `json:"species"`
	Breed         *string   `json:"breed,omitempty"`
	AgeMonths     *int      `json:"age_months,omitempty"`
	Description   *string   `json:"description,omitempty"`
	City          *string   `json:"city,omitempty"`
	DailyRate     float64   `json:"daily_rate"`
	ListingType   string    `json:"listing_type"`
	Status        string    `json:"status"`
	AvailableFrom *string   `json:"available_from,omitempty"`
	AvailableTo   *string   `json:"available_to,omitempty"`
	ViewCount     int       `json:"view_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func PetToResponse(pet *entity.Pet) PetResponse {
	resp := PetResponse{
		ID:          pet.ID.String(),
		OwnerID:     pet.OwnerID.String(),
		Name:        pet.Name,
		Species:     pet.Species,
		Breed:       pet.Breed,
		AgeMonths:   pet.AgeMonths,
		Description: pet.Description,
		City:        pet.City,
		DailyRate:   pet.DailyRate,
		ListingType: string(pet.ListingType),
		Status:      string(pet.Status),
		ViewCount:   pet.ViewCount,
		CreatedAt:   pet.CreatedAt,
	}

	if pet.AvailableFrom != nil {
		s := entity.FormatDate(*pet.AvailableFrom)
		resp.AvailableFrom = &s
	}
	if pet.AvailableTo != nil {
		s := entity.FormatDate(*pet.AvailableTo)
		resp.AvailableTo = &s
	}

	return resp
}
