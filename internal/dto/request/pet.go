package request

type CreatePetRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=100"`
	Species       string   `json:"species" validate:"required,min=2,max=50"`
	Breed         *string  `json:"breed,omitempty" validate:"omitempty,max=100"`
	AgeMonths     *int     `json:"age_months,omitempty" validate:"omitempty,min=0,max=600"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	City          *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	DailyRate     float64  `json:"daily_rate" validate:"required,gt=0"`
	ListingType   string   `json:"listing_type" validate:"required,oneof=rent sale"`
	AvailableFrom *string  `json:"available_from,omitempty"` // YYYY-MM-DD
	AvailableTo   *string  `json:"available_to,omitempty"`   // YYYY-MM-DD
}

type UpdatePetRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Species       *string  `json:"species,omitempty" validate:"omitempty,min=2,max=50"`
	Breed         *string  `json:"breed,omitempty" validate:"omitempty,max=100"`
	AgeMonths     *int     `json:"age_months,omitempty" validate:"omitempty,min=0,max=600"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	City          *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	DailyRate     *float64 `json:"daily_rate,omitempty" validate:"omitempty,gt=0"`
	Status        *string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	AvailableFrom *string  `json:"available_from,omitempty"`
	AvailableTo   *string  `json:"available_to,omitempty"`
}

type SearchPetRequest struct {
	Species  string
	City     string
	PriceMin *float64
	PriceMax *float64
	PaginatedRequest
}
