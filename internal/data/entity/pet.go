package entity

import (
	"time"

	"github.com/google/uuid"
)

type PetStatus string

const (
	PetStatusActive   PetStatus = "active"
	PetStatusInactive PetStatus = "inactive"
)

type ListingType string

const (
	ListingTypeRent ListingType = "rent"
	ListingTypeSale ListingType = "sale"
)

type Pet struct {
	Base
	OwnerID       uuid.UUID   `db:"owner_id"`
	Name          string      `db:"name"`
	Species       string      `db:"species"`
	Breed         *string     `db:"breed"`
	AgeMonths     *int        `db:"age_months"`
	Description   *string     `db:"description"`
	City          *string     `db:"city"`
	DailyRate     float64     `db:"daily_rate"`
	ListingType   ListingType `db:"listing_type"`
	Status        PetStatus   `db:"status"`
	AvailableFrom *time.Time  `db:"available_from"`
	AvailableTo   *time.Time  `db:"available_to"`
	ViewCount     int         `db:"view_count"`
}

// AvailabilityWindow bounds the outer range in which any booking or block may
// fall. Nil bounds are open-ended.
func (p *Pet) WithinAvailabilityWindow(rng DateRange) (ok bool, boundary time.Time, before bool) {
	if p.AvailableFrom != nil {
		from := NormalizeDate(*p.AvailableFrom)
		if rng.StartDate.Before(from) {
			return false, from, true
		}
	}
	if p.AvailableTo != nil {
		to := NormalizeDate(*p.AvailableTo)
		if rng.EndDate.After(to) {
			return false, to, false
		}
	}
	return true, time.Time{}, false
}
