package response

import (
	"time"

	"pet-rental/internal/data/entity"
)

// AvailabilityResult answers "is pet P free for [start,end]?". When not,
// it names the reason, the exact conflicting days, and the colliding ids.
type AvailabilityResult struct {
	IsAvailable      bool     `json:"is_available"`
	BlockedReason    string   `json:"blocked_reason,omitempty"`
	ConflictingDates []string `json:"conflicting_dates,omitempty"`
	BookingIDs       []string `json:"booking_ids,omitempty"`
	BlockIDs         []string `json:"block_ids,omitempty"`
}

type DayStatus string

const (
	DayAvailable DayStatus = "available"
	DayBooked    DayStatus = "booked"
	DayBlocked   DayStatus = "blocked"
)

// CalendarDay is one entry of the per-day projection.
type CalendarDay struct {
	Date          string    `json:"date"`
	Status        DayStatus `json:"status"`
	Reason        string    `json:"reason,omitempty"`
	BlockID       string    `json:"block_id,omitempty"`
	BookingID     string    `json:"booking_id,omitempty"`
	BookingStatus string    `json:"booking_status,omitempty"`
	RenterID      string    `json:"renter_id,omitempty"`
}

type PetCalendarResponse struct {
	PetID     string        `json:"pet_id"`
	PetName   string        `json:"pet_name"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Calendar  []CalendarDay `json:"calendar"`
}

type BlockedDateResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Reason    string    `json:"reason"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func BlockedDateToResponse(block *entity.BlockedDate) BlockedDateResponse {
	return BlockedDateResponse{
		ID:        block.ID.String(),
		PetID:     block.PetID.String(),
		StartDate: entity.FormatDate(block.DateRange.StartDate),
		EndDate:   entity.FormatDate(block.DateRange.EndDate),
		Reason:    string(block.Reason),
		Notes:     block.Notes,
		CreatedAt: block.CreatedAt,
		UpdatedAt: block.UpdatedAt,
	}
}

// ScheduleEvent is one row of a user's merged schedule: their bookings plus
// the blocks on their own pets, sorted by start date.
type ScheduleEvent struct {
	ID        string  `json:"id"`
	PetID     string  `json:"pet_id"`
	PetName   string  `json:"pet_name,omitempty"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	EventType string  `json:"event_type"` // "booking" or "blocked"
	Status    string  `json:"status"`
	Price     float64 `json:"price,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}
