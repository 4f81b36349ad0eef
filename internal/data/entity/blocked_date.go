package entity

import (
	"github.com/google/uuid"
)

type BlockReason string

const (
	BlockReasonMaintenance BlockReason = "maintenance"
	BlockReasonPersonal    BlockReason = "personal"
	BlockReasonUnavailable BlockReason = "unavailable"
	BlockReasonBooked      BlockReason = "booked"
	BlockReasonOther       BlockReason = "other"
)

// BlockedDate is an owner-declared unavailability window for a pet. It must
// never overlap an active booking's range; the repository enforces that at
// create and update time.
type BlockedDate struct {
	BaseNoDelete
	PetID     uuid.UUID   `db:"pet_id"`
	DateRange DateRange   `db:"-"`
	Reason    BlockReason `db:"reason"`
	Notes     *string     `db:"notes"`
}
