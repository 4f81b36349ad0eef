package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusAccepted   BookingStatus = "accepted"
	BookingStatusRejected   BookingStatus = "rejected"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusInProgress BookingStatus = "in_progress"
)

type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
	PaymentStatusFailed            PaymentStatus = "failed"
)

// ActiveBookingStatuses are the statuses that occupy the calendar. Rejected,
// cancelled and completed bookings free their dates.
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusAccepted,
	BookingStatusInProgress,
}

func (s BookingStatus) IsActive() bool {
	for _, a := range ActiveBookingStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusRejected || s == BookingStatusCancelled || s == BookingStatusCompleted
}

type Booking struct {
	Base
	PetID           uuid.UUID     `db:"pet_id"`
	OwnerID         uuid.UUID     `db:"owner_id"`
	RenterID        uuid.UUID     `db:"renter_id"`
	DateRange       DateRange     `db:"-"`
	TotalDays       int           `db:"total_days"`
	DailyRate       float64       `db:"daily_rate"`
	TotalAmount     float64       `db:"total_amount"`
	ServiceFee      float64       `db:"service_fee"`
	GrandTotal      float64       `db:"grand_total"`
	Status          BookingStatus `db:"status"`
	PaymentStatus   PaymentStatus `db:"payment_status"`
	Message         *string       `db:"message"`
	SpecialRequests *string       `db:"special_requests"`
	PickupTime      *string       `db:"pickup_time"`
	DropoffTime     *string       `db:"dropoff_time"`
}

// CanTransition encodes the booking state machine:
// pending -> accepted|rejected (owner), pending|accepted -> cancelled
// (owner or renter), accepted -> in_progress (owner),
// accepted|in_progress -> completed (owner). Terminal states stay put.
func (b *Booking) CanTransition(to BookingStatus) bool {
	if b.Status.IsTerminal() {
		return false
	}

	switch to {
	case BookingStatusAccepted, BookingStatusRejected:
		return b.Status == BookingStatusPending
	case BookingStatusCancelled:
		return b.Status == BookingStatusPending || b.Status == BookingStatusAccepted
	case BookingStatusInProgress:
		return b.Status == BookingStatusAccepted
	case BookingStatusCompleted:
		return b.Status == BookingStatusAccepted || b.Status == BookingStatusInProgress
	default:
		return false
	}
}

// OwnerOnlyTransition reports whether the transition is reserved for the
// pet's owner. Cancellation is open to either participant.
func OwnerOnlyTransition(to BookingStatus) bool {
	switch to {
	case BookingStatusAccepted, BookingStatusRejected, BookingStatusInProgress, BookingStatusCompleted:
		return true
	default:
		return false
	}
}
