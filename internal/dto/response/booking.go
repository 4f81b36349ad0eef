package response

import (
	"time"

	"pet-rental/internal/data/entity"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	PetID           string               `json:"pet_id"`
	PetName         string               `json:"pet_name,omitempty"`
	OwnerID         string               `json:"owner_id"`
	OwnerName       string               `json:"owner_name,omitempty"`
	RenterID        string               `json:"renter_id"`
	RenterName      string               `json:"renter_name,omitempty"`
	StartDate       string               `json:"start_date"`
	EndDate         string               `json:"end_date"`
	TotalDays       int                  `json:"total_days"`
	DailyRate       float64              `json:"daily_rate"`
	TotalAmount     float64              `json:"total_amount"`
	ServiceFee      float64              `json:"service_fee"`
	GrandTotal      float64              `json:"grand_total"`
	Status          entity.BookingStatus `json:"status"`
	PaymentStatus   entity.PaymentStatus `json:"payment_status"`
	Message         *string              `json:"message,omitempty"`
	SpecialRequests *string              `json:"special_requests,omitempty"`
	PickupTime      *string              `json:"pickup_time,omitempty"`
	DropoffTime     *string              `json:"dropoff_time,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:              booking.ID.String(),
		PetID:           booking.PetID.String(),
		OwnerID:         booking.OwnerID.String(),
		RenterID:        booking.RenterID.String(),
		StartDate:       entity.FormatDate(booking.DateRange.StartDate),
		EndDate:         entity.FormatDate(booking.DateRange.EndDate),
		TotalDays:       booking.TotalDays,
		DailyRate:       booking.DailyRate,
		TotalAmount:     booking.TotalAmount,
		ServiceFee:      booking.ServiceFee,
		GrandTotal:      booking.GrandTotal,
		Status:          booking.Status,
		PaymentStatus:   booking.PaymentStatus,
		Message:         booking.Message,
		SpecialRequests: booking.SpecialRequests,
		PickupTime:      booking.PickupTime,
		DropoffTime:     booking.DropoffTime,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}
}

type EarningsResponse struct {
	TotalEarnings     float64 `json:"total_earnings"`
	TotalFeesPaid     float64 `json:"total_fees_paid"`
	CompletedBookings int64   `json:"completed_bookings"`
}
