package request

type CreateBookingRequest struct {
	PetID           string  `json:"pet_id" validate:"required,uuid4"`
	StartDate       string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Message         *string `json:"message,omitempty" validate:"omitempty,max=1000"`
	PickupTime      *string `json:"pickup_time,omitempty" validate:"omitempty,datetime=15:04"`
	DropoffTime     *string `json:"dropoff_time,omitempty" validate:"omitempty,datetime=15:04"`
	SpecialRequests *string `json:"special_requests,omitempty" validate:"omitempty,max=1000"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected cancelled in_progress completed"`
}

type ListBookingsRequest struct {
	AsOwner *bool
	Status  string
	PaginatedRequest
}
