package request

type CreateBlockedDateRequest struct {
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    string  `json:"reason" validate:"omitempty,oneof=maintenance personal unavailable booked other"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateBlockedDateRequest struct {
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,oneof=maintenance personal unavailable booked other"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}
