package request

type StartConversationRequest struct {
	RecipientID      string  `json:"recipient_id" validate:"required,uuid4"`
	Message          string  `json:"message" validate:"required,max=2000"`
	RelatedPetID     *string `json:"related_pet_id,omitempty" validate:"omitempty,uuid4"`
	RelatedBookingID *string `json:"related_booking_id,omitempty" validate:"omitempty,uuid4"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}
