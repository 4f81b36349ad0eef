package response

import (
	"time"

	"pet-rental/internal/data/entity"
)

type ReviewResponse struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	PetID      string    `json:"pet_id"`
	ReviewerID string    `json:"reviewer_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID.String(),
		BookingID:  review.BookingID.String(),
		PetID:      review.PetID.String(),
		ReviewerID: review.ReviewerID.String(),
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}

type ReviewStatsResponse struct {
	PetID         string  `json:"pet_id"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}
