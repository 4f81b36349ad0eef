package response

import (
	"time"

	"pet-rental/internal/data/entity"
)

type NotificationResponse struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	Title           string     `json:"title"`
	Message         string     `json:"message"`
	RelatedEntityID *string    `json:"related_entity_id,omitempty"`
	IsRead          bool       `json:"is_read"`
	ReadAt          *time.Time `json:"read_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func NotificationToResponse(n *entity.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
	if n.RelatedEntityID != nil {
		id := n.RelatedEntityID.String()
		resp.RelatedEntityID = &id
	}
	return resp
}
