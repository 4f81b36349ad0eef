package response

import (
	"time"

	"pet-rental/internal/data/entity"
)

type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

func MessageToResponse(message *entity.Message) MessageResponse {
	return MessageResponse{
		ID:             message.ID.String(),
		ConversationID: message.ConversationID.String(),
		SenderID:       message.SenderID.String(),
		Content:        message.Content,
		IsRead:         message.IsRead,
		CreatedAt:      message.CreatedAt,
	}
}

type ConversationResponse struct {
	ID               string            `json:"id"`
	ParticipantIDs   []string          `json:"participant_ids"`
	RelatedPetID     *string           `json:"related_pet_id,omitempty"`
	RelatedBookingID *string           `json:"related_booking_id,omitempty"`
	Messages         []MessageResponse `json:"messages"`
	UnreadCount      int64             `json:"unread_count"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func ConversationToResponse(conversation *entity.Conversation) ConversationResponse {
	resp := ConversationResponse{
		ID:             conversation.ID.String(),
		ParticipantIDs: []string{conversation.ParticipantA.String(), conversation.ParticipantB.String()},
		CreatedAt:      conversation.CreatedAt,
		UpdatedAt:      conversation.UpdatedAt,
	}
	if conversation.RelatedPetID != nil {
		id := conversation.RelatedPetID.String()
		resp.RelatedPetID = &id
	}
	if conversation.RelatedBookingID != nil {
		id := conversation.RelatedBookingID.String()
		resp.RelatedBookingID = &id
	}
	return resp
}

// ConversationSummary is the inbox row: the counterpart, the latest message
// and how much of the thread is unread.
type ConversationSummary struct {
	ID                     string     `json:"id"`
	OtherParticipantID     string     `json:"other_participant_id"`
	OtherParticipantName   string     `json:"other_participant_name"`
	OtherParticipantAvatar *string    `json:"other_participant_avatar,omitempty"`
	LastMessageText        string     `json:"last_message_text"`
	LastMessageTime        *time.Time `json:"last_message_time,omitempty"`
	UnreadCount            int64      `json:"unread_count"`
	RelatedPetID           *string    `json:"related_pet_id,omitempty"`
}
