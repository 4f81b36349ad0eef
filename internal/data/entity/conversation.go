package entity

import (
	"github.com/google/uuid"
)

// Conversation is a two-party message thread, optionally tied to the pet or
// booking it started from. At most one conversation exists per user pair.
type Conversation struct {
	BaseNoDelete
	ParticipantA     uuid.UUID  `db:"participant_a"`
	ParticipantB     uuid.UUID  `db:"participant_b"`
	RelatedPetID     *uuid.UUID `db:"related_pet_id"`
	RelatedBookingID *uuid.UUID `db:"related_booking_id"`
}

func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

// OtherParticipant returns the counterpart of userID. The caller must have
// verified participation first.
func (c *Conversation) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

type Message struct {
	BaseSimple
	ConversationID uuid.UUID `db:"conversation_id"`
	SenderID       uuid.UUID `db:"sender_id"`
	Content        string    `db:"content"`
	IsRead         bool      `db:"is_read"`
}
