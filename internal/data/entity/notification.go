package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationBookingRequested NotificationType = "booking_requested"
	NotificationBookingAccepted  NotificationType = "booking_accepted"
	NotificationBookingRejected  NotificationType = "booking_rejected"
	NotificationBookingCancelled NotificationType = "booking_cancelled"
	NotificationBookingStarted   NotificationType = "booking_started"
	NotificationBookingCompleted NotificationType = "booking_completed"
	NotificationNewMessage       NotificationType = "new_message"
)

type Notification struct {
	BaseSimple
	RecipientID     uuid.UUID        `db:"recipient_id"`
	Type            NotificationType `db:"type"`
	Title           string           `db:"title"`
	Message         string           `db:"message"`
	RelatedEntityID *uuid.UUID       `db:"related_entity_id"`
	IsRead          bool             `db:"is_read"`
	ReadAt          *time.Time       `db:"read_at"`
}
