package repository

import (
	"pet-rental/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Pet          PetRepository
	Booking      BookingRepository
	BlockedDate  BlockedDateRepository
	Review       ReviewRepository
	Notification NotificationRepository
	Conversation ConversationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Pet:          NewPetRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		BlockedDate:  NewBlockedDateRepository(db, log),
		Review:       NewReviewRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		Conversation: NewConversationRepository(db, log),
	}
}
