package usecase

import (
	"pet-rental/internal/data/repository"
	"pet-rental/pkg/cache"
	"pet-rental/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Pet          PetService
	Availability AvailabilityService
	Booking      BookingService
	Calendar     CalendarService
	Review       ReviewService
	Notification NotificationService
	Conversation ConversationService
}

func NewService(repo *repository.Repository, config *utils.Config, codes *cache.CodeStore, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, codes, log),
		Pet:          NewPetService(repo, log),
		Availability: NewAvailabilityService(repo, config, log),
		Booking:      NewBookingService(repo, config, log),
		Calendar:     NewCalendarService(repo, config, log),
		Review:       NewReviewService(repo, log),
		Notification: NewNotificationService(repo, log),
		Conversation: NewConversationService(repo, log),
	}
}
