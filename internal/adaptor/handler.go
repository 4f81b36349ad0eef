package adaptor

import (
	"errors"
	"net/http"

	"pet-rental/internal/usecase"
	"pet-rental/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Pet          *PetHandler
	Booking      *BookingHandler
	Calendar     *CalendarHandler
	Review       *ReviewHandler
	Notification *NotificationHandler
	Conversation *ConversationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Pet:          NewPetHandler(service.Pet, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Calendar:     NewCalendarHandler(service.Calendar, service.Availability, log),
		Review:       NewReviewHandler(service.Review, log),
		Notification: NewNotificationHandler(service.Notification, log),
		Conversation: NewConversationHandler(service.Conversation, log),
	}
}

// handleServiceError maps classified service errors onto HTTP statuses.
// Conflict responses carry the colliding ids and exact dates in the errors
// field so clients can show what is in the way.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var conflict *usecase.ConflictError
	if errors.As(err, &conflict) {
		utils.ResponseJSON(w, http.StatusConflict, false, conflict.Message, nil, conflict)
		return
	}

	switch usecase.Code(err) {
	case usecase.CodeNotFound:
		utils.ResponseNotFound(w, err.Error())
	case usecase.CodeForbidden:
		utils.ResponseForbidden(w, err.Error())
	case usecase.CodeConflict, usecase.CodeUnavailable:
		utils.ResponseJSON(w, http.StatusConflict, false, err.Error(), nil, nil)
	case usecase.CodeValidation:
		utils.ResponseBadRequest(w, err.Error(), nil)
	default:
		log.Error("Unhandled service error",
			zap.Error(err),
			zap.String("operation", operation),
		)
		utils.ResponseInternalError(w, "Internal server error")
	}
}
