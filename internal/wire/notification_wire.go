package wire

import (
	"pet-rental/internal/adaptor"
	"pet-rental/internal/data/repository"
	"pet-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireNotification(
	r chi.Router,
	notificationHandler *adaptor.NotificationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/api/notifications", notificationHandler.ListNotifications)
		r.Get("/api/notifications/unread-count", notificationHandler.UnreadCount)
		r.Put("/api/notifications/{id}/read", notificationHandler.MarkRead)
		r.Put("/api/notifications/read-all", notificationHandler.MarkAllRead)
	})
}
