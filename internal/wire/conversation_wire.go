package wire

import (
	"pet-rental/internal/adaptor"
	"pet-rental/internal/data/repository"
	"pet-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireConversation(
	r chi.Router,
	conversationHandler *adaptor.ConversationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/api/conversations", conversationHandler.StartConversation)
		r.Get("/api/conversations", conversationHandler.ListConversations)
		r.Get("/api/conversations/{id}", conversationHandler.GetConversation)
		r.Post("/api/conversations/{id}/messages", conversationHandler.SendMessage)
	})
}
