package wire

import (
	"pet-rental/internal/adaptor"
	"pet-rental/internal/data/repository"
	"pet-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	r.Get("/api/pets/{id}/reviews", reviewHandler.ListPetReviews)
	r.Get("/api/pets/{id}/reviews/stats", reviewHandler.GetPetReviewStats)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/api/reviews", reviewHandler.CreateReview)
	})
}
