package wire

import (
	"pet-rental/internal/adaptor"
	"pet-rental/internal/data/repository"
	"pet-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePet(
	r chi.Router,
	petHandler *adaptor.PetHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	r.Get("/api/pets", petHandler.SearchPets)
	r.Get("/api/pets/{id}", petHandler.GetPet)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/api/pets", petHandler.CreatePet)
		r.Put("/api/pets/{id}", petHandler.UpdatePet)
		r.Delete("/api/pets/{id}", petHandler.DeletePet)
		r.Get("/api/user/pets", petHandler.GetMyPets)
	})
}
