package wire

import (
	"pet-rental/internal/adaptor"
	"pet-rental/internal/data/repository"
	"pet-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCalendar(
	r chi.Router,
	calendarHandler *adaptor.CalendarHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes: anyone can ask whether a pet is free.
	r.Get("/api/pets/{id}/availability", calendarHandler.CheckAvailability)
	r.Get("/api/pets/{id}/calendar", calendarHandler.GetPetCalendar)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/api/pets/{id}/blocked-dates", calendarHandler.CreateBlockedDate)
		r.Get("/api/pets/{id}/blocked-dates", calendarHandler.ListBlockedDates)
		r.Put("/api/blocked-dates/{id}", calendarHandler.UpdateBlockedDate)
		r.Delete("/api/blocked-dates/{id}", calendarHandler.DeleteBlockedDate)

		r.Get("/api/user/schedule", calendarHandler.GetMySchedule)
	})
}
