package wire

import (
	"pet-rental/internal/adaptor"
	"pet-rental/internal/data/repository"
	"pet-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Everything booking-related requires auth.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/api/bookings", bookingHandler.CreateBooking)
		r.Get("/api/bookings", bookingHandler.ListBookings)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)
		r.Put("/api/bookings/{id}/status", bookingHandler.UpdateBookingStatus)

		r.Get("/api/user/earnings", bookingHandler.GetEarnings)
	})
}
