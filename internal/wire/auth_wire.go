package wire

import (
	"time"

	"pet-rental/internal/adaptor"
	"pet-rental/internal/data/repository"
	"pet-rental/pkg/middleware"
	"pet-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	rdb *redis.Client,
	log *zap.Logger,
) {
	// Public routes. Login sits behind a per-IP rate limit so credential
	// stuffing cannot hammer bcrypt.
	r.Post("/api/auth/register", authHandler.Register)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(rdb, config.Verify.LoginRateLimit, time.Minute, "login", log))
		r.Post("/api/auth/login", authHandler.Login)
	})
	r.Post("/api/auth/send-verify-code", authHandler.SendVerifyCode)
	r.Post("/api/auth/verify-email", authHandler.VerifyEmail)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/api/auth/logout", authHandler.Logout)
		r.Get("/api/auth/me", authHandler.GetProfile)
	})
}
