package wire

import (
	"net/http"
	"time"

	"pet-rental/internal/adaptor"
	"pet-rental/internal/data/repository"
	"pet-rental/internal/usecase"
	"pet-rental/pkg/cache"
	"pet-rental/pkg/middleware"
	"pet-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring assembles services, handlers and routes.
func Wiring(repo *repository.Repository, config *utils.Config, rdb *redis.Client, logger *zap.Logger) *App {
	codes := cache.NewCodeStore(rdb,
		time.Duration(config.Verify.CodeTTLMinutes)*time.Minute, "verify")

	service := usecase.NewService(repo, config, codes, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, rdb, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	rdb *redis.Client,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, config, rdb, logger)
	wirePet(r, handler.Pet, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wireCalendar(r, handler.Calendar, repo, logger)
	wireReview(r, handler.Review, repo, logger)
	wireNotification(r, handler.Notification, repo, logger)
	wireConversation(r, handler.Conversation, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
