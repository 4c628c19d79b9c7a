package wire

import (
	"net/http"

	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/internal/notify"
	"car-rental/internal/usecase"
	"car-rental/pkg/mailer"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers, and the router.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
	rdb *redis.Client,
	mail mailer.Sender,
) *App {
	hub := notify.NewHub(logger)
	service := usecase.NewService(repo, config, logger, rdb, mail, hub)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger, rdb)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
	rdb *redis.Client,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.ClientURL))
	r.Use(middleware.Metrics())

	// Domain routes
	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireCar(r, handler.Car, repo, logger)
	wireOrder(r, handler.Order, handler.Calendar, repo, logger)
	wireFeedback(r, handler.Feedback, repo, config, logger, rdb)
	wireNotification(r, handler.Notification, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
