package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireFeedback(
	r chi.Router,
	feedbackHandler *adaptor.FeedbackHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
	rdb *redis.Client,
) {
	r.Route("/api/feedback", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RateLimit(rdb, config.RateLimit.Limit, config.RateLimit.WindowSeconds, log))

		r.Post("/", feedbackHandler.Submit)
	})
}
