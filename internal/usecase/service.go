package usecase

import (
	"car-rental/internal/data/repository"
	"car-rental/internal/notify"
	"car-rental/pkg/mailer"
	"car-rental/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Car          CarService
	Recommend    RecommendService
	Order        OrderService
	Calendar     CalendarService
	Feedback     FeedbackService
	Notification NotificationService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
	rdb *redis.Client,
	mail mailer.Sender,
	hub *notify.Hub,
) *Service {
	notification := NewNotificationService(repo, hub, log)

	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo.User, log),
		Car:          NewCarService(repo, rdb, log),
		Recommend:    NewRecommendService(repo.Car, log),
		Order:        NewOrderService(repo, notification, log),
		Calendar:     NewCalendarService(repo, notification, log),
		Feedback:     NewFeedbackService(repo, config, mail, notification, log),
		Notification: notification,
	}
}
