package repository

import (
	"car-rental/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Car          CarRepository
	Order        OrderRepository
	Notification NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Car:          NewCarRepository(db, log),
		Order:        NewOrderRepository(db, log),
		Notification: NewNotificationRepository(db, log),
	}
}
