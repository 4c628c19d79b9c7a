package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/pkg/mailer"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FeedbackService interface {
	Submit(ctx context.Context, userID uuid.UUID, req *request.FeedbackRequest) (*response.FeedbackResponse, error)
}

type feedbackService struct {
	repo     *repository.Repository
	config   *utils.Config
	mail     mailer.Sender
	notifier NotificationService
	log      *zap.Logger
}

func NewFeedbackService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Sender,
	notifier NotificationService,
	log *zap.Logger,
) FeedbackService {
	return &feedbackService{
		repo:     repo,
		config:   config,
		mail:     mail,
		notifier: notifier,
		log:      log,
	}
}

func (s *feedbackService) Submit(ctx context.Context, userID uuid.UUID, req *request.FeedbackRequest) (*response.FeedbackResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Feedback validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Resolve the referenced vehicle, if any
	var vehicleID *uuid.UUID
	var vehicleTitle string
	if req.VehicleID != nil {
		id, err := uuid.Parse(*req.VehicleID)
		if err != nil {
			return nil, fmt.Errorf("invalid vehicle id")
		}
		car, err := s.repo.Car.FindByID(ctx, id)
		if err != nil {
			s.log.Error("Failed to find vehicle", zap.Error(err), zap.String("vehicle_id", *req.VehicleID))
			return nil, fmt.Errorf("failed to find vehicle")
		}
		if car == nil {
			return nil, fmt.Errorf("vehicle not found")
		}
		vehicleID = &id
		vehicleTitle = car.Title()
	}

	// 3. Create the pending order
	now := time.Now()
	creator := userID
	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Ref:           utils.GenerateOrderRef(),
		Customer:      req.Name,
		CustomerEmail: req.Email,
		CreatedBy:     &creator,
		VehicleID:     vehicleID,
		Status:        entity.OrderStatusPending,
		Subject:       req.Subject,
		Message:       req.Message,
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		s.log.Error("Failed to create inquiry order", zap.Error(err))
		return nil, fmt.Errorf("failed to submit feedback")
	}

	s.log.Info("Inquiry received",
		zap.String("order_id", order.ID.String()),
		zap.String("ref", order.Ref),
	)

	// 4. Email the operator, fire and forget
	go s.emailOperator(order, vehicleTitle)

	// 5. In-app notify admins
	s.notifyAdmins(ctx, order)

	return &response.FeedbackResponse{Ref: order.Ref}, nil
}

func (s *feedbackService) emailOperator(order *entity.Order, vehicleTitle string) {
	to := s.config.Feedback.To
	if to == "" || s.mail == nil {
		return
	}

	subject := fmt.Sprintf("New inquiry %s: %s", order.Ref, order.Subject)
	body := fmt.Sprintf(
		"From: %s <%s>\nVehicle: %s\n\n%s\n",
		order.Customer, order.CustomerEmail, vehicleTitle, order.Message,
	)

	if err := s.mail.Send(to, order.CustomerEmail, subject, body); err != nil {
		s.log.Warn("Failed to email inquiry",
			zap.Error(err),
			zap.String("ref", order.Ref),
		)
	}
}

func (s *feedbackService) notifyAdmins(ctx context.Context, order *entity.Order) {
	admins, err := s.repo.User.FindAdmins(ctx)
	if err != nil {
		s.log.Warn("Failed to load admins for notification", zap.Error(err))
		return
	}

	title := "New inquiry"
	body := fmt.Sprintf("%s submitted inquiry %s: %s", order.Customer, order.Ref, order.Subject)
	for _, admin := range admins {
		s.notifier.Notify(ctx, admin.ID, entity.NotificationGeneric, title, body, &order.ID)
	}
}
