package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	List(ctx context.Context, req *request.OrderListRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	ListMine(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	GetByID(ctx context.Context, id string) (*response.OrderResponse, error)
	Patch(ctx context.Context, id string, req *request.OrderUpdateRequest) (*response.OrderResponse, error)
}

type orderService struct {
	repo     *repository.Repository
	notifier NotificationService
	log      *zap.Logger
}

func NewOrderService(repo *repository.Repository, notifier NotificationService, log *zap.Logger) OrderService {
	return &orderService{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// pricedStatus reports whether an order in this status carries a price.
func pricedStatus(status entity.OrderStatus) bool {
	return status == entity.OrderStatusPlanned || status == entity.OrderStatusDone
}

// daysBetween counts rental days between pickup and return, rounding partial
// days up, never below one.
func daysBetween(start, end time.Time) int {
	diff := end.Sub(start)
	if diff <= 0 {
		return 1
	}
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// resolveDays prefers the explicitly set rentalDays, falling back to the
// pickup/return span.
func resolveDays(order *entity.Order) *int {
	if order.RentalDays != nil && *order.RentalDays > 0 {
		return order.RentalDays
	}
	if order.PickupAt != nil && order.ReturnAt != nil {
		d := daysBetween(*order.PickupAt, *order.ReturnAt)
		return &d
	}
	return nil
}

// computePricing builds the price snapshot for an order against its vehicle.
// Nil when the order has no resolvable duration or no vehicle.
func computePricing(order *entity.Order, car *entity.Car) *entity.Pricing {
	if car == nil || car.PricePerDay <= 0 {
		return nil
	}
	days := resolveDays(order)
	if days == nil {
		return nil
	}

	perDay := car.PricePerDay
	currency := car.Currency
	if currency == "" {
		currency = "USD"
	}

	return &entity.Pricing{
		TotalUSD:    float64(*days) * perDay,
		Currency:    currency,
		Days:        days,
		PricePerDay: &perDay,
	}
}

func (s *orderService) List(ctx context.Context, req *request.OrderListRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter := repository.OrderFilter{
		Query:  req.Query,
		Status: req.Status,
	}

	orders, err := s.repo.Order.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list orders", zap.Error(err))
		return nil, fmt.Errorf("failed to get orders")
	}

	total, err := s.repo.Order.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count orders", zap.Error(err))
		return nil, fmt.Errorf("failed to get orders")
	}

	data := s.ordersToResponse(ctx, orders, req.WithPrice)
	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *orderService) ListMine(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	filter := repository.OrderFilter{CreatedBy: &userID}

	orders, err := s.repo.Order.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list user orders", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get orders")
	}

	total, err := s.repo.Order.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count user orders", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get orders")
	}

	data := s.ordersToResponse(ctx, orders, false)
	return response.NewPaginatedResponse(data, page.Page, page.Limit(), total), nil
}

func (s *orderService) GetByID(ctx context.Context, id string) (*response.OrderResponse, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid order id")
	}

	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		s.log.Error("Failed to find order", zap.Error(err), zap.String("order_id", id))
		return nil, fmt.Errorf("failed to find order")
	}
	if order == nil {
		return nil, fmt.Errorf("order not found")
	}

	resp := s.orderToResponse(ctx, order, false)
	return &resp, nil
}

func (s *orderService) Patch(ctx context.Context, id string, req *request.OrderUpdateRequest) (*response.OrderResponse, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid order id")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Order patch validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		s.log.Error("Failed to find order", zap.Error(err), zap.String("order_id", id))
		return nil, fmt.Errorf("failed to find order")
	}
	if order == nil {
		return nil, fmt.Errorf("order not found")
	}

	prevStatus := order.Status
	bookingChanged := false

	if req.VehicleID != nil {
		vehicleID, err := uuid.Parse(*req.VehicleID)
		if err != nil {
			return nil, fmt.Errorf("invalid vehicle id")
		}
		vehicle, err := s.repo.Car.FindByID(ctx, vehicleID)
		if err != nil {
			s.log.Error("Failed to find vehicle", zap.Error(err), zap.String("vehicle_id", *req.VehicleID))
			return nil, fmt.Errorf("failed to find vehicle")
		}
		if vehicle == nil {
			return nil, fmt.Errorf("vehicle not found")
		}
		if order.VehicleID == nil || *order.VehicleID != vehicleID {
			order.VehicleID = &vehicleID
			bookingChanged = true
		}
	}

	if req.RentalDays != nil {
		if order.RentalDays == nil || *order.RentalDays != *req.RentalDays {
			order.RentalDays = req.RentalDays
			bookingChanged = true
		}
	}

	if req.PickupEndAt != nil {
		end, changed, err := applySlotEnd(order.PickupAt, order.PickupEndAt, *req.PickupEndAt)
		if err != nil {
			return nil, fmt.Errorf("invalid pickup end: %s", err)
		}
		if changed {
			order.PickupEndAt = end
			bookingChanged = true
		}
	}

	if req.ReturnEndAt != nil {
		end, changed, err := applySlotEnd(order.ReturnAt, order.ReturnEndAt, *req.ReturnEndAt)
		if err != nil {
			return nil, fmt.Errorf("invalid return end: %s", err)
		}
		if changed {
			order.ReturnEndAt = end
			bookingChanged = true
		}
	}

	if req.Status != nil {
		order.Status = entity.OrderStatus(*req.Status)
	}

	// Pricing follows status: priced statuses get a fresh snapshot, a
	// canceled order loses its price, everything else keeps what it had.
	switch {
	case order.Status == entity.OrderStatusCanceled:
		order.Pricing = nil
	case pricedStatus(order.Status):
		order.Pricing = computePricing(order, s.loadVehicle(ctx, order))
	}

	if bookingChanged {
		by := "admin"
		order.BookingUpdatedBy = &by
	}

	order.UpdatedAt = time.Now()
	if err := s.repo.Order.Update(ctx, order); err != nil {
		s.log.Error("Failed to update order", zap.Error(err), zap.String("order_id", id))
		return nil, fmt.Errorf("failed to update order")
	}

	s.notifyPatch(ctx, order, prevStatus, bookingChanged)

	s.log.Info("Order updated",
		zap.String("order_id", id),
		zap.String("status", string(order.Status)),
	)

	resp := s.orderToResponse(ctx, order, false)
	return &resp, nil
}

// ==================== HELPERS ====================

// applySlotEnd validates an end-timestamp edit against the slot's start.
func applySlotEnd(start, current *time.Time, raw string) (*time.Time, bool, error) {
	end, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false, fmt.Errorf("must be RFC3339")
	}
	if start == nil {
		return nil, false, fmt.Errorf("slot has no start time")
	}
	if !end.After(*start) {
		return nil, false, fmt.Errorf("must be after the start time")
	}
	if current != nil && current.Equal(end) {
		return current, false, nil
	}
	return &end, true, nil
}

func (s *orderService) notifyPatch(ctx context.Context, order *entity.Order, prevStatus entity.OrderStatus, bookingChanged bool) {
	if order.CreatedBy == nil {
		return
	}

	if order.Status == entity.OrderStatusPlanning && prevStatus != entity.OrderStatusPlanning {
		s.notifier.Notify(ctx, *order.CreatedBy, entity.NotificationBookingReady,
			"Choose your booking date",
			fmt.Sprintf("Your order %s is ready for scheduling. Pick your pickup and return slots.", order.Ref),
			&order.ID)
		return
	}

	if bookingChanged {
		s.notifier.Notify(ctx, *order.CreatedBy, entity.NotificationBookingChanged,
			"Booking updated",
			fmt.Sprintf("Details of your order %s were updated.", order.Ref),
			&order.ID)
	}
}

func (s *orderService) loadVehicle(ctx context.Context, order *entity.Order) *entity.Car {
	if order.VehicleID == nil {
		return nil
	}
	car, err := s.repo.Car.FindByID(ctx, *order.VehicleID)
	if err != nil {
		s.log.Warn("Failed to load vehicle for pricing",
			zap.Error(err),
			zap.String("vehicle_id", order.VehicleID.String()),
		)
		return nil
	}
	return car
}

func (s *orderService) orderToResponse(ctx context.Context, order *entity.Order, withPrice bool) response.OrderResponse {
	resp := response.OrderToResponse(order)

	if order.VehicleID != nil {
		if car := s.loadVehicle(ctx, order); car != nil {
			resp.VehicleTitle = car.Title()

			// On-the-fly enrichment for priced orders missing a snapshot.
			if withPrice && resp.Pricing == nil && pricedStatus(order.Status) {
				if pricing := computePricing(order, car); pricing != nil {
					resp.Pricing = &response.PricingResponse{
						TotalUSD:    pricing.TotalUSD,
						Currency:    pricing.Currency,
						Days:        pricing.Days,
						PricePerDay: pricing.PricePerDay,
					}
				}
			}
		}
	}

	return resp
}

func (s *orderService) ordersToResponse(ctx context.Context, orders []*entity.Order, withPrice bool) []response.OrderResponse {
	out := make([]response.OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, s.orderToResponse(ctx, order, withPrice))
	}
	return out
}
