package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental/internal/booking"
	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// conflictScanPadding widens the candidate query window around a requested
// slot so adjacent slots are never missed while keeping the scan bounded.
const conflictScanPadding = 24 * time.Hour

// Actor identifies who performs a schedule write, for the audit stamp.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

func (a Actor) stamp() string {
	switch {
	case a.IsAdmin:
		return "admin"
	case a.UserID != uuid.Nil:
		return a.UserID.String()
	default:
		return "system"
	}
}

type CalendarService interface {
	// ListEvents returns all events in range, admin-wide.
	ListEvents(ctx context.Context, req *request.CalendarRequest) (*response.CalendarResponse, error)
	// ListMyEvents returns events in range for orders created by userID.
	ListMyEvents(ctx context.Context, userID uuid.UUID, req *request.CalendarRequest) (*response.CalendarResponse, error)
	// UpdateSchedule sets, moves, or clears one slot of one order. A
	// detected double booking is returned as *booking.ConflictError.
	UpdateSchedule(ctx context.Context, orderID string, req *request.ScheduleUpdateRequest, actor Actor, checkConflicts bool) (*response.OrderResponse, error)
}

type calendarService struct {
	repo     *repository.Repository
	notifier NotificationService
	log      *zap.Logger
}

func NewCalendarService(repo *repository.Repository, notifier NotificationService, log *zap.Logger) CalendarService {
	return &calendarService{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

func (s *calendarService) ListEvents(ctx context.Context, req *request.CalendarRequest) (*response.CalendarResponse, error) {
	q, err := s.buildQuery(req)
	if err != nil {
		return nil, err
	}
	return s.listEvents(ctx, q)
}

func (s *calendarService) ListMyEvents(ctx context.Context, userID uuid.UUID, req *request.CalendarRequest) (*response.CalendarResponse, error) {
	q, err := s.buildQuery(req)
	if err != nil {
		return nil, err
	}
	q.CreatedBy = &userID
	return s.listEvents(ctx, q)
}

// buildQuery validates the raw calendar parameters. From and to are
// mandatory; an unrecognized kind falls back to "all"; a malformed vehicle id
// is ignored rather than rejected.
func (s *calendarService) buildQuery(req *request.CalendarRequest) (repository.CalendarQuery, error) {
	var q repository.CalendarQuery

	from, err := time.Parse(time.RFC3339, req.From)
	if err != nil {
		return q, fmt.Errorf("validation failed: from must be a valid RFC 3339 timestamp")
	}
	to, err := time.Parse(time.RFC3339, req.To)
	if err != nil {
		return q, fmt.Errorf("validation failed: to must be a valid RFC 3339 timestamp")
	}
	if !from.Before(to) {
		return q, fmt.Errorf("validation failed: from must be before to")
	}

	q.From = from
	q.To = to
	q.Search = req.Search

	if kind, ok := booking.ParseKind(req.Kind); ok {
		q.Kind = kind
	}

	if req.VehicleID != "" {
		if vehicleID, err := uuid.Parse(req.VehicleID); err == nil {
			q.VehicleID = &vehicleID
		}
	}

	return q, nil
}

func (s *calendarService) listEvents(ctx context.Context, q repository.CalendarQuery) (*response.CalendarResponse, error) {
	orders, err := s.repo.Order.FindCalendar(ctx, q)
	if err != nil {
		s.log.Error("Failed to query calendar orders", zap.Error(err))
		return nil, fmt.Errorf("failed to get calendar")
	}

	rangeIv := booking.Interval{Start: q.From, End: q.To}
	cars := make(map[uuid.UUID]*entity.Car)

	var events []*booking.Event
	for _, order := range orders {
		car := s.vehicleFor(ctx, order, cars)
		for _, kind := range []booking.Kind{booking.KindPickup, booking.KindReturn} {
			if q.Kind != "" && q.Kind != kind {
				continue
			}
			ev := booking.BuildEvent(order, car, kind)
			if ev == nil {
				continue
			}
			// The SQL range predicate matches per order; an order can
			// qualify through one slot while the other falls outside.
			if !rangeIv.Overlaps(booking.Interval{Start: ev.Start, End: ev.End}) {
				continue
			}
			events = append(events, ev)
		}
	}

	return &response.CalendarResponse{
		From:   q.From,
		To:     q.To,
		Events: events,
	}, nil
}

func (s *calendarService) UpdateSchedule(ctx context.Context, orderID string, req *request.ScheduleUpdateRequest, actor Actor, checkConflicts bool) (*response.OrderResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Schedule update validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	kind, ok := booking.ParseKind(req.Kind)
	if !ok {
		return nil, fmt.Errorf("validation failed: unrecognized slot kind")
	}

	start, end, err := parseSlotTimes(req.Start, req.End)
	if err != nil {
		return nil, err
	}

	stamp := actor.stamp()

	// Clear mode: both timestamps null removes the slot.
	if start == nil && end == nil {
		updated, err := s.repo.Order.UpdateSchedule(ctx, id, kind, nil, nil, &stamp)
		if err != nil {
			s.log.Error("Failed to clear schedule slot", zap.Error(err), zap.String("order_id", orderID))
			return nil, fmt.Errorf("failed to update schedule")
		}
		if updated == nil {
			return nil, fmt.Errorf("order not found")
		}

		s.log.Info("Schedule slot cleared",
			zap.String("order_id", orderID),
			zap.String("kind", string(kind)),
			zap.String("updated_by", stamp),
		)
		s.notifyScheduleChange(ctx, updated, actor)

		resp := response.OrderToResponse(updated)
		return &resp, nil
	}

	// Set/move mode requires the full slot; a lone timestamp is rejected.
	if start == nil || end == nil {
		return nil, fmt.Errorf("validation failed: start and end must both be set or both be null")
	}
	if !end.After(*start) {
		return nil, fmt.Errorf("validation failed: end must be after start")
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find order", zap.Error(err), zap.String("order_id", orderID))
		return nil, fmt.Errorf("failed to find order")
	}
	if order == nil {
		return nil, fmt.Errorf("order not found")
	}

	// Conflict scan against same-vehicle same-kind slots. The order being
	// written is excluded so rewriting the same slot stays idempotent.
	if checkConflicts && order.VehicleID != nil {
		requested, _ := booking.SlotInterval(start, end)

		candidates, err := s.repo.Order.FindByVehicleInWindow(ctx,
			*order.VehicleID, order.ID,
			requested.Start.Add(-conflictScanPadding),
			requested.End.Add(conflictScanPadding))
		if err != nil {
			s.log.Error("Failed to scan for conflicts", zap.Error(err), zap.String("order_id", orderID))
			return nil, fmt.Errorf("failed to check conflicts")
		}

		if conflict := booking.FindConflict(candidates, kind, requested); conflict != nil {
			s.log.Info("Schedule conflict detected",
				zap.String("order_id", orderID),
				zap.String("blocking_order", conflict.OrderID.String()),
				zap.String("kind", string(kind)),
			)
			return nil, conflict
		}
	}

	updated, err := s.repo.Order.UpdateSchedule(ctx, id, kind, start, end, &stamp)
	if err != nil {
		s.log.Error("Failed to update schedule", zap.Error(err), zap.String("order_id", orderID))
		return nil, fmt.Errorf("failed to update schedule")
	}
	if updated == nil {
		return nil, fmt.Errorf("order not found")
	}

	s.log.Info("Schedule slot updated",
		zap.String("order_id", orderID),
		zap.String("kind", string(kind)),
		zap.String("updated_by", stamp),
	)
	s.notifyScheduleChange(ctx, updated, actor)

	resp := response.OrderToResponse(updated)
	return &resp, nil
}

// ==================== HELPERS ====================

func parseSlotTimes(startStr, endStr *string) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if startStr != nil {
		t, err := time.Parse(time.RFC3339, *startStr)
		if err != nil {
			return nil, nil, fmt.Errorf("validation failed: start must be a valid RFC 3339 timestamp")
		}
		start = &t
	}
	if endStr != nil {
		t, err := time.Parse(time.RFC3339, *endStr)
		if err != nil {
			return nil, nil, fmt.Errorf("validation failed: end must be a valid RFC 3339 timestamp")
		}
		end = &t
	}

	return start, end, nil
}

func (s *calendarService) vehicleFor(ctx context.Context, order *entity.Order, cache map[uuid.UUID]*entity.Car) *entity.Car {
	if order.VehicleID == nil {
		return nil
	}
	if car, ok := cache[*order.VehicleID]; ok {
		return car
	}

	car, err := s.repo.Car.FindByID(ctx, *order.VehicleID)
	if err != nil {
		s.log.Warn("Failed to load vehicle for event",
			zap.Error(err),
			zap.String("vehicle_id", order.VehicleID.String()),
		)
		car = nil
	}
	cache[*order.VehicleID] = car
	return car
}

func (s *calendarService) notifyScheduleChange(ctx context.Context, order *entity.Order, actor Actor) {
	if order.CreatedBy == nil || *order.CreatedBy == actor.UserID {
		return
	}
	s.notifier.Notify(ctx, *order.CreatedBy, entity.NotificationBookingChanged,
		"Booking updated",
		fmt.Sprintf("The schedule of your order %s was updated.", order.Ref),
		&order.ID)
}
