package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"car-rental/internal/booking"
	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ==================== FAKES ====================

type fakeOrderRepo struct {
	repository.OrderRepository
	orders map[uuid.UUID]*entity.Order
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	m := make(map[uuid.UUID]*entity.Order, len(orders))
	for _, o := range orders {
		m[o.ID] = o
	}
	return &fakeOrderRepo{orders: m}
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) FindCalendar(_ context.Context, q repository.CalendarQuery) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if q.CreatedBy != nil && (o.CreatedBy == nil || *o.CreatedBy != *q.CreatedBy) {
			continue
		}
		if q.VehicleID != nil && (o.VehicleID == nil || *o.VehicleID != *q.VehicleID) {
			continue
		}
		if q.Search != "" && !matchesSearch(o, q.Search) {
			continue
		}
		if !slotInRange(o, booking.KindPickup, q) && !slotInRange(o, booking.KindReturn, q) {
			continue
		}
		out = append(out, o)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return timeLess(out[i].PickupAt, out[j].PickupAt) ||
			(timeEqual(out[i].PickupAt, out[j].PickupAt) && timeLess(out[i].ReturnAt, out[j].ReturnAt))
	})
	return out, nil
}

func slotInRange(o *entity.Order, kind booking.Kind, q repository.CalendarQuery) bool {
	if q.Kind != "" && q.Kind != kind {
		return false
	}
	iv, ok := booking.OrderSlot(o, kind)
	if !ok {
		return false
	}
	return iv.Overlaps(booking.Interval{Start: q.From, End: q.To})
}

func matchesSearch(o *entity.Order, search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(o.Ref), s) ||
		strings.Contains(strings.ToLower(o.Customer), s) ||
		strings.Contains(strings.ToLower(o.CustomerEmail), s)
}

func timeLess(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}

func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (f *fakeOrderRepo) FindByVehicleInWindow(_ context.Context, vehicleID, excludeID uuid.UUID, from, to time.Time) ([]*entity.Order, error) {
	window := booking.Interval{Start: from, End: to}
	slotOverlaps := func(o *entity.Order, kind booking.Kind) bool {
		iv, ok := booking.OrderSlot(o, kind)
		return ok && iv.Overlaps(window)
	}

	var out []*entity.Order
	for _, o := range f.orders {
		if o.ID == excludeID || o.VehicleID == nil || *o.VehicleID != vehicleID {
			continue
		}
		if slotOverlaps(o, booking.KindPickup) || slotOverlaps(o, booking.KindReturn) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateSchedule(_ context.Context, id uuid.UUID, kind booking.Kind, start, end *time.Time, updatedBy *string) (*entity.Order, error) {
	o := f.orders[id]
	if o == nil {
		return nil, nil
	}

	if kind == booking.KindPickup {
		o.PickupAt, o.PickupEndAt = start, end
	} else {
		o.ReturnAt, o.ReturnEndAt = start, end
	}
	o.BookingUpdatedBy = updatedBy
	o.UpdatedAt = time.Now()
	return o, nil
}

type fakeCarRepo struct {
	repository.CarRepository
	cars map[uuid.UUID]*entity.Car
}

func (f *fakeCarRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Car, error) {
	return f.cars[id], nil
}

type recordedNotification struct {
	userID uuid.UUID
	typ    entity.NotificationType
	title  string
}

type fakeNotifier struct {
	NotificationService
	sent []recordedNotification
}

func (f *fakeNotifier) Notify(_ context.Context, userID uuid.UUID, typ entity.NotificationType, title, _ string, _ *uuid.UUID) {
	f.sent = append(f.sent, recordedNotification{userID: userID, typ: typ, title: title})
}

// ==================== HELPERS ====================

func utc(month, day, hour, min int) time.Time {
	return time.Date(2025, time.Month(month), day, hour, min, 0, 0, time.UTC)
}

func tptr(t time.Time) *time.Time { return &t }

func sptr(s string) *string { return &s }

func scheduledOrder(vehicleID *uuid.UUID, pickupAt, pickupEndAt *time.Time) *entity.Order {
	return &entity.Order{
		Base:      entity.Base{ID: uuid.New()},
		Ref:       "OPT-2025-" + uuid.NewString()[:4],
		Customer:  "Jane Doe",
		VehicleID: vehicleID,
		Status:    entity.OrderStatusPlanning,
		PickupAt:  pickupAt, PickupEndAt: pickupEndAt,
	}
}

func newCalendarService(orders *fakeOrderRepo, cars map[uuid.UUID]*entity.Car, notifier *fakeNotifier) CalendarService {
	repo := &repository.Repository{
		Order: orders,
		Car:   &fakeCarRepo{cars: cars},
	}
	return NewCalendarService(repo, notifier, zap.NewNop())
}

func scheduleReq(kind string, start, end *time.Time) *request.ScheduleUpdateRequest {
	req := &request.ScheduleUpdateRequest{Kind: kind}
	if start != nil {
		req.Start = sptr(start.Format(time.RFC3339))
	}
	if end != nil {
		req.End = sptr(end.Format(time.RFC3339))
	}
	return req
}

var admin = Actor{UserID: uuid.New(), IsAdmin: true}

// ==================== SCHEDULE WRITE ====================

func TestUpdateScheduleRejectsOverlap(t *testing.T) {
	vehicle := uuid.New()
	blocker := scheduledOrder(&vehicle, tptr(utc(6, 3, 10, 0)), tptr(utc(6, 3, 11, 0)))
	moving := scheduledOrder(&vehicle, nil, nil)
	repo := newFakeOrderRepo(blocker, moving)

	svc := newCalendarService(repo, nil, &fakeNotifier{})

	_, err := svc.UpdateSchedule(context.Background(), moving.ID.String(),
		scheduleReq("pickup", tptr(utc(6, 3, 10, 30)), tptr(utc(6, 3, 11, 30))), admin, true)

	var conflict *booking.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if conflict.OrderID != blocker.ID {
		t.Errorf("blocking order = %s, want %s", conflict.OrderID, blocker.ID)
	}
	if moving.PickupAt != nil {
		t.Error("rejected write must not change stored state")
	}
}

func TestUpdateScheduleTouchingSlotsAllowed(t *testing.T) {
	vehicle := uuid.New()
	blocker := scheduledOrder(&vehicle, tptr(utc(6, 3, 10, 0)), tptr(utc(6, 3, 11, 0)))
	moving := scheduledOrder(&vehicle, nil, nil)
	repo := newFakeOrderRepo(blocker, moving)

	svc := newCalendarService(repo, nil, &fakeNotifier{})

	// starts exactly when the other ends: half-open, no overlap
	_, err := svc.UpdateSchedule(context.Background(), moving.ID.String(),
		scheduleReq("pickup", tptr(utc(6, 3, 11, 0)), tptr(utc(6, 3, 12, 0))), admin, true)
	if err != nil {
		t.Fatalf("touching slots rejected: %v", err)
	}
}

func TestUpdateScheduleCrossKindDoesNotConflict(t *testing.T) {
	vehicle := uuid.New()
	blocker := &entity.Order{
		Base:      entity.Base{ID: uuid.New()},
		VehicleID: &vehicle,
		ReturnAt:  tptr(utc(6, 3, 10, 0)), ReturnEndAt: tptr(utc(6, 3, 11, 0)),
	}
	moving := scheduledOrder(&vehicle, nil, nil)
	repo := newFakeOrderRepo(blocker, moving)

	svc := newCalendarService(repo, nil, &fakeNotifier{})

	// a pickup is never checked against another order's return
	_, err := svc.UpdateSchedule(context.Background(), moving.ID.String(),
		scheduleReq("pickup", tptr(utc(6, 3, 10, 30)), tptr(utc(6, 3, 11, 30))), admin, true)
	if err != nil {
		t.Fatalf("pickup blocked by a return slot: %v", err)
	}
}

func TestUpdateScheduleDefaultedEndStillConflicts(t *testing.T) {
	vehicle := uuid.New()
	// blocker has no stored end: effective slot is 10:00-11:00
	blocker := scheduledOrder(&vehicle, tptr(utc(6, 3, 10, 0)), nil)
	moving := scheduledOrder(&vehicle, nil, nil)
	repo := newFakeOrderRepo(blocker, moving)

	svc := newCalendarService(repo, nil, &fakeNotifier{})

	_, err := svc.UpdateSchedule(context.Background(), moving.ID.String(),
		scheduleReq("pickup", tptr(utc(6, 3, 10, 45)), tptr(utc(6, 3, 11, 45))), admin, true)

	var conflict *booking.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want conflict against defaulted 60-minute slot", err)
	}
}

func TestUpdateScheduleLongRunningSlotStillConflicts(t *testing.T) {
	vehicle := uuid.New()
	// blocker spans two and a half days, starting well before the scan
	// window around the requested slot opens
	blocker := scheduledOrder(&vehicle, tptr(utc(6, 1, 0, 0)), tptr(utc(6, 3, 12, 0)))
	moving := scheduledOrder(&vehicle, nil, nil)
	repo := newFakeOrderRepo(blocker, moving)

	svc := newCalendarService(repo, nil, &fakeNotifier{})

	_, err := svc.UpdateSchedule(context.Background(), moving.ID.String(),
		scheduleReq("pickup", tptr(utc(6, 3, 10, 0)), tptr(utc(6, 3, 11, 0))), admin, true)

	var conflict *booking.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want conflict with a slot that began before the scan window", err)
	}
	if conflict.OrderID != blocker.ID {
		t.Errorf("blocking order = %s, want %s", conflict.OrderID, blocker.ID)
	}
}

func TestUpdateScheduleIdempotentRewrite(t *testing.T) {
	vehicle := uuid.New()
	order := scheduledOrder(&vehicle, nil, nil)
	repo := newFakeOrderRepo(order)

	svc := newCalendarService(repo, nil, &fakeNotifier{})
	req := scheduleReq("pickup", tptr(utc(6, 3, 10, 0)), tptr(utc(6, 3, 11, 0)))

	for i := 0; i < 2; i++ {
		if _, err := svc.UpdateSchedule(context.Background(), order.ID.String(), req, admin, true); err != nil {
			t.Fatalf("write %d failed: %v (order must be excluded from its own scan)", i+1, err)
		}
	}
	if order.PickupAt == nil || !order.PickupAt.Equal(utc(6, 3, 10, 0)) {
		t.Errorf("stored pickup = %v, want 10:00", order.PickupAt)
	}
}

func TestUpdateScheduleConflictCheckDisabled(t *testing.T) {
	vehicle := uuid.New()
	blocker := scheduledOrder(&vehicle, tptr(utc(6, 3, 10, 0)), tptr(utc(6, 3, 11, 0)))
	moving := scheduledOrder(&vehicle, nil, nil)
	repo := newFakeOrderRepo(blocker, moving)

	svc := newCalendarService(repo, nil, &fakeNotifier{})

	_, err := svc.UpdateSchedule(context.Background(), moving.ID.String(),
		scheduleReq("pickup", tptr(utc(6, 3, 10, 30)), tptr(utc(6, 3, 11, 30))), admin, false)
	if err != nil {
		t.Fatalf("disabled conflict check still rejected: %v", err)
	}
}

func TestUpdateScheduleClearSlot(t *testing.T) {
	vehicle := uuid.New()
	order := scheduledOrder(&vehicle, tptr(utc(6, 3, 10, 0)), tptr(utc(6, 3, 11, 0)))
	repo := newFakeOrderRepo(order)

	svc := newCalendarService(repo, map[uuid.UUID]*entity.Car{}, &fakeNotifier{})

	if _, err := svc.UpdateSchedule(context.Background(), order.ID.String(),
		scheduleReq("pickup", nil, nil), admin, true); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if order.PickupAt != nil || order.PickupEndAt != nil {
		t.Error("clear mode must null both timestamps")
	}

	// cleared slot disappears from subsequent reads
	resp, err := svc.ListEvents(context.Background(), &request.CalendarRequest{
		From: utc(6, 1, 0, 0).Format(time.RFC3339),
		To:   utc(6, 8, 0, 0).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("list after clear: %v", err)
	}
	if len(resp.Events) != 0 {
		t.Errorf("events after clear = %d, want 0", len(resp.Events))
	}
}

func TestUpdateScheduleValidation(t *testing.T) {
	order := scheduledOrder(nil, nil, nil)
	repo := newFakeOrderRepo(order)
	svc := newCalendarService(repo, nil, &fakeNotifier{})
	ctx := context.Background()

	tests := []struct {
		name    string
		orderID string
		req     *request.ScheduleUpdateRequest
	}{
		{"bad order id", "not-a-uuid", scheduleReq("pickup", tptr(utc(6, 3, 10, 0)), tptr(utc(6, 3, 11, 0)))},
		{"unknown kind", order.ID.String(), scheduleReq("delivery", tptr(utc(6, 3, 10, 0)), tptr(utc(6, 3, 11, 0)))},
		{"end equals start", order.ID.String(), scheduleReq("pickup", tptr(utc(6, 3, 10, 0)), tptr(utc(6, 3, 10, 0)))},
		{"end before start", order.ID.String(), scheduleReq("pickup", tptr(utc(6, 3, 10, 0)), tptr(utc(6, 3, 9, 0)))},
		{"end without start", order.ID.String(), scheduleReq("pickup", nil, tptr(utc(6, 3, 11, 0)))},
		{"start without end", order.ID.String(), scheduleReq("pickup", tptr(utc(6, 3, 10, 0)), nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.UpdateSchedule(ctx, tt.orderID, tt.req, admin, true); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}

	if order.PickupAt != nil || order.PickupEndAt != nil {
		t.Error("failed validations must not change stored state")
	}
}

func TestUpdateScheduleOrderNotFound(t *testing.T) {
	svc := newCalendarService(newFakeOrderRepo(), nil, &fakeNotifier{})

	_, err := svc.UpdateSchedule(context.Background(), uuid.NewString(),
		scheduleReq("pickup", tptr(utc(6, 3, 10, 0)), tptr(utc(6, 3, 11, 0))), admin, true)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestUpdateScheduleStampsActor(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name  string
		actor Actor
		want  string
	}{
		{"admin", Actor{UserID: uuid.New(), IsAdmin: true}, "admin"},
		{"user", Actor{UserID: userID}, userID.String()},
		{"system", Actor{}, "system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := scheduledOrder(nil, nil, nil)
			svc := newCalendarService(newFakeOrderRepo(order), nil, &fakeNotifier{})

			if _, err := svc.UpdateSchedule(context.Background(), order.ID.String(),
				scheduleReq("pickup", tptr(utc(6, 3, 10, 0)), tptr(utc(6, 3, 11, 0))), tt.actor, true); err != nil {
				t.Fatalf("update failed: %v", err)
			}
			if order.BookingUpdatedBy == nil || *order.BookingUpdatedBy != tt.want {
				t.Errorf("bookingUpdatedBy = %v, want %q", order.BookingUpdatedBy, tt.want)
			}
		})
	}
}

func TestUpdateScheduleNotifiesOrderOwner(t *testing.T) {
	owner := uuid.New()
	order := scheduledOrder(nil, nil, nil)
	order.CreatedBy = &owner

	notifier := &fakeNotifier{}
	svc := newCalendarService(newFakeOrderRepo(order), nil, notifier)

	if _, err := svc.UpdateSchedule(context.Background(), order.ID.String(),
		scheduleReq("pickup", tptr(utc(6, 3, 10, 0)), tptr(utc(6, 3, 11, 0))), admin, true); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifier.sent))
	}
	if notifier.sent[0].userID != owner || notifier.sent[0].typ != entity.NotificationBookingChanged {
		t.Errorf("notification = %+v, want booking_changed to owner", notifier.sent[0])
	}
}

// ==================== CALENDAR READ ====================

func TestListEventsDefaultsMissingEnd(t *testing.T) {
	vehicle := uuid.New()
	order := scheduledOrder(&vehicle, tptr(utc(6, 3, 10, 0)), nil)
	cars := map[uuid.UUID]*entity.Car{
		vehicle: {Base: entity.Base{ID: vehicle}, Make: "Porsche", Model: "911"},
	}

	svc := newCalendarService(newFakeOrderRepo(order), cars, &fakeNotifier{})

	resp, err := svc.ListEvents(context.Background(), &request.CalendarRequest{
		From: "2025-06-01T00:00:00Z",
		To:   "2025-06-08T00:00:00Z",
		Kind: "pickup",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(resp.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(resp.Events))
	}

	ev := resp.Events[0]
	if !ev.End.Equal(utc(6, 3, 11, 0)) {
		t.Errorf("end = %v, want 11:00 (60-minute default)", ev.End)
	}
	if ev.Title != "Porsche 911" {
		t.Errorf("title = %q, want vehicle title", ev.Title)
	}
	if ev.ID != order.ID.String()+":pickup" {
		t.Errorf("id = %q, want composite order:kind", ev.ID)
	}
}

func TestListEventsIgnoresInvalidStoredEnd(t *testing.T) {
	// stored end not after start: defaulted, not honored
	order := scheduledOrder(nil, tptr(utc(6, 3, 10, 0)), tptr(utc(6, 3, 9, 0)))
	svc := newCalendarService(newFakeOrderRepo(order), nil, &fakeNotifier{})

	resp, err := svc.ListEvents(context.Background(), &request.CalendarRequest{
		From: "2025-06-01T00:00:00Z",
		To:   "2025-06-08T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(resp.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(resp.Events))
	}
	if !resp.Events[0].End.Equal(utc(6, 3, 11, 0)) {
		t.Errorf("end = %v, want defaulted 11:00", resp.Events[0].End)
	}
}

func TestListEventsHalfOpenRangeExcludesTouching(t *testing.T) {
	// event ends exactly at from: not intersecting
	order := scheduledOrder(nil, tptr(utc(6, 1, 23, 0)), tptr(utc(6, 2, 0, 0)))
	svc := newCalendarService(newFakeOrderRepo(order), nil, &fakeNotifier{})

	resp, err := svc.ListEvents(context.Background(), &request.CalendarRequest{
		From: "2025-06-02T00:00:00Z",
		To:   "2025-06-08T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(resp.Events) != 0 {
		t.Errorf("events = %d, want 0 (touching endpoint excluded)", len(resp.Events))
	}
}

func TestListEventsKindFilterAndSearch(t *testing.T) {
	a := scheduledOrder(nil, tptr(utc(6, 3, 10, 0)), nil)
	a.Ref = "OPT-2025-AAAA"
	a.ReturnAt = tptr(utc(6, 5, 10, 0))
	b := scheduledOrder(nil, tptr(utc(6, 4, 10, 0)), nil)
	b.Ref = "OPT-2025-BBBB"

	svc := newCalendarService(newFakeOrderRepo(a, b), nil, &fakeNotifier{})
	ctx := context.Background()
	base := &request.CalendarRequest{
		From: "2025-06-01T00:00:00Z",
		To:   "2025-06-08T00:00:00Z",
	}

	all, err := svc.ListEvents(ctx, base)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all.Events) != 3 {
		t.Errorf("all events = %d, want 3 (two pickups, one return)", len(all.Events))
	}

	pickups, err := svc.ListEvents(ctx, &request.CalendarRequest{From: base.From, To: base.To, Kind: "pickup"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(pickups.Events) != 2 {
		t.Errorf("pickup events = %d, want 2", len(pickups.Events))
	}

	found, err := svc.ListEvents(ctx, &request.CalendarRequest{From: base.From, To: base.To, Search: "aaaa"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(found.Events) != 2 {
		t.Errorf("search events = %d, want 2 (pickup and return of the match)", len(found.Events))
	}
}

func TestListEventsSortedByStart(t *testing.T) {
	late := scheduledOrder(nil, tptr(utc(6, 5, 10, 0)), nil)
	early := scheduledOrder(nil, tptr(utc(6, 2, 10, 0)), nil)

	svc := newCalendarService(newFakeOrderRepo(late, early), nil, &fakeNotifier{})

	resp, err := svc.ListEvents(context.Background(), &request.CalendarRequest{
		From: "2025-06-01T00:00:00Z",
		To:   "2025-06-08T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(resp.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(resp.Events))
	}
	if resp.Events[0].Start.After(resp.Events[1].Start) {
		t.Error("events not sorted by start ascending")
	}
}

func TestListMyEventsScopedToOwner(t *testing.T) {
	owner := uuid.New()
	mine := scheduledOrder(nil, tptr(utc(6, 3, 10, 0)), nil)
	mine.CreatedBy = &owner
	other := scheduledOrder(nil, tptr(utc(6, 4, 10, 0)), nil)

	svc := newCalendarService(newFakeOrderRepo(mine, other), nil, &fakeNotifier{})

	resp, err := svc.ListMyEvents(context.Background(), owner, &request.CalendarRequest{
		From: "2025-06-01T00:00:00Z",
		To:   "2025-06-08T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(resp.Events) != 1 {
		t.Fatalf("events = %d, want 1 (only the caller's orders)", len(resp.Events))
	}
	if resp.Events[0].OrderID != mine.ID.String() {
		t.Errorf("event order = %s, want %s", resp.Events[0].OrderID, mine.ID)
	}
}

func TestListEventsRangeValidation(t *testing.T) {
	svc := newCalendarService(newFakeOrderRepo(), nil, &fakeNotifier{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  *request.CalendarRequest
	}{
		{"missing from", &request.CalendarRequest{To: "2025-06-08T00:00:00Z"}},
		{"garbage to", &request.CalendarRequest{From: "2025-06-01T00:00:00Z", To: "not-a-date"}},
		{"from equals to", &request.CalendarRequest{From: "2025-06-01T00:00:00Z", To: "2025-06-01T00:00:00Z"}},
		{"from after to", &request.CalendarRequest{From: "2025-06-08T00:00:00Z", To: "2025-06-01T00:00:00Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ListEvents(ctx, tt.req); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestListEventsUnknownKindMeansAll(t *testing.T) {
	order := scheduledOrder(nil, tptr(utc(6, 3, 10, 0)), nil)
	svc := newCalendarService(newFakeOrderRepo(order), nil, &fakeNotifier{})

	resp, err := svc.ListEvents(context.Background(), &request.CalendarRequest{
		From: "2025-06-01T00:00:00Z",
		To:   "2025-06-08T00:00:00Z",
		Kind: "whatever",
	})
	if err != nil {
		t.Fatalf("unrecognized kind must fall back to all, got: %v", err)
	}
	if len(resp.Events) != 1 {
		t.Errorf("events = %d, want 1", len(resp.Events))
	}
}
