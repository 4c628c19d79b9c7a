package booking

import (
	"testing"
	"time"

	"car-rental/internal/data/entity"

	"github.com/google/uuid"
)

func ts(h, m int) time.Time {
	return time.Date(2025, 6, 3, h, m, 0, 0, time.UTC)
}

func tp(t time.Time) *time.Time { return &t }

func TestSlotInterval_NilStart(t *testing.T) {
	if _, ok := SlotInterval(nil, tp(ts(11, 0))); ok {
		t.Fatal("expected no interval when start is nil")
	}
}

func TestSlotInterval_DefaultDuration(t *testing.T) {
	iv, ok := SlotInterval(tp(ts(10, 0)), nil)
	if !ok {
		t.Fatal("expected interval")
	}
	if !iv.End.Equal(ts(11, 0)) {
		t.Fatalf("expected end 11:00, got %s", iv.End.Format(time.RFC3339))
	}
}

func TestSlotInterval_InvalidStoredEnd(t *testing.T) {
	// An end at or before the start is ignored and the default applies.
	for _, end := range []time.Time{ts(10, 0), ts(9, 30)} {
		iv, ok := SlotInterval(tp(ts(10, 0)), tp(end))
		if !ok {
			t.Fatal("expected interval")
		}
		if !iv.End.Equal(ts(11, 0)) {
			t.Fatalf("stored end %s: expected default end 11:00, got %s",
				end.Format(time.RFC3339), iv.End.Format(time.RFC3339))
		}
	}
}

func TestSlotInterval_StoredEndKept(t *testing.T) {
	iv, _ := SlotInterval(tp(ts(10, 0)), tp(ts(12, 30)))
	if !iv.End.Equal(ts(12, 30)) {
		t.Fatalf("expected stored end kept, got %s", iv.End.Format(time.RFC3339))
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	base := Interval{Start: ts(10, 0), End: ts(11, 0)}

	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Interval{ts(10, 0), ts(11, 0)}, true},
		{"contained", Interval{ts(10, 15), ts(10, 45)}, true},
		{"overlap right", Interval{ts(10, 30), ts(11, 30)}, true},
		{"overlap left", Interval{ts(9, 30), ts(10, 30)}, true},
		{"touching after", Interval{ts(11, 0), ts(12, 0)}, false},
		{"touching before", Interval{ts(9, 0), ts(10, 0)}, false},
		{"disjoint", Interval{ts(12, 0), ts(13, 0)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Fatalf("Overlaps(%v) = %v, want %v", tc.other, got, tc.want)
			}
			// Overlap is symmetric.
			if got := tc.other.Overlaps(base); got != tc.want {
				t.Fatalf("reverse Overlaps(%v) = %v, want %v", tc.other, got, tc.want)
			}
		})
	}
}

func TestBuildEvent_NoStart(t *testing.T) {
	order := &entity.Order{}
	order.ID = uuid.New()
	order.ReturnAt = tp(ts(14, 0))

	if ev := BuildEvent(order, nil, KindPickup); ev != nil {
		t.Fatalf("expected nil pickup event, got %+v", ev)
	}
	if ev := BuildEvent(order, nil, KindReturn); ev == nil {
		t.Fatal("expected return event")
	}
}

func TestBuildEvent_Shape(t *testing.T) {
	carID := uuid.New()
	order := &entity.Order{
		Ref:           "OPT-2025-AB12",
		Customer:      "Jane Doe",
		CustomerEmail: "jane@example.com",
		VehicleID:     &carID,
		Status:        entity.OrderStatusPlanning,
		PickupAt:      tp(ts(10, 0)),
	}
	order.ID = uuid.New()

	car := &entity.Car{Make: "Porsche", Model: "911", ThumbnailURL: "/img/911.jpg"}

	ev := BuildEvent(order, car, KindPickup)
	if ev == nil {
		t.Fatal("expected event")
	}
	if ev.ID != order.ID.String()+":pickup" {
		t.Fatalf("unexpected event id %s", ev.ID)
	}
	if ev.Title != "Porsche 911" {
		t.Fatalf("unexpected title %q", ev.Title)
	}
	if !ev.End.Equal(ts(11, 0)) {
		t.Fatalf("expected default 60-minute end, got %s", ev.End.Format(time.RFC3339))
	}
	if ev.VehicleID == nil || *ev.VehicleID != carID.String() {
		t.Fatal("vehicle id not propagated")
	}
	if ev.ThumbnailURL == nil || *ev.ThumbnailURL != "/img/911.jpg" {
		t.Fatal("thumbnail not propagated")
	}
}

func TestBuildEvent_NoVehicleFallbackTitle(t *testing.T) {
	order := &entity.Order{PickupAt: tp(ts(10, 0))}
	order.ID = uuid.New()

	ev := BuildEvent(order, nil, KindPickup)
	if ev.Title != "Vehicle" {
		t.Fatalf("expected fallback title, got %q", ev.Title)
	}
	if ev.VehicleID != nil {
		t.Fatal("expected nil vehicle id")
	}
}

func TestFindConflict_SameKindOnly(t *testing.T) {
	other := &entity.Order{PickupAt: tp(ts(10, 0)), PickupEndAt: tp(ts(11, 0))}
	other.ID = uuid.New()

	// Pickup vs pickup overlap is rejected.
	if c := FindConflict([]*entity.Order{other}, KindPickup, Interval{ts(10, 30), ts(11, 30)}); c == nil {
		t.Fatal("expected conflict")
	} else if c.OrderID != other.ID {
		t.Fatalf("conflict blames wrong order: %s", c.OrderID)
	}

	// Same interval as a return slot does not block: cross-kind independence.
	if c := FindConflict([]*entity.Order{other}, KindReturn, Interval{ts(10, 0), ts(11, 0)}); c != nil {
		t.Fatalf("unexpected cross-kind conflict: %v", c)
	}
}

func TestFindConflict_TouchingSucceeds(t *testing.T) {
	other := &entity.Order{PickupAt: tp(ts(10, 0)), PickupEndAt: tp(ts(11, 0))}
	other.ID = uuid.New()

	if c := FindConflict([]*entity.Order{other}, KindPickup, Interval{ts(11, 0), ts(12, 0)}); c != nil {
		t.Fatalf("touching slots must not conflict: %v", c)
	}
}

func TestFindConflict_DefaultedEnd(t *testing.T) {
	// Candidate has no stored end; its effective slot is 10:00-11:00.
	other := &entity.Order{PickupAt: tp(ts(10, 0))}
	other.ID = uuid.New()

	if c := FindConflict([]*entity.Order{other}, KindPickup, Interval{ts(10, 45), ts(11, 45)}); c == nil {
		t.Fatal("expected conflict against defaulted end")
	}
	if c := FindConflict([]*entity.Order{other}, KindPickup, Interval{ts(11, 0), ts(12, 0)}); c != nil {
		t.Fatal("slot starting at defaulted end must not conflict")
	}
}
