// Package booking holds the pure scheduling core: slot intervals with the
// default 60-minute length rule, half-open overlap checks, calendar event
// shaping, and vehicle double-booking detection. Nothing here touches the
// database; callers pass loaded orders in.
package booking

import (
	"fmt"
	"time"

	"car-rental/internal/data/entity"

	"github.com/google/uuid"
)

// DefaultSlotDuration is the effective slot length when an order has a start
// timestamp but no usable end timestamp.
const DefaultSlotDuration = 60 * time.Minute

// Kind selects which slot of an order an operation refers to.
type Kind string

const (
	KindPickup Kind = "pickup"
	KindReturn Kind = "return"
)

// ParseKind validates a client-supplied slot kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindPickup, KindReturn:
		return Kind(s), true
	}
	return "", false
}

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not count.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// SlotInterval computes the effective interval for a stored (start, end) pair.
// Returns false when the start is absent. A stored end that is not strictly
// after the start is ignored and the default duration applies instead.
func SlotInterval(start, end *time.Time) (Interval, bool) {
	if start == nil {
		return Interval{}, false
	}
	e := start.Add(DefaultSlotDuration)
	if end != nil && end.After(*start) {
		e = *end
	}
	return Interval{Start: *start, End: e}, true
}

// OrderSlot returns the effective interval of the given slot kind on an order.
func OrderSlot(order *entity.Order, kind Kind) (Interval, bool) {
	if kind == KindPickup {
		return SlotInterval(order.PickupAt, order.PickupEndAt)
	}
	return SlotInterval(order.ReturnAt, order.ReturnEndAt)
}

// ConflictError is returned when a requested slot overlaps another order's
// same-kind slot on the same vehicle. It carries enough detail for the caller
// to explain the rejection.
type ConflictError struct {
	OrderID  uuid.UUID
	Kind     Kind
	Interval Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time conflict with order %s (%s %s - %s)",
		e.OrderID.String(), e.Kind,
		e.Interval.Start.Format(time.RFC3339), e.Interval.End.Format(time.RFC3339))
}

// FindConflict scans candidate orders for one whose same-kind slot overlaps
// the requested interval. Candidates without a start timestamp for the kind
// are skipped. Returns nil when nothing overlaps.
//
// Only slots of the same kind block each other: a pickup never conflicts with
// another order's return, even on the same vehicle.
func FindConflict(candidates []*entity.Order, kind Kind, requested Interval) *ConflictError {
	for _, o := range candidates {
		slot, ok := OrderSlot(o, kind)
		if !ok {
			continue
		}
		if requested.Overlaps(slot) {
			return &ConflictError{OrderID: o.ID, Kind: kind, Interval: slot}
		}
	}
	return nil
}
