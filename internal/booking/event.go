package booking

import (
	"time"

	"car-rental/internal/data/entity"
)

// Event is a calendar entry derived from one order slot. Events are never
// persisted; they are rebuilt from order fields on every read. Up to two
// events exist per order, one per slot kind.
type Event struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	Kind         Kind      `json:"type"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Title        string    `json:"title"`
	Customer     string    `json:"customer"`
	Ref          string    `json:"ref"`
	Status       string    `json:"status"`
	VehicleID    *string   `json:"vehicle_id"`
	ThumbnailURL *string   `json:"thumbnail_url"`
}

// BuildEvent shapes the calendar event for one slot of an order. It is the
// single source of the default-duration rule used by reads and previews.
// Returns nil when the slot's start timestamp is absent. The car parameter is
// optional and only decorates title/thumbnail.
func BuildEvent(order *entity.Order, car *entity.Car, kind Kind) *Event {
	slot, ok := OrderSlot(order, kind)
	if !ok {
		return nil
	}

	title := "Vehicle"
	var thumbnail *string
	if car != nil {
		title = car.Title()
		if car.ThumbnailURL != "" {
			u := car.ThumbnailURL
			thumbnail = &u
		}
	}

	var vehicleID *string
	if order.VehicleID != nil {
		id := order.VehicleID.String()
		vehicleID = &id
	}

	return &Event{
		ID:           order.ID.String() + ":" + string(kind),
		OrderID:      order.ID.String(),
		Kind:         kind,
		Start:        slot.Start,
		End:          slot.End,
		Title:        title,
		Customer:     order.Customer,
		Ref:          order.Ref,
		Status:       string(order.Status),
		VehicleID:    vehicleID,
		ThumbnailURL: thumbnail,
	}
}
