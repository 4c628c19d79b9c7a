package response

import (
	"time"

	"car-rental/internal/booking"
)

// CalendarResponse is the resolved range plus the events inside it.
type CalendarResponse struct {
	From   time.Time        `json:"from"`
	To     time.Time        `json:"to"`
	Events []*booking.Event `json:"events"`
}

// ConflictDetail is the structured body of a scheduling conflict rejection.
type ConflictDetail struct {
	OrderID string    `json:"order_id"`
	Kind    string    `json:"type"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

func ConflictToDetail(c *booking.ConflictError) ConflictDetail {
	return ConflictDetail{
		OrderID: c.OrderID.String(),
		Kind:    string(c.Kind),
		Start:   c.Interval.Start,
		End:     c.Interval.End,
	}
}
