package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationBookingReady   NotificationType = "booking_ready"
	NotificationBookingChanged NotificationType = "booking_changed"
	NotificationOrderStatus    NotificationType = "order_status"
	NotificationGeneric        NotificationType = "generic"
)

type Notification struct {
	BaseSimple
	UserID  uuid.UUID        `db:"user_id"`
	Type    NotificationType `db:"type"`
	Title   string           `db:"title"`
	Body    string           `db:"body"`
	OrderID *uuid.UUID       `db:"order_id"`
	ReadAt  *time.Time       `db:"read_at"`
}
