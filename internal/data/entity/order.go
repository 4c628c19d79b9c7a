package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusPlanning OrderStatus = "planning"
	OrderStatusPlanned  OrderStatus = "planned"
	OrderStatusCanceled OrderStatus = "canceled"
	OrderStatusDone     OrderStatus = "done"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPlanning,
	OrderStatusPlanned,
	OrderStatusCanceled,
	OrderStatusDone,
}

func IsOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

// Pricing is the computed rental price snapshot stored on priced orders.
type Pricing struct {
	TotalUSD    float64  `db:"pricing_total_usd" json:"total_usd"`
	Currency    string   `db:"pricing_currency" json:"currency"`
	Days        *int     `db:"pricing_days" json:"days"`
	PricePerDay *float64 `db:"pricing_price_per_day" json:"price_per_day"`
}

type Order struct {
	Base
	Ref           string      `db:"ref"`
	Customer      string      `db:"customer"`
	CustomerEmail string      `db:"customer_email"`
	CreatedBy     *uuid.UUID  `db:"created_by"`
	VehicleID     *uuid.UUID  `db:"requested_vehicle"`
	Status        OrderStatus `db:"status"`

	// Scheduling slots. End timestamps are nullable; when absent the
	// effective slot length defaults to 60 minutes.
	PickupAt    *time.Time `db:"pickup_at"`
	PickupEndAt *time.Time `db:"pickup_end_at"`
	ReturnAt    *time.Time `db:"return_at"`
	ReturnEndAt *time.Time `db:"return_end_at"`

	RentalDays       *int     `db:"rental_days"`
	BookingUpdatedBy *string  `db:"booking_updated_by"`
	Pricing          *Pricing

	Subject string `db:"subject"`
	Message string `db:"message"`
}
