package response

import (
	"time"

	"car-rental/internal/data/entity"
)

type PricingResponse struct {
	TotalUSD    float64  `json:"total_usd"`
	Currency    string   `json:"currency"`
	Days        *int     `json:"days,omitempty"`
	PricePerDay *float64 `json:"price_per_day,omitempty"`
}

type OrderResponse struct {
	ID            string             `json:"id"`
	Ref           string             `json:"ref"`
	Customer      string             `json:"customer"`
	CustomerEmail string             `json:"customer_email"`
	VehicleID     *string            `json:"vehicle_id,omitempty"`
	VehicleTitle  string             `json:"vehicle_title,omitempty"`
	Status        entity.OrderStatus `json:"status"`
	PickupAt      *time.Time         `json:"pickup_at,omitempty"`
	PickupEndAt   *time.Time         `json:"pickup_end_at,omitempty"`
	ReturnAt      *time.Time         `json:"return_at,omitempty"`
	ReturnEndAt   *time.Time         `json:"return_end_at,omitempty"`
	RentalDays    *int               `json:"rental_days,omitempty"`
	UpdatedByName *string            `json:"booking_updated_by,omitempty"`
	Pricing       *PricingResponse   `json:"pricing,omitempty"`
	Subject       string             `json:"subject,omitempty"`
	Message       string             `json:"message,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:            order.ID.String(),
		Ref:           order.Ref,
		Customer:      order.Customer,
		CustomerEmail: order.CustomerEmail,
		Status:        order.Status,
		PickupAt:      order.PickupAt,
		PickupEndAt:   order.PickupEndAt,
		ReturnAt:      order.ReturnAt,
		ReturnEndAt:   order.ReturnEndAt,
		RentalDays:    order.RentalDays,
		UpdatedByName: order.BookingUpdatedBy,
		Subject:       order.Subject,
		Message:       order.Message,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}

	if order.VehicleID != nil {
		id := order.VehicleID.String()
		resp.VehicleID = &id
	}
	if order.Pricing != nil {
		resp.Pricing = &PricingResponse{
			TotalUSD:    order.Pricing.TotalUSD,
			Currency:    order.Pricing.Currency,
			Days:        order.Pricing.Days,
			PricePerDay: order.Pricing.PricePerDay,
		}
	}

	return resp
}

// FeedbackResponse acknowledges an inquiry with the reference the customer
// can quote later.
type FeedbackResponse struct {
	Ref string `json:"ref"`
}
