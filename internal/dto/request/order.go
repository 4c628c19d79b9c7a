package request

type OrderListRequest struct {
	PaginatedRequest
	Query     string `json:"q"`
	Status    string `json:"status" validate:"omitempty,oneof=all pending planning planned canceled done"`
	WithPrice bool   `json:"with_price"`
}

type OrderUpdateRequest struct {
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending planning planned canceled done"`
	RentalDays  *int    `json:"rental_days,omitempty" validate:"omitempty,min=1,max=365"`
	VehicleID   *string `json:"vehicle_id,omitempty" validate:"omitempty,uuid4"`
	PickupEndAt *string `json:"pickup_end_at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ReturnEndAt *string `json:"return_end_at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}
