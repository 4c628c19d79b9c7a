package request

// CalendarRequest carries the parsed query parameters for a calendar read.
// From and To are mandatory; the service rejects a missing or inverted range.
type CalendarRequest struct {
	From      string `json:"from" validate:"omitempty"`
	To        string `json:"to" validate:"omitempty"`
	Kind      string `json:"type" validate:"omitempty,oneof=pickup return"`
	Search    string `json:"q"`
	VehicleID string `json:"vehicle_id" validate:"omitempty,uuid4"`
}

// ScheduleUpdateRequest reschedules one slot of one order. Start and End are
// RFC 3339 timestamps; both null clears the slot, both set moves it. A lone
// timestamp is rejected.
type ScheduleUpdateRequest struct {
	Kind  string  `json:"type" validate:"required,oneof=pickup return"`
	Start *string `json:"start" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	End   *string `json:"end" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}
