package request

type FeedbackRequest struct {
	Name      string  `json:"name" validate:"required,min=2,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Subject   string  `json:"subject" validate:"required,min=2,max=200"`
	Message   string  `json:"message" validate:"required,min=5,max=5000"`
	VehicleID *string `json:"vehicle_id,omitempty" validate:"omitempty,uuid4"`
}
