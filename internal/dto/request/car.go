package request

type GalleryImageRequest struct {
	URL string `json:"url" validate:"required,url"`
	Alt string `json:"alt,omitempty"`
}

type CarChipsRequest struct {
	Seats        int    `json:"seats" validate:"omitempty,min=1,max=12"`
	Horsepower   int    `json:"horsepower" validate:"omitempty,min=1"`
	Transmission string `json:"transmission"`
	Fuel         string `json:"fuel"`
}

type CarSpecsRequest struct {
	Acceleration0To100Sec float64 `json:"acceleration_0_100_sec" validate:"omitempty,gt=0"`
	Drivetrain            string  `json:"drivetrain"`
	TransmissionDetail    string  `json:"transmission_detail"`
	Engine                string  `json:"engine"`
}

type CarRequest struct {
	Make         string                `json:"make" validate:"required,min=1,max=100"`
	Model        string                `json:"model" validate:"required,min=1,max=100"`
	Trim         string                `json:"trim,omitempty"`
	Type         string                `json:"type" validate:"required,min=1,max=50"`
	Slug         string                `json:"slug" validate:"required,min=1,max=150"`
	Badge        string                `json:"badge,omitempty"`
	IsFeatured   bool                  `json:"is_featured"`
	IsActive     bool                  `json:"is_active"`
	PricePerDay  float64               `json:"price_per_day" validate:"required,gt=0"`
	Currency     string                `json:"currency" validate:"omitempty,len=3"`
	ThumbnailURL string                `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	Gallery      []GalleryImageRequest `json:"gallery,omitempty" validate:"dive"`
	Chips        CarChipsRequest       `json:"chips"`
	Specs        CarSpecsRequest       `json:"specs"`
}

type CarUpdateRequest struct {
	Make         *string               `json:"make,omitempty" validate:"omitempty,min=1,max=100"`
	Model        *string               `json:"model,omitempty" validate:"omitempty,min=1,max=100"`
	Trim         *string               `json:"trim,omitempty"`
	Type         *string               `json:"type,omitempty" validate:"omitempty,min=1,max=50"`
	Slug         *string               `json:"slug,omitempty" validate:"omitempty,min=1,max=150"`
	Badge        *string               `json:"badge,omitempty"`
	IsFeatured   *bool                 `json:"is_featured,omitempty"`
	IsActive     *bool                 `json:"is_active,omitempty"`
	PricePerDay  *float64              `json:"price_per_day,omitempty" validate:"omitempty,gt=0"`
	Currency     *string               `json:"currency,omitempty" validate:"omitempty,len=3"`
	ThumbnailURL *string               `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	Gallery      []GalleryImageRequest `json:"gallery,omitempty" validate:"dive"`
	Chips        *CarChipsRequest      `json:"chips,omitempty"`
	Specs        *CarSpecsRequest      `json:"specs,omitempty"`
}

type CarListRequest struct {
	PaginatedRequest
	Query    string `json:"q"`
	Type     string `json:"type"`
	Seats    *int   `json:"seats" validate:"omitempty,min=1,max=12"`
	Featured *bool  `json:"featured"`
	Sort     string `json:"sort" validate:"omitempty,oneof=price_asc price_desc newest name"`
}
