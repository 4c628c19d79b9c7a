package response

import (
	"time"

	"car-rental/internal/data/entity"
)

type CarResponse struct {
	ID           string                `json:"id"`
	Make         string                `json:"make"`
	Model        string                `json:"model"`
	Title        string                `json:"title"`
	Trim         string                `json:"trim,omitempty"`
	Type         string                `json:"type"`
	Slug         string                `json:"slug"`
	Badge        string                `json:"badge,omitempty"`
	IsFeatured   bool                  `json:"is_featured"`
	IsActive     bool                  `json:"is_active"`
	PricePerDay  float64               `json:"price_per_day"`
	Currency     string                `json:"currency"`
	ThumbnailURL string                `json:"thumbnail_url,omitempty"`
	Gallery      []entity.GalleryImage `json:"gallery,omitempty"`
	Chips        entity.CarChips       `json:"chips"`
	Specs        entity.CarSpecs       `json:"specs"`
	CreatedAt    time.Time             `json:"created_at"`
}

// RecommendedCarResponse decorates a card with its ranking score so clients
// can surface "why this car" hints.
type RecommendedCarResponse struct {
	CarResponse
	Score float64 `json:"score"`
}

// CarFiltersResponse lists the distinct filter values available for the
// public catalog.
type CarFiltersResponse struct {
	Types []string `json:"types"`
	Seats []int    `json:"seats"`
}

func CarToResponse(car *entity.Car) CarResponse {
	return CarResponse{
		ID:           car.ID.String(),
		Make:         car.Make,
		Model:        car.Model,
		Title:        car.Title(),
		Trim:         car.Trim,
		Type:         car.Type,
		Slug:         car.Slug,
		Badge:        car.Badge,
		IsFeatured:   car.IsFeatured,
		IsActive:     car.IsActive,
		PricePerDay:  car.PricePerDay,
		Currency:     car.Currency,
		ThumbnailURL: car.ThumbnailURL,
		Gallery:      car.Gallery,
		Chips:        car.Chips,
		Specs:        car.Specs,
		CreatedAt:    car.CreatedAt,
	}
}

func CarsToResponse(cars []*entity.Car) []CarResponse {
	out := make([]CarResponse, 0, len(cars))
	for _, car := range cars {
		out = append(out, CarToResponse(car))
	}
	return out
}
