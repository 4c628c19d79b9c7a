package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"car-rental/internal/dto/request"
	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CarHandler struct {
	service   usecase.CarService
	recommend usecase.RecommendService
	log       *zap.Logger
}

func NewCarHandler(service usecase.CarService, recommend usecase.RecommendService, log *zap.Logger) *CarHandler {
	return &CarHandler{
		service:   service,
		recommend: recommend,
		log:       log.With(zap.String("handler", "car")),
	}
}

// GetCars handles GET /api/cars
func (h *CarHandler) GetCars(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.CarListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 12),
		},
		Query: query.Get("q"),
		Type:  query.Get("type"),
		Sort:  query.Get("sort"),
	}

	if s := query.Get("seats"); s != "" {
		if seats, err := strconv.Atoi(s); err == nil && seats > 0 {
			req.Seats = &seats
		}
	}
	if f := query.Get("featured"); f != "" {
		featured := f == "1" || f == "true"
		req.Featured = &featured
	}

	cars, err := h.service.List(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list cars")
		return
	}

	utils.ResponseSuccess(w, "Cars retrieved successfully", cars)
}

// GetFeatured handles GET /api/cars/featured
func (h *CarHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	cars, err := h.service.Featured(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get featured cars")
		return
	}

	utils.ResponseSuccess(w, "Featured cars retrieved successfully", cars)
}

// GetFilters handles GET /api/cars/filters
func (h *CarHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := h.service.Filters(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get car filters")
		return
	}

	utils.ResponseSuccess(w, "Filter options retrieved successfully", filters)
}

// GetCarBySlug handles GET /api/cars/{slug}
func (h *CarHandler) GetCarBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		utils.ResponseBadRequest(w, "Car slug is required", nil)
		return
	}

	car, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(h.log, w, err, "get car by slug")
		return
	}

	utils.ResponseSuccess(w, "Car retrieved successfully", car)
}

// GetRecommendations handles GET /api/cars/{slug}/recommendations
func (h *CarHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		utils.ResponseBadRequest(w, "Car slug is required", nil)
		return
	}

	limit := utils.ParseInt(r.URL.Query().Get("limit"), 4)

	cars, err := h.recommend.ForSlug(r.Context(), slug, limit)
	if err != nil {
		handleServiceError(h.log, w, err, "get recommendations")
		return
	}

	utils.ResponseSuccess(w, "Recommendations retrieved successfully", cars)
}

// GetCarByID handles GET /api/admin/cars/{id}
func (h *CarHandler) GetCarByID(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "id")
	if carID == "" {
		utils.ResponseBadRequest(w, "Car ID is required", nil)
		return
	}

	car, err := h.service.GetByID(r.Context(), carID)
	if err != nil {
		handleServiceError(h.log, w, err, "get car by ID")
		return
	}

	utils.ResponseSuccess(w, "Car retrieved successfully", car)
}

// CreateCar handles POST /api/admin/cars
func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var req request.CarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	car, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create car")
		return
	}

	utils.ResponseCreated(w, "Car created successfully", car)
}

// UpdateCar handles PUT /api/admin/cars/{id}
func (h *CarHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "id")
	if carID == "" {
		utils.ResponseBadRequest(w, "Car ID is required", nil)
		return
	}

	var req request.CarUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	car, err := h.service.Update(r.Context(), carID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update car")
		return
	}

	utils.ResponseSuccess(w, "Car updated successfully", car)
}

// DeleteCar handles DELETE /api/admin/cars/{id}
func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "id")
	if carID == "" {
		utils.ResponseBadRequest(w, "Car ID is required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), carID); err != nil {
		handleServiceError(h.log, w, err, "delete car")
		return
	}

	utils.ResponseSuccess(w, "Car deleted successfully", nil)
}
