package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	cacheKeyFeaturedCars = "cars:featured"
	cacheKeyCarFilters   = "cars:filters"
	carCacheTTL          = 5 * time.Minute
	featuredLimit        = 8
)

type CarService interface {
	List(ctx context.Context, req *request.CarListRequest) (*response.PaginatedResponse[response.CarResponse], error)
	Featured(ctx context.Context) ([]response.CarResponse, error)
	Filters(ctx context.Context) (*response.CarFiltersResponse, error)
	GetBySlug(ctx context.Context, slug string) (*response.CarResponse, error)

	// Admin
	GetByID(ctx context.Context, id string) (*response.CarResponse, error)
	Create(ctx context.Context, req *request.CarRequest) (*response.CarResponse, error)
	Update(ctx context.Context, id string, req *request.CarUpdateRequest) (*response.CarResponse, error)
	Delete(ctx context.Context, id string) error
}

type carService struct {
	repo *repository.Repository
	rdb  *redis.Client // nil disables caching
	log  *zap.Logger
}

func NewCarService(repo *repository.Repository, rdb *redis.Client, log *zap.Logger) CarService {
	return &carService{
		repo: repo,
		rdb:  rdb,
		log:  log,
	}
}

// carSort maps the public sort keys onto repository sort fields.
func carSort(sort string) (field string, desc bool) {
	switch sort {
	case "price_asc":
		return "price_per_day", false
	case "price_desc":
		return "price_per_day", true
	case "name":
		return "make", false
	default:
		return "created_at", true
	}
}

func (s *carService) List(ctx context.Context, req *request.CarListRequest) (*response.PaginatedResponse[response.CarResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	active := true
	filter := repository.CarFilter{
		Query:    req.Query,
		Type:     req.Type,
		Seats:    req.Seats,
		Featured: req.Featured,
		Active:   &active,
	}
	filter.SortField, filter.SortDesc = carSort(req.Sort)

	cars, err := s.repo.Car.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list cars", zap.Error(err))
		return nil, fmt.Errorf("failed to get cars")
	}

	total, err := s.repo.Car.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count cars", zap.Error(err))
		return nil, fmt.Errorf("failed to get cars")
	}

	return response.NewPaginatedResponse(
		response.CarsToResponse(cars),
		req.Page, req.Limit(), total,
	), nil
}

func (s *carService) Featured(ctx context.Context) ([]response.CarResponse, error) {
	if cached, ok := s.cacheGet(ctx, cacheKeyFeaturedCars); ok {
		var out []response.CarResponse
		if err := json.Unmarshal(cached, &out); err == nil {
			return out, nil
		}
	}

	cars, err := s.repo.Car.FindFeatured(ctx, uuid.Nil, featuredLimit)
	if err != nil {
		s.log.Error("Failed to get featured cars", zap.Error(err))
		return nil, fmt.Errorf("failed to get featured cars")
	}

	out := response.CarsToResponse(cars)
	s.cacheSet(ctx, cacheKeyFeaturedCars, out)
	return out, nil
}

func (s *carService) Filters(ctx context.Context) (*response.CarFiltersResponse, error) {
	if cached, ok := s.cacheGet(ctx, cacheKeyCarFilters); ok {
		var out response.CarFiltersResponse
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
	}

	types, err := s.repo.Car.DistinctTypes(ctx)
	if err != nil {
		s.log.Error("Failed to get car types", zap.Error(err))
		return nil, fmt.Errorf("failed to get filter options")
	}

	seats, err := s.repo.Car.DistinctSeats(ctx)
	if err != nil {
		s.log.Error("Failed to get seat counts", zap.Error(err))
		return nil, fmt.Errorf("failed to get filter options")
	}

	out := &response.CarFiltersResponse{Types: types, Seats: seats}
	s.cacheSet(ctx, cacheKeyCarFilters, out)
	return out, nil
}

func (s *carService) GetBySlug(ctx context.Context, slug string) (*response.CarResponse, error) {
	car, err := s.repo.Car.FindActiveBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to find car by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to find car")
	}
	if car == nil {
		return nil, fmt.Errorf("car not found")
	}

	resp := response.CarToResponse(car)
	return &resp, nil
}

func (s *carService) GetByID(ctx context.Context, id string) (*response.CarResponse, error) {
	carID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid car id")
	}

	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil {
		s.log.Error("Failed to find car", zap.Error(err), zap.String("car_id", id))
		return nil, fmt.Errorf("failed to find car")
	}
	if car == nil {
		return nil, fmt.Errorf("car not found")
	}

	resp := response.CarToResponse(car)
	return &resp, nil
}

func (s *carService) Create(ctx context.Context, req *request.CarRequest) (*response.CarResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Car create validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	car := &entity.Car{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Make:         req.Make,
		Model:        req.Model,
		Trim:         req.Trim,
		Type:         req.Type,
		Slug:         req.Slug,
		Badge:        req.Badge,
		IsFeatured:   req.IsFeatured,
		IsActive:     req.IsActive,
		PricePerDay:  req.PricePerDay,
		Currency:     currency,
		ThumbnailURL: req.ThumbnailURL,
		Gallery:      galleryFromRequest(req.Gallery),
		Chips: entity.CarChips{
			Seats:        req.Chips.Seats,
			Horsepower:   req.Chips.Horsepower,
			Transmission: req.Chips.Transmission,
			Fuel:         req.Chips.Fuel,
		},
		Specs: entity.CarSpecs{
			Acceleration0To100Sec: req.Specs.Acceleration0To100Sec,
			Drivetrain:            req.Specs.Drivetrain,
			TransmissionDetail:    req.Specs.TransmissionDetail,
			Engine:                req.Specs.Engine,
		},
	}

	if err := s.repo.Car.Create(ctx, car); err != nil {
		s.log.Error("Failed to create car", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("failed to create car")
	}

	s.invalidateCache(ctx)
	s.log.Info("Car created", zap.String("car_id", car.ID.String()), zap.String("slug", car.Slug))

	resp := response.CarToResponse(car)
	return &resp, nil
}

func (s *carService) Update(ctx context.Context, id string, req *request.CarUpdateRequest) (*response.CarResponse, error) {
	carID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid car id")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Car update validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	car, err := s.repo.Car.FindByID(ctx, carID)
	if err != nil {
		s.log.Error("Failed to find car", zap.Error(err), zap.String("car_id", id))
		return nil, fmt.Errorf("failed to find car")
	}
	if car == nil {
		return nil, fmt.Errorf("car not found")
	}

	applyCarUpdate(car, req)
	car.UpdatedAt = time.Now()

	if err := s.repo.Car.Update(ctx, car); err != nil {
		s.log.Error("Failed to update car", zap.Error(err), zap.String("car_id", id))
		return nil, fmt.Errorf("failed to update car")
	}

	s.invalidateCache(ctx)
	s.log.Info("Car updated", zap.String("car_id", id))

	resp := response.CarToResponse(car)
	return &resp, nil
}

func (s *carService) Delete(ctx context.Context, id string) error {
	carID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid car id")
	}

	if err := s.repo.Car.Delete(ctx, carID); err != nil {
		if err.Error() == fmt.Sprintf("car %s not found", id) {
			return fmt.Errorf("car not found")
		}
		s.log.Error("Failed to delete car", zap.Error(err), zap.String("car_id", id))
		return fmt.Errorf("failed to delete car")
	}

	s.invalidateCache(ctx)
	return nil
}

// ==================== HELPERS ====================

func galleryFromRequest(images []request.GalleryImageRequest) []entity.GalleryImage {
	if len(images) == 0 {
		return nil
	}
	out := make([]entity.GalleryImage, 0, len(images))
	for _, img := range images {
		out = append(out, entity.GalleryImage{URL: img.URL, Alt: img.Alt})
	}
	return out
}

func applyCarUpdate(car *entity.Car, req *request.CarUpdateRequest) {
	if req.Make != nil {
		car.Make = *req.Make
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Trim != nil {
		car.Trim = *req.Trim
	}
	if req.Type != nil {
		car.Type = *req.Type
	}
	if req.Slug != nil {
		car.Slug = *req.Slug
	}
	if req.Badge != nil {
		car.Badge = *req.Badge
	}
	if req.IsFeatured != nil {
		car.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		car.IsActive = *req.IsActive
	}
	if req.PricePerDay != nil {
		car.PricePerDay = *req.PricePerDay
	}
	if req.Currency != nil {
		car.Currency = *req.Currency
	}
	if req.ThumbnailURL != nil {
		car.ThumbnailURL = *req.ThumbnailURL
	}
	if req.Gallery != nil {
		car.Gallery = galleryFromRequest(req.Gallery)
	}
	if req.Chips != nil {
		car.Chips = entity.CarChips{
			Seats:        req.Chips.Seats,
			Horsepower:   req.Chips.Horsepower,
			Transmission: req.Chips.Transmission,
			Fuel:         req.Chips.Fuel,
		}
	}
	if req.Specs != nil {
		car.Specs = entity.CarSpecs{
			Acceleration0To100Sec: req.Specs.Acceleration0To100Sec,
			Drivetrain:            req.Specs.Drivetrain,
			TransmissionDetail:    req.Specs.TransmissionDetail,
			Engine:                req.Specs.Engine,
		}
	}
}

func (s *carService) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.rdb == nil {
		return nil, false
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("Cache read failed", zap.Error(err), zap.String("key", key))
		}
		return nil, false
	}
	return data, true
}

func (s *carService) cacheSet(ctx context.Context, key string, value any) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, carCacheTTL).Err(); err != nil {
		s.log.Warn("Cache write failed", zap.Error(err), zap.String("key", key))
	}
}

func (s *carService) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKeyFeaturedCars, cacheKeyCarFilters).Err(); err != nil {
		s.log.Warn("Cache invalidation failed", zap.Error(err))
	}
}
