package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCar(
	r chi.Router,
	carHandler *adaptor.CarHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/cars", carHandler.GetCars)
	r.Get("/api/cars/featured", carHandler.GetFeatured)
	r.Get("/api/cars/filters", carHandler.GetFilters)
	r.Get("/api/cars/{slug}", carHandler.GetCarBySlug)
	r.Get("/api/cars/{slug}/recommendations", carHandler.GetRecommendations)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/cars", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Get("/{id}", carHandler.GetCarByID)
		r.Post("/", carHandler.CreateCar)
		r.Put("/{id}", carHandler.UpdateCar)
		r.Delete("/{id}", carHandler.DeleteCar)
	})
}
