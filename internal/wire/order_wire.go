package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/internal/data/repository"
	"car-rental/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	calendarHandler *adaptor.CalendarHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== USER ROUTES ====================
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Get("/my", orderHandler.GetMyOrders)
		r.Get("/my/calendar", calendarHandler.GetMyCalendar)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/orders", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Get("/", orderHandler.GetOrders)
		r.Get("/calendar", calendarHandler.GetCalendar)
		r.Get("/{id}", orderHandler.GetOrderByID)
		r.Patch("/{id}", orderHandler.PatchOrder)
		r.Patch("/{id}/schedule", calendarHandler.UpdateSchedule)
	})
}
