package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"car-rental/internal/booking"
	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CalendarHandler struct {
	service usecase.CalendarService
	log     *zap.Logger
}

func NewCalendarHandler(service usecase.CalendarService, log *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		service: service,
		log:     log.With(zap.String("handler", "calendar")),
	}
}

func calendarRequest(r *http.Request) *request.CalendarRequest {
	query := r.URL.Query()

	vehicleID := query.Get("vehicle_id")
	if vehicleID == "" {
		vehicleID = query.Get("carId")
	}

	return &request.CalendarRequest{
		From:      query.Get("from"),
		To:        query.Get("to"),
		Kind:      query.Get("type"),
		Search:    query.Get("q"),
		VehicleID: vehicleID,
	}
}

// GetCalendar handles GET /api/admin/orders/calendar
func (h *CalendarHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.ListEvents(r.Context(), calendarRequest(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get calendar")
		return
	}

	utils.ResponseSuccess(w, "Calendar retrieved successfully", events)
}

// GetMyCalendar handles GET /api/orders/my/calendar
func (h *CalendarHandler) GetMyCalendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	events, err := h.service.ListMyEvents(r.Context(), userID, calendarRequest(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get own calendar")
		return
	}

	utils.ResponseSuccess(w, "Calendar retrieved successfully", events)
}

// UpdateSchedule handles PATCH /api/admin/orders/{id}/schedule
func (h *CalendarHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		utils.ResponseBadRequest(w, "Order ID is required", nil)
		return
	}

	var req request.ScheduleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())
	actor := usecase.Actor{
		UserID:  userID,
		IsAdmin: utils.IsAdminContext(r.Context()),
	}

	// conflicts=0 skips the double-booking scan
	checkConflicts := r.URL.Query().Get("conflicts") != "0"

	order, err := h.service.UpdateSchedule(r.Context(), orderID, &req, actor, checkConflicts)
	if err != nil {
		var conflict *booking.ConflictError
		if errors.As(err, &conflict) {
			utils.ResponseConflict(w, "Requested slot conflicts with another booking",
				response.ConflictToDetail(conflict))
			return
		}
		handleServiceError(h.log, w, err, "update schedule")
		return
	}

	utils.ResponseSuccess(w, "Schedule updated successfully", order)
}
