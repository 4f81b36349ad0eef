package adaptor

import (
	"encoding/json"
	"net/http"

	"pet-rental/internal/dto/request"
	"pet-rental/internal/usecase"
	"pet-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CalendarHandler struct {
	calendar     usecase.CalendarService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewCalendarHandler(calendar usecase.CalendarService, availability usecase.AvailabilityService, log *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendar:     calendar,
		availability: availability,
		log:          log.With(zap.String("handler", "calendar")),
	}
}

// CheckAvailability handles GET /api/pets/{id}/availability (public)
func (h *CalendarHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start := query.Get("start_date")
	end := query.Get("end_date")
	if start == "" || end == "" {
		utils.ResponseBadRequest(w, "start_date and end_date are required", nil)
		return
	}

	result, err := h.availability.CheckAvailability(r.Context(), chi.URLParam(r, "id"), start, end)
	if err != nil {
		handleServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetPetCalendar handles GET /api/pets/{id}/calendar (public)
func (h *CalendarHandler) GetPetCalendar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	calendar, err := h.calendar.GetPetCalendar(r.Context(), chi.URLParam(r, "id"),
		query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		handleServiceError(w, h.log, err, "get pet calendar")
		return
	}

	utils.ResponseSuccess(w, "success", calendar)
}

// CreateBlockedDate handles POST /api/pets/{id}/blocked-dates (protected)
func (h *CalendarHandler) CreateBlockedDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBlockedDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	block, err := h.calendar.CreateBlockedDate(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create blocked date")
		return
	}

	utils.ResponseCreated(w, "success", block)
}

// ListBlockedDates handles GET /api/pets/{id}/blocked-dates (protected)
func (h *CalendarHandler) ListBlockedDates(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	blocks, err := h.calendar.ListBlockedDates(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "list blocked dates")
		return
	}

	utils.ResponseSuccess(w, "success", blocks)
}

// UpdateBlockedDate handles PUT /api/blocked-dates/{id} (protected)
func (h *CalendarHandler) UpdateBlockedDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateBlockedDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	block, err := h.calendar.UpdateBlockedDate(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update blocked date")
		return
	}

	utils.ResponseSuccess(w, "success", block)
}

// DeleteBlockedDate handles DELETE /api/blocked-dates/{id} (protected)
func (h *CalendarHandler) DeleteBlockedDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.calendar.DeleteBlockedDate(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete blocked date")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetMySchedule handles GET /api/user/schedule (protected)
func (h *CalendarHandler) GetMySchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	events, err := h.calendar.GetMySchedule(r.Context(), userID,
		query.Get("start_date"), query.Get("end_date"), utils.ParseBoolPtr(query.Get("as_owner")))
	if err != nil {
		handleServiceError(w, h.log, err, "get schedule")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}
