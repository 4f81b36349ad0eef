package adaptor

import (
	"net/http"

	"pet-rental/internal/usecase"
	"pet-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	service usecase.NotificationService
	log     *zap.Logger
}

func NewNotificationHandler(service usecase.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log.With(zap.String("handler", "notification")),
	}
}

// ListNotifications handles GET /api/notifications (protected)
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	unreadOnly := query.Get("unread_only") == "true"
	page := utils.ParseInt(query.Get("page"), 1)
	perPage := utils.ParseInt(query.Get("per_page"), 10)

	notifications, err := h.service.ListNotifications(r.Context(), userID, unreadOnly, page, perPage)
	if err != nil {
		handleServiceError(w, h.log, err, "list notifications")
		return
	}

	utils.ResponseSuccess(w, "success", notifications)
}

// UnreadCount handles GET /api/notifications/unread-count (protected)
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "unread count")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]int64{"unread_count": count})
}

// MarkRead handles PUT /api/notifications/{id}/read (protected)
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.MarkRead(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "mark notification read")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// MarkAllRead handles PUT /api/notifications/read-all (protected)
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.MarkAllRead(r.Context(), userID); err != nil {
		handleServiceError(w, h.log, err, "mark all notifications read")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
