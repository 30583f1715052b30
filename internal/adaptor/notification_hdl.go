package adaptor

import (
	"net/http"

	"laundry-service/internal/dto/request"
	"laundry-service/internal/usecase"
	"laundry-service/pkg/utils"

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
		log:     log,
	}
}

// List handles GET /api/admin/notifications?unreadOnly=&limit=&offset=
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	q := r.URL.Query()
	req := request.NotificationListRequest{
		UnreadOnly: utils.ParseBool(q.Get("unreadOnly")),
		Limit:      utils.ParseInt(q.Get("limit"), usecase.DefaultNotificationLimit),
		Offset:     utils.ParseInt(q.Get("offset"), 0),
	}

	resp, err := h.service.List(r.Context(), caller, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list notifications")
		return
	}

	utils.ResponseSuccess(w, "Notifications retrieved", resp)
}

// UnreadCount handles GET /api/admin/notifications/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.UnreadCount(r.Context(), caller)
	if err != nil {
		handleServiceError(w, h.log, err, "count unread notifications")
		return
	}

	utils.ResponseSuccess(w, "Unread count retrieved", resp)
}

// MarkRead handles PUT /api/admin/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.MarkRead(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "mark notification read")
		return
	}

	utils.ResponseSuccess(w, "Notification marked as read", resp)
}

// MarkAllRead handles PUT /api/admin/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.MarkAllRead(r.Context(), caller)
	if err != nil {
		handleServiceError(w, h.log, err, "mark all notifications read")
		return
	}

	utils.ResponseSuccess(w, "All notifications marked as read", resp)
}
