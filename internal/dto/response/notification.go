package response

import (
	"time"

	"laundry-service/internal/data/entity"
)

type NotificationResponse struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"userId"`
	OrderID   *string                 `json:"orderId,omitempty"`
	Type      entity.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Data      map[string]any          `json:"data,omitempty"`
	IsRead    bool                    `json:"isRead"`
	ReadAt    *time.Time              `json:"readAt,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}

// NotificationListResponse is one page plus the total count of matching rows.
type NotificationListResponse struct {
	Count         int64                  `json:"count"`
	Limit         int                    `json:"limit"`
	Offset        int                    `json:"offset"`
	Notifications []NotificationResponse `json:"notifications"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

func NotificationToResponse(n *entity.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
	if n.OrderID != nil {
		id := n.OrderID.String()
		resp.OrderID = &id
	}
	return resp
}

func NotificationsToResponse(items []*entity.Notification, total int64, limit, offset int) *NotificationListResponse {
	list := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		list = append(list, NotificationToResponse(n))
	}
	return &NotificationListResponse{
		Count:         total,
		Limit:         limit,
		Offset:        offset,
		Notifications: list,
	}
}
