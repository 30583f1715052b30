package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationOrderCreated NotificationType = "order_created"
)

type Notification struct {
	Base
	UserID  uuid.UUID        `db:"user_id"`
	OrderID *uuid.UUID       `db:"order_id"`
	Type    NotificationType `db:"type"`
	Title   string           `db:"title"`
	Message string           `db:"message"`
	Data    map[string]any   `db:"data"`
	IsRead  bool             `db:"is_read"`
	ReadAt  *time.Time       `db:"read_at"`
}
