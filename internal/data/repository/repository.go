package repository

import (
	"errors"

	"laundry-service/pkg/database"

	"go.uber.org/zap"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

type Repository struct {
	User         UserRepository
	Order        OrderRepository
	Notification NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Order:        NewOrderRepository(db, log),
		Notification: NewNotificationRepository(db, log),
	}
}
