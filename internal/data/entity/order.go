package entity

import (
	"github.com/google/uuid"
)

type ServiceType string

const (
	ServiceNormalWash   ServiceType = "normal-wash"
	ServiceHeavyWash    ServiceType = "heavy-wash"
	ServiceDelicateWash ServiceType = "delicate-wash"
	ServiceExpressWash  ServiceType = "express-wash"
)

// ServiceTypes lists every wash category in display order.
var ServiceTypes = []ServiceType{
	ServiceNormalWash,
	ServiceHeavyWash,
	ServiceDelicateWash,
	ServiceExpressWash,
}

func (s ServiceType) Valid() bool {
	for _, t := range ServiceTypes {
		if t == s {
			return true
		}
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusWashing   OrderStatus = "Washing"
	OrderStatusCompleted OrderStatus = "Completed"
)

// orderStatusRank orders the lifecycle Pending -> Washing -> Completed.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:   1,
	OrderStatusWashing:   2,
	OrderStatusCompleted: 3,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusRank[s]
	return ok
}

// CanTransitionTo reports whether next is strictly later in the lifecycle.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	to, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// Next returns the status that follows s, or false for the terminal state.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		return OrderStatusWashing, true
	case OrderStatusWashing:
		return OrderStatusCompleted, true
	default:
		return "", false
	}
}

type Order struct {
	Base
	UserID       uuid.UUID   `db:"user_id"`
	UserName     string      `db:"user_name"`
	UserEmail    string      `db:"user_email"`
	ServiceType  ServiceType `db:"service_type"`
	Quantity     int         `db:"quantity"`
	PricePerItem float64     `db:"price_per_item"`
	TotalPrice   float64     `db:"total_price"`
	Status       OrderStatus `db:"status"`
	Notes        *string     `db:"notes"`
}

// OrderStats holds per-status order counts.
type OrderStats struct {
	Total     int64
	Pending   int64
	Washing   int64
	Completed int64
}
