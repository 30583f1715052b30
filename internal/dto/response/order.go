package response

import (
	"time"

	"laundry-service/internal/data/entity"
)

type OrderResponse struct {
	ID           string             `json:"id"`
	UserID       string             `json:"userId"`
	UserName     string             `json:"userName"`
	UserEmail    string             `json:"userEmail"`
	ServiceType  entity.ServiceType `json:"serviceType"`
	Quantity     int                `json:"quantity"`
	PricePerItem float64            `json:"pricePerItem"`
	TotalPrice   float64            `json:"totalPrice"`
	Status       entity.OrderStatus `json:"status"`
	Notes        *string            `json:"notes,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type OrderListResponse struct {
	Count  int             `json:"count"`
	Orders []OrderResponse `json:"orders"`
}

type StatsResponse struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Washing   int64 `json:"washing"`
	Completed int64 `json:"completed"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:           order.ID.String(),
		UserID:       order.UserID.String(),
		UserName:     order.UserName,
		UserEmail:    order.UserEmail,
		ServiceType:  order.ServiceType,
		Quantity:     order.Quantity,
		PricePerItem: order.PricePerItem,
		TotalPrice:   order.TotalPrice,
		Status:       order.Status,
		Notes:        order.Notes,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

func OrdersToResponse(orders []*entity.Order) *OrderListResponse {
	items := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, OrderToResponse(o))
	}
	return &OrderListResponse{
		Count:  len(items),
		Orders: items,
	}
}

func StatsToResponse(stats *entity.OrderStats) *StatsResponse {
	return &StatsResponse{
		Total:     stats.Total,
		Pending:   stats.Pending,
		Washing:   stats.Washing,
		Completed: stats.Completed,
	}
}
