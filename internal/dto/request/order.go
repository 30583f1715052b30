package request

type CreateOrderRequest struct {
	ServiceType string  `json:"serviceType" validate:"required,oneof=normal-wash heavy-wash delicate-wash express-wash"`
	Quantity    int     `json:"quantity" validate:"min=1,max=1000"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Washing Completed"`
}

type OrderFilter struct {
	Status string `validate:"omitempty,oneof=Pending Washing Completed"`
}
