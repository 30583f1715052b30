package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"laundry-service/internal/data/entity"
	"laundry-service/internal/data/repository"
	"laundry-service/internal/dto/request"
	"laundry-service/internal/dto/response"
	"laundry-service/pkg/metrics"
	"laundry-service/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	// Customer
	Create(ctx context.Context, caller utils.Identity, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	ListMine(ctx context.Context, caller utils.Identity) (*response.OrderListResponse, error)
	GetByID(ctx context.Context, caller utils.Identity, orderID string) (*response.OrderResponse, error)

	// Admin
	ListAll(ctx context.Context, caller utils.Identity, filter request.OrderFilter) (*response.OrderListResponse, error)
	UpdateStatus(ctx context.Context, caller utils.Identity, orderID string, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error)
	Stats(ctx context.Context, caller utils.Identity) (*response.StatsResponse, error)
}

type orderService struct {
	repo    *repository.Repository
	rates   RateTable
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewOrderService(repo *repository.Repository, rates RateTable, m *metrics.Metrics, log *zap.Logger) OrderService {
	return &orderService{
		repo:    repo,
		rates:   rates,
		metrics: m,
		log:     log.With(zap.String("service", "order")),
	}
}

const (
	MaxOrderQuantity = 1000
	// MaxOrderTotal is the largest value orders.total_price (NUMERIC(10,2)) holds.
	MaxOrderTotal = 99_999_999.99
)

func (s *orderService) Create(ctx context.Context, caller utils.Identity, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	serviceType := entity.ServiceType(req.ServiceType)
	if !serviceType.Valid() {
		return nil, fmt.Errorf("%w: unknown service type %q", ErrValidation, req.ServiceType)
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if req.Quantity > MaxOrderQuantity {
		return nil, fmt.Errorf("%w: quantity must be at most %d", ErrValidation, MaxOrderQuantity)
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	pricePerItem, ok := s.rates.PriceFor(serviceType)
	if !ok {
		return nil, fmt.Errorf("%w: no rate for %s", ErrValidation, serviceType)
	}
	totalPrice := pricePerItem * float64(req.Quantity)
	if totalPrice > MaxOrderTotal {
		return nil, fmt.Errorf("%w: order total exceeds %.2f", ErrValidation, MaxOrderTotal)
	}

	// Snapshot the customer as stored now, not as recorded in the token.
	customer, err := s.repo.User.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthenticated)
	}

	now := time.Now()
	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:       customer.ID,
		UserName:     customer.Name,
		UserEmail:    customer.Email,
		ServiceType:  serviceType,
		Quantity:     req.Quantity,
		PricePerItem: pricePerItem,
		TotalPrice:   totalPrice,
		Status:       entity.OrderStatusPending,
		Notes:        req.Notes,
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.metrics.OrderCreated(string(serviceType))
	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", order.UserID.String()),
		zap.String("service_type", string(order.ServiceType)),
		zap.Int("quantity", order.Quantity),
		zap.Float64("total_price", order.TotalPrice))

	if err := s.notifyAdmins(ctx, order); err != nil {
		s.metrics.FanoutFailed()
		s.log.Error("Failed to notify admins of new order",
			zap.Error(err),
			zap.String("order_id", order.ID.String()))
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

// notifyAdmins inserts one order_created notification per admin account.
func (s *orderService) notifyAdmins(ctx context.Context, order *entity.Order) error {
	admins, err := s.repo.User.FindByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}
	if len(admins) == 0 {
		return nil
	}

	total := strconv.FormatFloat(order.TotalPrice, 'f', -1, 64)
	message := fmt.Sprintf("Order #%s placed by %s - $%s", order.ID.String(), order.UserName, total)
	orderID := order.ID

	now := time.Now()
	notifications := make([]*entity.Notification, 0, len(admins))
	for _, admin := range admins {
		notifications = append(notifications, &entity.Notification{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:  admin.ID,
			OrderID: &orderID,
			Type:    entity.NotificationOrderCreated,
			Title:   "New order received",
			Message: message,
			Data: map[string]any{
				"orderId":     order.ID.String(),
				"userId":      order.UserID.String(),
				"userName":    order.UserName,
				"userEmail":   order.UserEmail,
				"serviceType": string(order.ServiceType),
				"quantity":    order.Quantity,
				"totalPrice":  order.TotalPrice,
			},
		})
	}

	if err := s.repo.Notification.CreateBatch(ctx, notifications); err != nil {
		return err
	}

	s.metrics.NotificationsFannedOut(len(notifications))
	return nil
}

func (s *orderService) ListMine(ctx context.Context, caller utils.Identity) (*response.OrderListResponse, error) {
	orders, err := s.repo.Order.FindByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return response.OrdersToResponse(orders), nil
}

func (s *orderService) GetByID(ctx context.Context, caller utils.Identity, orderID string) (*response.OrderResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order not found", ErrNotFound)
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order not found", ErrNotFound)
	}

	if order.UserID != caller.UserID {
		s.log.Warn("Order requested by non-owner",
			zap.String("order_id", order.ID.String()),
			zap.String("user_id", caller.UserID.String()))
		return nil, ErrNotOwner
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) ListAll(ctx context.Context, caller utils.Identity, filter request.OrderFilter) (*response.OrderListResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	var status *entity.OrderStatus
	if filter.Status != "" {
		st := entity.OrderStatus(filter.Status)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, filter.Status)
		}
		status = &st
	}

	orders, err := s.repo.Order.FindAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return response.OrdersToResponse(orders), nil
}

// UpdateStatus moves an order strictly forward along Pending -> Washing ->
// Completed. Skipping ahead is allowed, going back or repeating is not.
func (s *orderService) UpdateStatus(ctx context.Context, caller utils.Identity, orderID string, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	next := entity.OrderStatus(req.Status)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order not found", ErrNotFound)
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order not found", ErrNotFound)
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: invalid status transition from %s to %s", ErrValidation, order.Status, next)
	}

	updated, err := s.repo.Order.UpdateStatus(ctx, id, order.Status, next)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if updated == nil {
		// Another update got there first.
		current, err := s.repo.Order.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get order: %w", err)
		}
		if current == nil {
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: invalid status transition from %s to %s", ErrValidation, current.Status, next)
	}

	s.metrics.StatusChanged(string(next))
	s.log.Info("Order status updated",
		zap.String("order_id", updated.ID.String()),
		zap.String("from", string(order.Status)),
		zap.String("to", string(updated.Status)),
		zap.String("admin_id", caller.UserID.String()))

	resp := response.OrderToResponse(updated)
	return &resp, nil
}

func (s *orderService) Stats(ctx context.Context, caller utils.Identity) (*response.StatsResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	stats, err := s.repo.Order.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}
	return response.StatsToResponse(stats), nil
}
