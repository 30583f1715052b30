package client

import (
	"context"
	"sync"

	"laundry-service/internal/dto/request"
	"laundry-service/internal/dto/response"
)

// OrderStore caches the last fetched orders, the focused order and the
// admin stats. It only changes through its actions; nothing is refreshed
// behind the caller's back.
type OrderStore struct {
	api *Client

	mu      sync.RWMutex
	orders  []response.OrderResponse
	current *response.OrderResponse
	stats   *response.StatsResponse
}

func NewOrderStore(api *Client) *OrderStore {
	return &OrderStore{api: api}
}

func (s *OrderStore) FetchMine(ctx context.Context) ([]response.OrderResponse, error) {
	list, err := s.api.MyOrders(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.orders = list.Orders
	s.mu.Unlock()
	return list.Orders, nil
}

func (s *OrderStore) FetchAll(ctx context.Context, status string) ([]response.OrderResponse, error) {
	list, err := s.api.AllOrders(ctx, status)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.orders = list.Orders
	s.mu.Unlock()
	return list.Orders, nil
}

func (s *OrderStore) FetchOne(ctx context.Context, id string) (*response.OrderResponse, error) {
	order, err := s.api.Order(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = order
	s.mu.Unlock()
	return order, nil
}

func (s *OrderStore) FetchStats(ctx context.Context) (*response.StatsResponse, error) {
	stats, err := s.api.Stats(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()
	return stats, nil
}

// Create places an order and puts it at the head of the cached list.
func (s *OrderStore) Create(ctx context.Context, req request.CreateOrderRequest) (*response.OrderResponse, error) {
	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.orders = append([]response.OrderResponse{*order}, s.orders...)
	s.current = order
	s.mu.Unlock()
	return order, nil
}

// UpdateStatus replaces the changed order in the cache and then re-fetches
// the stats.
func (s *OrderStore) UpdateStatus(ctx context.Context, id, status string) (*response.OrderResponse, error) {
	order, err := s.api.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == order.ID {
			s.orders[i] = *order
		}
	}
	if s.current != nil && s.current.ID == order.ID {
		s.current = order
	}
	s.mu.Unlock()

	if _, err := s.FetchStats(ctx); err != nil {
		return order, err
	}
	return order, nil
}

func (s *OrderStore) Orders() []response.OrderResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]response.OrderResponse, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *OrderStore) Current() *response.OrderResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *OrderStore) Stats() *response.StatsResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}
