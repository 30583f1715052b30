// Package client is the customer and admin side of the laundry API: a typed
// HTTP client, a persisted identity, an orders/stats cache and an unread
// notification poller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"laundry-service/internal/dto/request"
	"laundry-service/internal/dto/response"
)

// APIError is any non-2xx reply from the server.
type APIError struct {
	StatusCode int
	Message    string
	Errors     map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

// Client talks to the REST API. When a Session is attached its token is sent
// on every request and a 401 reply clears it.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

func New(baseURL string, timeout time.Duration, session *Session) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: session,
	}
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		if resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized && c.session != nil {
			_ = c.session.Clear()
		}
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: env.Message}
		if len(env.Errors) > 0 {
			_ = json.Unmarshal(env.Errors, &apiErr.Errors)
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode %s %s data: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) Register(ctx context.Context, req request.RegisterRequest) (*response.AuthResponse, error) {
	var out response.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, req request.LoginRequest) (*response.AuthResponse, error) {
	var out response.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOrder(ctx context.Context, req request.CreateOrderRequest) (*response.OrderResponse, error) {
	var out response.OrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyOrders(ctx context.Context) (*response.OrderListResponse, error) {
	var out response.OrderListResponse
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Order(ctx context.Context, id string) (*response.OrderResponse, error) {
	var out response.OrderResponse
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AllOrders lists every order; status may be empty.
func (c *Client) AllOrders(ctx context.Context, status string) (*response.OrderListResponse, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}

	var out response.OrderListResponse
	if err := c.do(ctx, http.MethodGet, "/admin/orders", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*response.OrderResponse, error) {
	var out response.OrderResponse
	body := request.UpdateOrderStatusRequest{Status: status}
	if err := c.do(ctx, http.MethodPut, "/admin/orders/"+url.PathEscape(id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Stats(ctx context.Context) (*response.StatsResponse, error) {
	var out response.StatsResponse
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Notifications(ctx context.Context, req request.NotificationListRequest) (*response.NotificationListResponse, error) {
	query := url.Values{}
	if req.UnreadOnly {
		query.Set("unreadOnly", "true")
	}
	if req.Limit > 0 {
		query.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Offset > 0 {
		query.Set("offset", strconv.Itoa(req.Offset))
	}

	var out response.NotificationListResponse
	if err := c.do(ctx, http.MethodGet, "/admin/notifications", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var out response.UnreadCountResponse
	if err := c.do(ctx, http.MethodGet, "/admin/notifications/unread-count", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Unread, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) (*response.NotificationResponse, error) {
	var out response.NotificationResponse
	if err := c.do(ctx, http.MethodPut, "/admin/notifications/"+url.PathEscape(id)+"/read", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	var out response.MarkAllReadResponse
	if err := c.do(ctx, http.MethodPut, "/admin/notifications/read-all", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Updated, nil
}
