package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"laundry-service/internal/data/entity"
	"laundry-service/internal/dto/request"
	"laundry-service/internal/dto/response"
	"laundry-service/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authResponse(role entity.UserRole) *response.AuthResponse {
	return &response.AuthResponse{
		Token:     "token-" + string(role),
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		User: response.UserResponse{
			ID:    "7d9d7a2e-6a55-4b8e-9a57-0f1f3b2f7a10",
			Name:  "Ana",
			Email: "ana@example.com",
			Phone: "555",
			Role:  role,
		},
		Role: role,
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *Session) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	session, err := OpenSession(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	return New(srv.URL+"/api", time.Second, session), session
}

func TestSession_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	session, err := OpenSession(path)
	require.NoError(t, err)
	assert.False(t, session.IsAuthenticated())

	require.NoError(t, session.Login(authResponse(entity.RoleAdmin)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := OpenSession(path)
	require.NoError(t, err)
	assert.True(t, reopened.IsAuthenticated())
	assert.True(t, reopened.IsAdmin())

	identity, ok := reopened.Identity()
	require.True(t, ok)
	assert.Equal(t, "Ana", identity.User.Name)
	assert.Equal(t, "token-admin", identity.Token)

	require.NoError(t, reopened.Clear())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.False(t, reopened.IsAdmin())
}

func TestSession_IgnoresCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	session, err := OpenSession(path)
	require.NoError(t, err)
	assert.False(t, session.IsAuthenticated())
}

func TestClient_SendsBearerAndDecodesEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-customer", r.Header.Get("Authorization"))
		utils.ResponseSuccess(w, "Orders retrieved", response.OrderListResponse{
			Count:  1,
			Orders: []response.OrderResponse{{ID: "o-1", Status: entity.OrderStatusPending}},
		})
	})

	api, session := newTestClient(t, mux)
	require.NoError(t, session.Login(authResponse(entity.RoleCustomer)))

	list, err := api.MyOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "o-1", list.Orders[0].ID)
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseUnauthorized(w, "Token expired")
	})

	api, session := newTestClient(t, mux)
	require.NoError(t, session.Login(authResponse(entity.RoleCustomer)))

	_, err := api.MyOrders(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Token expired", err.Error())
	assert.False(t, session.IsAuthenticated())
}

func TestClient_ValidationErrorsAreExposed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		var req request.CreateOrderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dry-clean", req.ServiceType)
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"serviceType": "serviceType is invalid"})
	})

	api, session := newTestClient(t, mux)
	require.NoError(t, session.Login(authResponse(entity.RoleCustomer)))

	_, err := api.CreateOrder(context.Background(), request.CreateOrderRequest{ServiceType: "dry-clean", Quantity: 1})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Errors, "serviceType")
	assert.True(t, session.IsAuthenticated())
}

func TestAuth_AdminLoginRejectsCustomer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "Login successful", authResponse(entity.RoleCustomer))
	})

	api, session := newTestClient(t, mux)
	auth := NewAuth(api, session)

	_, err := auth.AdminLogin(context.Background(), "ana@example.com", "secret1")
	assert.ErrorIs(t, err, ErrNotAdmin)
	assert.False(t, session.IsAuthenticated())

	identity, err := auth.Login(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, identity.Role)
	assert.True(t, session.IsAuthenticated())

	require.NoError(t, auth.Logout())
	assert.False(t, session.IsAuthenticated())
}

func TestOrderStore_UpdateStatusReplacesOrderAndRefetchesStats(t *testing.T) {
	var statsCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Pending", r.URL.Query().Get("status"))
		utils.ResponseSuccess(w, "Orders retrieved", response.OrderListResponse{
			Count: 2,
			Orders: []response.OrderResponse{
				{ID: "o-1", Status: entity.OrderStatusPending},
				{ID: "o-2", Status: entity.OrderStatusPending},
			},
		})
	})
	mux.HandleFunc("/api/admin/orders/o-2", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		utils.ResponseSuccess(w, "Order status updated", response.OrderResponse{ID: "o-2", Status: entity.OrderStatusWashing})
	})
	mux.HandleFunc("/api/admin/stats", func(w http.ResponseWriter, r *http.Request) {
		statsCalls.Add(1)
		utils.ResponseSuccess(w, "Stats retrieved", response.StatsResponse{Total: 2, Pending: 1, Washing: 1})
	})

	api, session := newTestClient(t, mux)
	require.NoError(t, session.Login(authResponse(entity.RoleAdmin)))
	store := NewOrderStore(api)

	_, err := store.FetchAll(context.Background(), "Pending")
	require.NoError(t, err)
	assert.Nil(t, store.Stats())

	updated, err := store.UpdateStatus(context.Background(), "o-2", "Washing")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusWashing, updated.Status)

	orders := store.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, entity.OrderStatusPending, orders[0].Status)
	assert.Equal(t, entity.OrderStatusWashing, orders[1].Status)

	assert.Equal(t, int32(1), statsCalls.Load())
	require.NotNil(t, store.Stats())
	assert.Equal(t, int64(1), store.Stats().Washing)
}

func TestOrderStore_CreatePrependsOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			utils.ResponseCreated(w, "Order created", response.OrderResponse{ID: "new", TotalPrice: 24})
			return
		}
		utils.ResponseSuccess(w, "Orders retrieved", response.OrderListResponse{
			Count:  1,
			Orders: []response.OrderResponse{{ID: "old"}},
		})
	})

	api, session := newTestClient(t, mux)
	require.NoError(t, session.Login(authResponse(entity.RoleCustomer)))
	store := NewOrderStore(api)

	_, err := store.FetchMine(context.Background())
	require.NoError(t, err)

	order, err := store.Create(context.Background(), request.CreateOrderRequest{ServiceType: string(entity.ServiceHeavyWash), Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 24.0, order.TotalPrice)

	orders := store.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "new", orders[0].ID)
	assert.Equal(t, "new", store.Current().ID)
}

func TestUnreadPoller_StopsWhenNoLongerAdmin(t *testing.T) {
	var calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/notifications/unread-count", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		utils.ResponseSuccess(w, "Unread count retrieved", response.UnreadCountResponse{Unread: 2})
	})

	api, session := newTestClient(t, mux)
	require.NoError(t, session.Login(authResponse(entity.RoleAdmin)))

	var mu sync.Mutex
	var counts []int64

	poller := NewUnreadPoller(api, session, 10*time.Millisecond)
	poller.OnCount = func(unread int64) {
		mu.Lock()
		counts = append(counts, unread)
		n := len(counts)
		mu.Unlock()
		if n == 3 {
			_ = session.Clear()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, poller.Run(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int64{2, 2, 2}, counts)
	assert.Equal(t, int32(3), calls.Load())
}

func TestUnreadPoller_ReturnsOnCancel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/notifications/unread-count", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "Unread count retrieved", response.UnreadCountResponse{Unread: 0})
	})

	api, session := newTestClient(t, mux)
	require.NoError(t, session.Login(authResponse(entity.RoleAdmin)))

	ctx, cancel := context.WithCancel(context.Background())
	poller := NewUnreadPoller(api, session, time.Hour)
	poller.OnCount = func(int64) { cancel() }

	err := poller.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnreadPoller_DoesNothingForCustomer(t *testing.T) {
	api, session := newTestClient(t, http.NotFoundHandler())
	require.NoError(t, session.Login(authResponse(entity.RoleCustomer)))

	poller := NewUnreadPoller(api, session, 0)
	poller.OnCount = func(int64) { t.Fatal("customer must not poll") }

	assert.NoError(t, poller.Run(context.Background()))
}

func TestAdminAction(t *testing.T) {
	action, ok := AdminAction(entity.OrderStatusPending)
	require.True(t, ok)
	assert.Equal(t, "start washing", action.Label)
	assert.Equal(t, entity.OrderStatusWashing, action.Next)

	action, ok = AdminAction(entity.OrderStatusWashing)
	require.True(t, ok)
	assert.Equal(t, "mark complete", action.Label)
	assert.Equal(t, entity.OrderStatusCompleted, action.Next)

	_, ok = AdminAction(entity.OrderStatusCompleted)
	assert.False(t, ok)
	assert.Equal(t, "completed", actionLabel(entity.OrderStatusCompleted))
}

func TestRenderOrders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderOrders(&buf, nil, false))
	assert.Equal(t, "No orders yet.\n", buf.String())

	buf.Reset()
	orders := []response.OrderResponse{
		{ID: "o-1", UserName: "Ana", UserEmail: "ana@example.com", ServiceType: entity.ServiceHeavyWash, Quantity: 3, TotalPrice: 24, Status: entity.OrderStatusPending},
		{ID: "o-2", UserName: "Ben", UserEmail: "ben@example.com", ServiceType: entity.ServiceNormalWash, Quantity: 1, TotalPrice: 5, Status: entity.OrderStatusCompleted},
	}
	require.NoError(t, RenderOrders(&buf, orders, true))

	out := buf.String()
	assert.Contains(t, out, "CUSTOMER")
	assert.Contains(t, out, "$24.00")
	assert.Contains(t, out, "start washing")
	assert.Contains(t, out, "completed")
}
