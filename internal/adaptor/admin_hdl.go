package adaptor

import (
	"encoding/json"
	"net/http"

	"laundry-service/internal/dto/request"
	"laundry-service/internal/usecase"
	"laundry-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	orders usecase.OrderService
	log    *zap.Logger
}

func NewAdminHandler(orders usecase.OrderService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		orders: orders,
		log:    log,
	}
}

// ListOrders handles GET /api/admin/orders?status=
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	filter := request.OrderFilter{Status: r.URL.Query().Get("status")}
	if validationErrors := utils.ValidateStruct(filter); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	orders, err := h.orders.ListAll(r.Context(), caller, filter)
	if err != nil {
		handleServiceError(w, h.log, err, "list all orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved", orders)
}

// UpdateOrderStatus handles PUT /api/admin/orders/{id}
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		decodeFailed(w)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Invalid status", validationErrors)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), caller, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update order status")
		return
	}

	utils.ResponseSuccess(w, "Order status updated", order)
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	stats, err := h.orders.Stats(r.Context(), caller)
	if err != nil {
		handleServiceError(w, h.log, err, "order stats")
		return
	}

	utils.ResponseSuccess(w, "Stats retrieved", stats)
}
