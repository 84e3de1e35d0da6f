package http

import (
	"log/slog"
	"net/http"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/order"
	"github.com/fieldops-id/fieldops-backend-go/internal/handler/http/response"
)

type OrderHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Ship(w http.ResponseWriter, r *http.Request)
}

type orderHandlerImpl struct {
	orderService order.OrderService
}

func NewOrderHandler(orderService order.OrderService) OrderHandler {
	return &orderHandlerImpl{
		orderService: orderService,
	}
}

// Create implements OrderHandler.
func (h *orderHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req order.CreateOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		slog.Error("CreateOrder decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.orderService.Create(r.Context(), userID, req)
	if err != nil {
		slog.Warn("CreateOrder service error", "error", err, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Order created successfully", "order_id", result.ID)
	response.Created(w, "Order created successfully", result)
}

// List implements OrderHandler.
func (h *orderHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	filter := order.OrderFilter{
		OutletID: queryString(r, "outlet_id"),
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	}

	result, err := h.orderService.List(r.Context(), userID, filter)
	if err != nil {
		slog.Error("ListOrders service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Orders, newMeta(result.Page, result.Limit, result.TotalCount, result.TotalPages, result.Showing))
}

// Get implements OrderHandler.
func (h *orderHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := h.orderService.Get(r.Context(), userID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Ship implements OrderHandler.
func (h *orderHandlerImpl) Ship(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := h.orderService.MarkShipped(r.Context(), userID, id)
	if err != nil {
		slog.Warn("ShipOrder service error", "error", err, "order_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Order marked as shipped", result)
}
