package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/service"
	"github.com/go-chi/chi/v5"
)

// OrderService is what the order handlers need from the service layer.
type OrderService interface {
	CreateOrder(ctx context.Context, in service.CreateOrderInput) (*domain.Order, error)
	VerifyOrder(ctx context.Context, qrCodeData, machineID string) (*domain.Order, error)
	VerifyOrderForAnyMachine(ctx context.Context, qrCodeData string) (*domain.Order, error)
	Complete(ctx context.Context, orderID string) (*domain.Order, error)
	UndoComplete(ctx context.Context, orderID string) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListUserOrders(ctx context.Context, userID string) ([]*domain.Order, error)
	ListMachineOrders(ctx context.Context, machineID string) ([]*domain.Order, error)
	Stats(ctx context.Context, machineID string) (*domain.OrderStats, error)
}

type OrderHandler struct {
	orders  OrderService
	timeout time.Duration
}

func NewOrderHandler(orders OrderService, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		timeout: timeout,
	}
}

type OrderItemDTO struct {
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type CreateOrderRequestDTO struct {
	UserID           string         `json:"userId"`
	VendingMachineID string         `json:"vendingMachineId"`
	Items            []OrderItemDTO `json:"items"`
	// Total is accepted for compatibility but recomputed server-side.
	Total float64 `json:"total"`
}

type VerifyOrderRequestDTO struct {
	QRCodeData       string `json:"qrCodeData"`
	VendingMachineID string `json:"vendingMachineId"`
}

type OrderIDRequestDTO struct {
	OrderID string `json:"orderId"`
}

type OrderResponse struct {
	Message string        `json:"message,omitempty"`
	Order   *domain.Order `json:"order"`
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.OrderItem{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	order, err := h.orders.CreateOrder(ctx, service.CreateOrderInput{
		UserID:    req.UserID,
		MachineID: req.VendingMachineID,
		Items:     items,
	})
	if err != nil {
		mapServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, OrderResponse{Message: "Order created successfully", Order: order})
}

func (h *OrderHandler) VerifyOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req VerifyOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	order, err := h.orders.VerifyOrder(ctx, req.QRCodeData, req.VendingMachineID)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, OrderResponse{Order: order})
}

func (h *OrderHandler) VerifyOrderMachine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req VerifyOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	order, err := h.orders.VerifyOrderForAnyMachine(ctx, req.QRCodeData)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, OrderResponse{Order: order})
}

func (h *OrderHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req OrderIDRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	order, err := h.orders.Complete(ctx, req.OrderID)
	if errors.Is(err, service.ErrInvalidTransition) {
		respondMessage(w, http.StatusBadRequest, "Order is already completed or not in pending status.")
		return
	}
	if err != nil {
		mapServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, OrderResponse{Message: "Order completed successfully", Order: order})
}

func (h *OrderHandler) UndoCompletedOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req OrderIDRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	order, err := h.orders.UndoComplete(ctx, req.OrderID)
	if errors.Is(err, service.ErrInvalidTransition) {
		respondMessage(w, http.StatusBadRequest, "Order is not completed, cannot undo.")
		return
	}
	if err != nil {
		mapServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, OrderResponse{Message: "Order status reverted to Pending", Order: order})
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.orders.GetOrder(ctx, chi.URLParam(r, "orderId"))
	if err != nil {
		mapServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, OrderResponse{Order: order})
}

func (h *OrderHandler) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.ListUserOrders(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		mapServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string][]*domain.Order{"orders": orders})
}

func (h *OrderHandler) ListMachineOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	machineID := chi.URLParam(r, "machineId")
	orders, err := h.orders.ListMachineOrders(ctx, machineID)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	if len(orders) == 0 {
		respondMessage(w, http.StatusNotFound, "No orders found for this vending machine")
		return
	}

	respondJSON(w, http.StatusOK, map[string][]*domain.Order{"orders": orders})
}

func (h *OrderHandler) OrderStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	stats, err := h.orders.Stats(ctx, chi.URLParam(r, "machineId"))
	if err != nil {
		mapServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
