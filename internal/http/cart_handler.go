package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CartService interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	UpdateCart(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
}

type CartHandler struct {
	carts   CartService
	timeout time.Duration
}

func NewCartHandler(carts CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		timeout: timeout,
	}
}

type CartItemDTO struct {
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

type CartDTO struct {
	UserID           string        `json:"user"`
	VendingMachineID string        `json:"vendingMachine"`
	Items            []CartItemDTO `json:"items"`
}

type UpdateCartRequestDTO struct {
	Cart CartDTO `json:"cart"`
}

type UpdateCartResponse struct {
	Message string       `json:"message"`
	Cart    *domain.Cart `json:"cart"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cart, err := h.carts.GetCart(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		mapServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateCartRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	items := make([]domain.CartItem, len(req.Cart.Items))
	for i, item := range req.Cart.Items {
		items[i] = domain.CartItem{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Price:    item.Price,
			ImageURL: item.ImageURL,
		}
	}

	cart, err := h.carts.UpdateCart(ctx, &domain.Cart{
		UserID:    req.Cart.UserID,
		MachineID: req.Cart.VendingMachineID,
		Items:     items,
	})
	if err != nil {
		mapServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, UpdateCartResponse{Message: "Cart updated successfully.", Cart: cart})
}
