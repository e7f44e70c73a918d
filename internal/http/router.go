package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the handlers onto the route names the clients already use.
func NewRouter(orders OrderService, machines MachineService, carts CartService, timeout time.Duration) *chi.Mux {
	orderHandler := NewOrderHandler(orders, timeout)
	machineHandler := NewMachineHandler(machines, timeout)
	cartHandler := NewCartHandler(carts, timeout)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Machines & stock
	r.Get("/vending-machines/{id}", machineHandler.GetMachine)
	r.Put("/update-stock/{machineId}", machineHandler.UpdateStock)
	r.Post("/add-stock", machineHandler.AddStock)

	// Carts
	r.Get("/cart/{userId}", cartHandler.GetCart)
	r.Put("/update-cart", cartHandler.UpdateCart)

	// Orders
	r.Post("/create-order", orderHandler.CreateOrder)
	r.Get("/orders/{orderId}", orderHandler.GetOrder)
	r.Get("/orders/vending-machine/{machineId}", orderHandler.ListMachineOrders)
	r.Get("/userorders/{userId}", orderHandler.ListUserOrders)
	r.Get("/order-stats/{machineId}", orderHandler.OrderStats)
	r.Post("/verify-order", orderHandler.VerifyOrder)
	r.Post("/verify-order-machine", orderHandler.VerifyOrderMachine)
	r.Post("/complete-order", orderHandler.CompleteOrder)
	r.Post("/undo-completed-order", orderHandler.UndoCompletedOrder)

	return r
}
