package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
	"github.com/go-chi/chi/v5"
)

type MachineService interface {
	GetMachine(ctx context.Context, machineID string) (*domain.Machine, error)
	AddStock(ctx context.Context, machineID, itemName string, quantity int, price float64, imageURL string) error
	UpdateStock(ctx context.Context, machineID string, submitted []domain.StockItem) (*domain.Machine, error)
}

type MachineHandler struct {
	machines MachineService
	timeout  time.Duration
}

func NewMachineHandler(machines MachineService, timeout time.Duration) *MachineHandler {
	return &MachineHandler{
		machines: machines,
		timeout:  timeout,
	}
}

type StockItemDTO struct {
	ItemName string  `json:"itemName"`
	Quantity int     `json:"stock"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

type UpdateStockRequestDTO struct {
	Stock []StockItemDTO `json:"stock"`
}

type AddStockRequestDTO struct {
	ItemName         string  `json:"itemName"`
	Quantity         int     `json:"quantity"`
	Price            float64 `json:"price"`
	ImageURL         string  `json:"imageUrl,omitempty"`
	VendingMachineID string  `json:"vendingMachineId"`
}

type UpdateStockResponse struct {
	Message string          `json:"message"`
	Machine *domain.Machine `json:"machine"`
}

func (h *MachineHandler) GetMachine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	machine, err := h.machines.GetMachine(ctx, chi.URLParam(r, "id"))
	if err != nil {
		mapServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, machine)
}

func (h *MachineHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateStockRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	submitted := make([]domain.StockItem, len(req.Stock))
	for i, item := range req.Stock {
		submitted[i] = domain.StockItem{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Price:    item.Price,
			ImageURL: item.ImageURL,
		}
	}

	machine, err := h.machines.UpdateStock(ctx, chi.URLParam(r, "machineId"), submitted)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, UpdateStockResponse{Message: "Stock updated successfully.", Machine: machine})
}

func (h *MachineHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddStockRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	err := h.machines.AddStock(ctx, req.VendingMachineID, req.ItemName, req.Quantity, req.Price, req.ImageURL)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
