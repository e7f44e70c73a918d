package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/repository"
	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/service"
	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/token"
)

type MessageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, MessageResponse{Message: message})
}

// mapServiceError translates service/repository errors into the HTTP status
// and operator-facing message for each failure.
func mapServiceError(w http.ResponseWriter, err error) {
	var insufficientErr *service.InsufficientStockError
	var itemNotFoundErr *service.ItemNotFoundError
	var itemMismatchErr *service.ItemMismatchError

	switch {
	case errors.As(err, &insufficientErr):
		respondMessage(w, http.StatusBadRequest, fmt.Sprintf("Not enough stock for item: %s", insufficientErr.ItemName))
	case errors.As(err, &itemNotFoundErr):
		respondMessage(w, http.StatusBadRequest, fmt.Sprintf("Item not found in the QR code: %s", itemNotFoundErr.ItemName))
	case errors.As(err, &itemMismatchErr):
		respondMessage(w, http.StatusBadRequest, fmt.Sprintf("Item details do not match for %s", itemMismatchErr.ItemName))
	case errors.Is(err, repository.ErrOrderNotFound):
		respondMessage(w, http.StatusNotFound, "Order not found or invalid.")
	case errors.Is(err, repository.ErrMachineNotFound):
		respondMessage(w, http.StatusNotFound, "Vending machine not found.")
	case errors.Is(err, repository.ErrCartNotFound):
		respondMessage(w, http.StatusNotFound, "Cart not found.")
	case errors.Is(err, token.ErrMalformedPayload):
		respondMessage(w, http.StatusBadRequest, "Invalid QR code data.")
	case errors.Is(err, service.ErrMachineMismatch):
		respondMessage(w, http.StatusBadRequest, "Vending machine does not match.")
	case errors.Is(err, service.ErrOrderDetailsMismatch):
		respondMessage(w, http.StatusBadRequest, "Order details do not match.")
	case errors.Is(err, service.ErrItemCountMismatch):
		respondMessage(w, http.StatusBadRequest, "Item count does not match.")
	case errors.Is(err, service.ErrValidation):
		respondMessage(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("request failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Server error. Please try again later.")
	}
}
