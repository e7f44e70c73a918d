package token

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
)

// Version is the current payload schema version. Parse rejects anything else,
// so future-shaped payloads fail predictably instead of half-decoding.
const Version = 1

var ErrMalformedPayload = errors.New("malformed token payload")

// Payload is the point-in-time order snapshot embedded in the QR code.
// It lets a machine operator verify offline-assisted, but the canonical order
// is always re-checked server-side.
type Payload struct {
	Version   int     `json:"version"`
	OrderID   string  `json:"orderId"`
	UserID    string  `json:"userId"`
	MachineID string  `json:"vendingMachineId"`
	Total     float64 `json:"total"`
	Status    string  `json:"status"`
	Items     []Item  `json:"items"`
}

type Item struct {
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// FromOrder snapshots the verifiable fields of an order.
func FromOrder(order *domain.Order) Payload {
	items := make([]Item, len(order.Items))
	for i, item := range order.Items {
		items[i] = Item{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}
	return Payload{
		Version:   Version,
		OrderID:   order.ID.String(),
		UserID:    order.UserID,
		MachineID: order.MachineID,
		Total:     order.Total,
		Status:    order.Status.String(),
		Items:     items,
	}
}

// Encode renders the payload as the JSON document carried by the QR code.
func (p Payload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal token payload: %w", err)
	}
	return string(data), nil
}

// Parse decodes and validates a scanned payload string.
func Parse(data string) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if p.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedPayload, p.Version)
	}
	if p.OrderID == "" || p.UserID == "" || p.MachineID == "" {
		return nil, fmt.Errorf("%w: missing identifiers", ErrMalformedPayload)
	}
	if p.Status == "" {
		return nil, fmt.Errorf("%w: missing status", ErrMalformedPayload)
	}
	// Only structural checks here. Value-level differences (quantities,
	// prices) are the verifier's job, so it can name the offending item.
	for _, item := range p.Items {
		if item.ItemName == "" {
			return nil, fmt.Errorf("%w: item entry without a name", ErrMalformedPayload)
		}
	}

	return &p, nil
}
