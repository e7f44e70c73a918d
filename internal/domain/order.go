package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
)

// CanTransitionTo reports whether the status machine allows s -> next.
// Pending and Completed toggle into each other; nothing else exists.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch {
	case s == OrderStatusPending && next == OrderStatusCompleted:
		return true
	case s == OrderStatusCompleted && next == OrderStatusPending:
		return true
	default:
		return false
	}
}

func (s OrderStatus) String() string {
	return string(s)
}

// Pricing applied on top of the item subtotal at checkout.
const (
	TaxRate     = 0.18
	PlatformFee = 5.00
)

type OrderItem struct {
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// Order is an immutable record of a checkout. Only Status ever changes after
// creation; items and total are frozen at build time.
type Order struct {
	ID           uuid.UUID   `json:"id"`
	UserID       string      `json:"user"`
	MachineID    string      `json:"vendingMachine"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	TokenPayload string      `json:"-"`
	QRCodeURI    string      `json:"qrCodeUri,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// OrderTotal computes the checkout total: item subtotal plus tax plus the flat
// platform fee, rounded to cents.
func OrderTotal(items []OrderItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	total := subtotal*(1+TaxRate) + PlatformFee
	return math.Round(total*100) / 100
}

// OrderStats aggregates a machine's orders for the operator dashboard.
type OrderStats struct {
	DailyRevenue map[string]float64 `json:"dailyRevenue"`
	ItemsSold    map[string]int     `json:"itemsSold"`
	OrdersCount  int                `json:"ordersCount"`
}
