package service

import (
	"context"
	"math"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
)

// Stats aggregates a machine's orders into the operator dashboard shape:
// revenue per UTC day, units sold per item, and the order count.
func (s *OrderService) Stats(ctx context.Context, machineID string) (*domain.OrderStats, error) {
	orders, err := s.orders.ListOrdersByMachineID(ctx, machineID)
	if err != nil {
		return nil, err
	}

	stats := &domain.OrderStats{
		DailyRevenue: make(map[string]float64),
		ItemsSold:    make(map[string]int),
		OrdersCount:  len(orders),
	}

	for _, order := range orders {
		day := order.CreatedAt.UTC().Format("2006-01-02")
		stats.DailyRevenue[day] = math.Round((stats.DailyRevenue[day]+order.Total)*100) / 100

		for _, item := range order.Items {
			stats.ItemsSold[item.ItemName] += item.Quantity
		}
	}

	return stats, nil
}
