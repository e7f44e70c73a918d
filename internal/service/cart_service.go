package service

import (
	"context"
	"fmt"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/repository"
)

type CartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) *CartService {
	return &CartService{repo: repo}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.repo.GetCart(ctx, userID)
}

// UpdateCart replaces the cart's contents wholesale. The machine reference is
// dropped as soon as the cart has no items, so an empty cart can be refilled
// from any machine.
func (s *CartService) UpdateCart(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if cart == nil || cart.UserID == "" {
		return nil, fmt.Errorf("%w: cart and user are required", ErrValidation)
	}
	for _, item := range cart.Items {
		if item.ItemName == "" || item.Quantity < 1 {
			return nil, fmt.Errorf("%w: cart items need a name and a quantity of at least 1", ErrValidation)
		}
	}
	if len(cart.Items) == 0 {
		cart.MachineID = ""
	}

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.repo.ClearCart(ctx, userID)
}
