package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/events"
	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/repository"
	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/token"
	"github.com/google/uuid"
)

type OrderService struct {
	orders    repository.OrderRepository
	machines  *MachineService
	carts     *CartService
	publisher events.Publisher
}

func NewOrderService(orders repository.OrderRepository, machines *MachineService, carts *CartService, publisher events.Publisher) *OrderService {
	return &OrderService{
		orders:    orders,
		machines:  machines,
		carts:     carts,
		publisher: publisher,
	}
}

type CreateOrderInput struct {
	UserID    string
	MachineID string
	Items     []domain.OrderItem
}

// CreateOrder builds an order from a cart snapshot: persist it Pending first
// so the record exists whatever happens to stock afterwards, attach the token
// payload and QR code, decrement the machine's ledger, and clear the cart.
// The total is computed server-side; the client-submitted total is ignored.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if in.UserID == "" || in.MachineID == "" || len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: userId, vendingMachineId and items are required", ErrValidation)
	}
	for _, item := range in.Items {
		if item.ItemName == "" || item.Quantity < 1 {
			return nil, fmt.Errorf("%w: order items need a name and a quantity of at least 1", ErrValidation)
		}
	}

	order := &domain.Order{
		ID:        uuid.New(),
		UserID:    in.UserID,
		MachineID: in.MachineID,
		Items:     in.Items,
		Total:     domain.OrderTotal(in.Items),
		Status:    domain.OrderStatusPending,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	payload, err := token.FromOrder(order).Encode()
	if err != nil {
		return nil, err
	}
	qrCodeURI, err := token.QRDataURI(payload)
	if err != nil {
		return nil, err
	}
	order.TokenPayload = payload
	order.QRCodeURI = qrCodeURI
	if err := s.orders.AttachToken(ctx, order.ID, payload, qrCodeURI); err != nil {
		return nil, fmt.Errorf("attach token: %w", err)
	}

	// The order stays recorded as Pending even when stock fails here.
	if err := s.machines.DecrementStock(ctx, in.MachineID, in.Items); err != nil {
		return nil, err
	}

	if err := s.carts.ClearCart(ctx, in.UserID); err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		log.Printf("clear cart for user %s: %v", in.UserID, err)
	}

	s.publish(events.TypeOrderCreated, order)
	return order, nil
}

// Complete moves a Pending order to Completed. The conditional repository
// update keeps two operators from completing the same order twice.
func (s *OrderService) Complete(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.transition(ctx, orderID, domain.OrderStatusPending, domain.OrderStatusCompleted, events.TypeOrderCompleted)
}

// UndoComplete reverts a Completed order to Pending.
func (s *OrderService) UndoComplete(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.transition(ctx, orderID, domain.OrderStatusCompleted, domain.OrderStatusPending, events.TypeOrderReverted)
}

func (s *OrderService) transition(ctx context.Context, orderID string, from, to domain.OrderStatus, eventType string) (*domain.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order id", ErrValidation)
	}

	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status != from || !order.Status.CanTransitionTo(to) {
		return nil, ErrInvalidTransition
	}

	err = s.orders.UpdateStatus(ctx, id, from, to)
	if errors.Is(err, repository.ErrStatusConflict) {
		// Lost the race: someone else transitioned it first.
		return nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order.Status = to
	s.publish(eventType, order)
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order id", ErrValidation)
	}
	return s.orders.GetOrderByID(ctx, id)
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListOrdersByUserID(ctx, userID)
}

func (s *OrderService) ListMachineOrders(ctx context.Context, machineID string) ([]*domain.Order, error) {
	return s.orders.ListOrdersByMachineID(ctx, machineID)
}

func (s *OrderService) publish(eventType string, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	event := events.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID.String(),
		UserID:     order.UserID,
		MachineID:  order.MachineID,
		Total:      order.Total,
		Status:     order.Status.String(),
		OccurredAt: time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.Printf("publish %s event for order %s: %v", eventType, event.OrderID, err)
		}
	}()
}
