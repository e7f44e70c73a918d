package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
	"github.com/google/uuid"
)

// In-memory implementations of the repository interfaces. Used for local
// development without external stores and as fixtures in service tests.

type MemoryMachineRepository struct {
	mu       sync.RWMutex
	machines map[string]*domain.Machine
}

func NewMemoryMachineRepository() *MemoryMachineRepository {
	return &MemoryMachineRepository{
		machines: make(map[string]*domain.Machine),
	}
}

func (s *MemoryMachineRepository) GetMachine(_ context.Context, id string) (*domain.Machine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	machine, exists := s.machines[id]
	if !exists {
		return nil, ErrMachineNotFound
	}
	copied := *machine
	copied.Stock = append([]domain.StockItem(nil), machine.Stock...)
	return &copied, nil
}

func (s *MemoryMachineRepository) ReplaceStock(_ context.Context, id string, version int64, stock []domain.StockItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	machine, exists := s.machines[id]
	if !exists {
		return ErrMachineNotFound
	}
	if machine.Version != version {
		return ErrVersionConflict
	}
	machine.Stock = append([]domain.StockItem(nil), stock...)
	machine.Version++
	return nil
}

func (s *MemoryMachineRepository) PutMachine(machine *domain.Machine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machines[machine.ID] = machine
}

type MemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{
		carts: make(map[string]*domain.Cart),
	}
}

func (s *MemoryCartRepository) GetCart(_ context.Context, userID string) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, exists := s.carts[userID]
	if !exists {
		return nil, ErrCartNotFound
	}
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (s *MemoryCartRepository) UpsertCart(_ context.Context, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	s.carts[cart.UserID] = &copied
	return nil
}

func (s *MemoryCartRepository) ClearCart(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[userID]
	if !exists {
		return ErrCartNotFound
	}
	cart.Items = []domain.CartItem{}
	cart.MachineID = ""
	cart.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryCartRepository) CreateIndexes(context.Context) error {
	return nil
}

type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[uuid.UUID]*domain.Order),
	}
}

func (s *MemoryOrderRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	copied := *order
	copied.Items = append([]domain.OrderItem(nil), order.Items...)
	s.orders[order.ID] = &copied
	return nil
}

func (s *MemoryOrderRepository) AttachToken(_ context.Context, id uuid.UUID, payload, qrCodeURI string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, exists := s.orders[id]
	if !exists {
		return ErrOrderNotFound
	}
	order.TokenPayload = payload
	order.QRCodeURI = qrCodeURI
	order.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryOrderRepository) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, exists := s.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	copied := *order
	copied.Items = append([]domain.OrderItem(nil), order.Items...)
	return &copied, nil
}

func (s *MemoryOrderRepository) ListOrdersByUserID(_ context.Context, userID string) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []*domain.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			copied := *order
			copied.Items = append([]domain.OrderItem(nil), order.Items...)
			orders = append(orders, &copied)
		}
	}
	return orders, nil
}

func (s *MemoryOrderRepository) ListOrdersByMachineID(_ context.Context, machineID string) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []*domain.Order
	for _, order := range s.orders {
		if order.MachineID == machineID {
			copied := *order
			copied.Items = append([]domain.OrderItem(nil), order.Items...)
			orders = append(orders, &copied)
		}
	}
	return orders, nil
}

func (s *MemoryOrderRepository) UpdateStatus(_ context.Context, id uuid.UUID, from, to domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, exists := s.orders[id]
	if !exists {
		return ErrOrderNotFound
	}
	if order.Status != from {
		return ErrStatusConflict
	}
	order.Status = to
	order.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryOrderRepository) RunMigrations(*Credentials) error { return nil }

func (s *MemoryOrderRepository) Close() error { return nil }
