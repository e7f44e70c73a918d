package repository

import (
	"context"
	"errors"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrMachineNotFound = errors.New("vending machine not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrOrderNotFound   = errors.New("order not found")

	// ErrVersionConflict means a stock write lost the version race and the
	// caller should re-read the machine and retry.
	ErrVersionConflict = errors.New("machine version conflict")

	// ErrStatusConflict means a conditional status update matched no row
	// because the order was no longer in the expected status.
	ErrStatusConflict = errors.New("order not in expected status")
)

// MachineRepository stores vending machines and their stock ledgers.
// ReplaceStock is the single serialization point for ledger writes: it only
// applies when the stored version still equals the one the caller read.
type MachineRepository interface {
	GetMachine(ctx context.Context, id string) (*domain.Machine, error)
	ReplaceStock(ctx context.Context, id string, version int64, stock []domain.StockItem) error
}

type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	// ClearCart empties the items and drops the machine reference but keeps
	// the cart document itself.
	ClearCart(ctx context.Context, userID string) error
	CreateIndexes(ctx context.Context) error
}

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	// AttachToken stores the token payload and rendered QR code on an
	// already-persisted order.
	AttachToken(ctx context.Context, id uuid.UUID, payload, qrCodeURI string) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersByUserID(ctx context.Context, userID string) ([]*domain.Order, error)
	ListOrdersByMachineID(ctx context.Context, machineID string) ([]*domain.Order, error)
	// UpdateStatus transitions an order from the expected status to the new
	// one. Returns ErrStatusConflict if the order was not in `from` anymore.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error
	RunMigrations(*Credentials) error
	Close() error
}
