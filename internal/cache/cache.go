package cache

import (
	"context"
	"errors"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
)

type MachineCache interface {
	Get(ctx context.Context, machineID string) (*domain.Machine, error)
	Set(ctx context.Context, machineID string, machine *domain.Machine) error
	Delete(ctx context.Context, machineID string) error
}

var ErrCacheMiss = errors.New("cache miss")
