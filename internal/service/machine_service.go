package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/cache"
	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/repository"
	"golang.org/x/sync/singleflight"
)

// maxStockRetries bounds the CAS retry loop on ledger writes.
const maxStockRetries = 3

type MachineService struct {
	repo  repository.MachineRepository
	cache cache.MachineCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewMachineService(repo repository.MachineRepository, cache cache.MachineCache) *MachineService {
	return &MachineService{
		repo:  repo,
		cache: cache,
	}
}

func (s *MachineService) GetMachine(ctx context.Context, machineID string) (*domain.Machine, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(machineID, func() (interface{}, error) {

		machine, err := s.cache.Get(ctx, machineID)
		if err == nil {
			return machine, nil // machine is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		machine, errGet := s.repo.GetMachine(ctx, machineID)
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), machineID, machine)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return machine, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Machine), nil
}

// AddStock applies upsert semantics: quantity is added to an existing entry
// (price replaced), or a new entry is inserted.
func (s *MachineService) AddStock(ctx context.Context, machineID, itemName string, quantity int, price float64, imageURL string) error {
	if itemName == "" || quantity <= 0 || price < 0 {
		return ErrValidation
	}
	return s.mutateStock(ctx, machineID, func(stock []domain.StockItem) ([]domain.StockItem, error) {
		return domain.UpsertStock(stock, itemName, quantity, price, imageURL), nil
	})
}

// UpdateStock reconciles an admin-submitted full ledger against the stored
// one (full-replace semantics) and returns the updated machine.
func (s *MachineService) UpdateStock(ctx context.Context, machineID string, submitted []domain.StockItem) (*domain.Machine, error) {
	for _, item := range submitted {
		if item.ItemName == "" {
			return nil, ErrValidation
		}
	}

	err := s.mutateStock(ctx, machineID, func(stock []domain.StockItem) ([]domain.StockItem, error) {
		return domain.ReconcileStock(stock, submitted), nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetMachine(ctx, machineID)
}

// DecrementStock subtracts the ordered quantities from the machine's ledger,
// all-or-nothing: a single line that would go negative fails the whole call
// with InsufficientStockError and leaves every entry untouched.
func (s *MachineService) DecrementStock(ctx context.Context, machineID string, items []domain.OrderItem) error {
	return s.mutateStock(ctx, machineID, func(stock []domain.StockItem) ([]domain.StockItem, error) {
		updated, failed := domain.DecrementStock(stock, items)
		if failed != "" {
			return nil, &InsufficientStockError{ItemName: failed}
		}
		return updated, nil
	})
}

// mutateStock runs a read-modify-write cycle against the versioned ledger.
// A concurrent writer bumps the version, our conditional write matches
// nothing, and we re-read and retry. This is the per-machine serialization
// point that keeps stock from going negative under racing checkouts.
func (s *MachineService) mutateStock(ctx context.Context, machineID string, fn func([]domain.StockItem) ([]domain.StockItem, error)) error {
	for attempt := 0; attempt < maxStockRetries; attempt++ {
		machine, err := s.repo.GetMachine(ctx, machineID)
		if err != nil {
			return err
		}

		updated, err := fn(machine.Stock)
		if err != nil {
			return err
		}

		err = s.repo.ReplaceStock(ctx, machineID, machine.Version, updated)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return err
		}

		s.invalidateCache(machineID)
		return nil
	}
	return ErrTooManyConflicts
}

func (s *MachineService) invalidateCache(machineID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, machineID); err != nil {
		log.Printf("cache invalidate error: %v \n", err)
	}
}
