package service

import (
	"context"
	"sync"
	"testing"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMachineService(stock ...domain.StockItem) (*MachineService, *repository.MemoryMachineRepository) {
	repo := repository.NewMemoryMachineRepository()
	repo.PutMachine(&domain.Machine{
		ID:      "vm-1",
		Name:    "Lobby Machine",
		Address: "1 Main St",
		Stock:   stock,
	})
	return NewMachineService(repo, newMockCache()), repo
}

func TestGetMachine_FromRepo(t *testing.T) {
	svc, _ := setupMachineService(domain.StockItem{ItemName: "Soda", Quantity: 5, Price: 1.50})

	machine, err := svc.GetMachine(context.Background(), "vm-1")
	require.NoError(t, err)
	assert.Equal(t, "Lobby Machine", machine.Name)
	assert.Len(t, machine.Stock, 1)
}

func TestGetMachine_NotFound(t *testing.T) {
	svc, _ := setupMachineService()

	_, err := svc.GetMachine(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrMachineNotFound)
}

func TestGetMachine_CacheHitSkipsRepo(t *testing.T) {
	// Repo has nothing; a cache hit must still answer
	repo := repository.NewMemoryMachineRepository()
	cached := &domain.Machine{ID: "vm-9", Name: "Cached"}
	svc := NewMachineService(repo, &hitCache{machine: cached})

	machine, err := svc.GetMachine(context.Background(), "vm-9")
	require.NoError(t, err)
	assert.Equal(t, "Cached", machine.Name)
}

func TestAddStock_NewItem(t *testing.T) {
	svc, repo := setupMachineService(domain.StockItem{ItemName: "Soda", Quantity: 5, Price: 1.50})

	err := svc.AddStock(context.Background(), "vm-1", "Chips", 10, 2.00, "")
	require.NoError(t, err)

	machine, _ := repo.GetMachine(context.Background(), "vm-1")
	require.Len(t, machine.Stock, 2)
	assert.Equal(t, 10, machine.Stock[1].Quantity)
}

func TestAddStock_ExistingItemAddsQuantity(t *testing.T) {
	svc, repo := setupMachineService(domain.StockItem{ItemName: "Soda", Quantity: 5, Price: 1.50})

	err := svc.AddStock(context.Background(), "vm-1", "Soda", 3, 1.75, "")
	require.NoError(t, err)

	machine, _ := repo.GetMachine(context.Background(), "vm-1")
	require.Len(t, machine.Stock, 1)
	assert.Equal(t, 8, machine.Stock[0].Quantity)
	assert.Equal(t, 1.75, machine.Stock[0].Price)
}

func TestAddStock_Validation(t *testing.T) {
	svc, _ := setupMachineService()

	assert.ErrorIs(t, svc.AddStock(context.Background(), "vm-1", "", 1, 1.0, ""), ErrValidation)
	assert.ErrorIs(t, svc.AddStock(context.Background(), "vm-1", "Soda", 0, 1.0, ""), ErrValidation)
	assert.ErrorIs(t, svc.AddStock(context.Background(), "vm-1", "Soda", 1, -1.0, ""), ErrValidation)
}

func TestAddStock_MachineNotFound(t *testing.T) {
	svc, _ := setupMachineService()

	err := svc.AddStock(context.Background(), "missing", "Soda", 1, 1.0, "")
	assert.ErrorIs(t, err, repository.ErrMachineNotFound)
}

func TestUpdateStock_FullReplace(t *testing.T) {
	svc, _ := setupMachineService(
		domain.StockItem{ItemName: "Soda", Quantity: 5, Price: 1.50},
		domain.StockItem{ItemName: "Water", Quantity: 7, Price: 1.00},
	)

	machine, err := svc.UpdateStock(context.Background(), "vm-1", []domain.StockItem{
		{ItemName: "Soda", Quantity: 9, Price: 1.60},
		{ItemName: "Candy", Quantity: 4, Price: 0.75},
	})
	require.NoError(t, err)

	require.Len(t, machine.Stock, 2)
	byName := make(map[string]domain.StockItem)
	for _, item := range machine.Stock {
		byName[item.ItemName] = item
	}
	assert.Equal(t, 9, byName["Soda"].Quantity)
	assert.Contains(t, byName, "Candy")
	assert.NotContains(t, byName, "Water", "absent entries are deleted")
}

func TestUpdateStock_ZeroQuantityPruned(t *testing.T) {
	svc, _ := setupMachineService(domain.StockItem{ItemName: "Soda", Quantity: 5, Price: 1.50})

	machine, err := svc.UpdateStock(context.Background(), "vm-1", []domain.StockItem{
		{ItemName: "Soda", Quantity: 0, Price: 1.50},
	})
	require.NoError(t, err)
	assert.Empty(t, machine.Stock)
}

func TestDecrementStock_Success(t *testing.T) {
	svc, repo := setupMachineService(domain.StockItem{ItemName: "Soda", Quantity: 5, Price: 1.50})

	err := svc.DecrementStock(context.Background(), "vm-1", []domain.OrderItem{
		{ItemName: "Soda", Quantity: 2},
	})
	require.NoError(t, err)

	machine, _ := repo.GetMachine(context.Background(), "vm-1")
	assert.Equal(t, 3, machine.Stock[0].Quantity)
}

func TestDecrementStock_InsufficientLeavesLedgerUntouched(t *testing.T) {
	svc, repo := setupMachineService(
		domain.StockItem{ItemName: "Soda", Quantity: 5, Price: 1.50},
		domain.StockItem{ItemName: "Chips", Quantity: 1, Price: 2.00},
	)

	err := svc.DecrementStock(context.Background(), "vm-1", []domain.OrderItem{
		{ItemName: "Soda", Quantity: 2},
		{ItemName: "Chips", Quantity: 2},
	})

	var insufficientErr *InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, "Chips", insufficientErr.ItemName)

	machine, _ := repo.GetMachine(context.Background(), "vm-1")
	assert.Equal(t, 5, machine.Stock[0].Quantity, "no partial decrement")
	assert.Equal(t, 1, machine.Stock[1].Quantity)
}

func TestDecrementStock_ConcurrentCheckoutsCannotOversell(t *testing.T) {
	svc, repo := setupMachineService(domain.StockItem{ItemName: "Soda", Quantity: 5, Price: 1.50})

	// Two checkouts race for 3 of the 5 units; the version check forces the
	// loser to re-read and see only 2 left.
	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.DecrementStock(context.Background(), "vm-1", []domain.OrderItem{
				{ItemName: "Soda", Quantity: 3},
			})
		}()
	}
	wg.Wait()
	close(results)

	var successes, failures int
	for err := range results {
		if err == nil {
			successes++
		} else {
			var insufficientErr *InsufficientStockError
			require.ErrorAs(t, err, &insufficientErr)
			failures++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)

	machine, _ := repo.GetMachine(context.Background(), "vm-1")
	assert.Equal(t, 2, machine.Stock[0].Quantity, "stock never goes negative")
}

func TestMutateStock_RetriesOnVersionConflict(t *testing.T) {
	svc, repo := setupMachineService(domain.StockItem{ItemName: "Soda", Quantity: 100, Price: 1.50})

	// Many concurrent upserts: all must land thanks to the retry loop.
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Ignore ErrTooManyConflicts here; with 3 writers and 3
			// retries at least one full sequence settles.
			_ = svc.AddStock(context.Background(), "vm-1", "Soda", 1, 1.50, "")
		}()
	}
	wg.Wait()

	machine, err := repo.GetMachine(context.Background(), "vm-1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, machine.Stock[0].Quantity, 101)
}
