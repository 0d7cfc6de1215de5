package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ayethu/autoparts-backend/internal/item/domain"
)

func seedItem(t *testing.T, repo *MemoryItemRepository, code string, quantity int) *domain.Item {
	t.Helper()
	item := &domain.Item{
		Name:        "item-" + code,
		Category:    domain.CategorySpareParts,
		ProductCode: code,
		SalesPrice:  decimal.NewFromInt(100),
		Quantity:    quantity,
	}
	if err := repo.Create(context.Background(), item); err != nil {
		t.Fatalf("create: %v", err)
	}
	return item
}

func TestMemoryItemRepository_DuplicateProductCode(t *testing.T) {
	repo := NewMemoryItemRepository()
	seedItem(t, repo, "BP-001", 5)

	err := repo.Create(context.Background(), &domain.Item{
		Name:        "other",
		Category:    domain.CategorySpareParts,
		ProductCode: "BP-001",
		SalesPrice:  decimal.NewFromInt(50),
	})
	if !errors.Is(err, domain.ErrDuplicateProductCode) {
		t.Errorf("got %v, want ErrDuplicateProductCode", err)
	}
}

func TestMemoryItemRepository_DecrementStockNeverOversells(t *testing.T) {
	repo := NewMemoryItemRepository()
	item := seedItem(t, repo, "BP-001", 10)

	const workers = 25
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.DecrementStock(context.Background(), item.ID, 1)
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, domain.ErrInsufficientStock) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 10 {
		t.Errorf("succeeded = %d, want exactly 10", succeeded)
	}

	reloaded, _ := repo.FindByID(context.Background(), item.ID)
	if reloaded.Quantity != 0 {
		t.Errorf("quantity = %d, want 0", reloaded.Quantity)
	}
}

func TestMemoryItemRepository_DecrementBatchAllOrNothing(t *testing.T) {
	repo := NewMemoryItemRepository()
	plenty := seedItem(t, repo, "BP-001", 10)
	scarce := seedItem(t, repo, "OIL-001", 1)

	err := repo.DecrementBatch(context.Background(), map[uint]int{
		plenty.ID: 2,
		scarce.ID: 5,
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}

	// A failed batch must leave every item untouched, including the one
	// that had enough stock.
	first, _ := repo.FindByID(context.Background(), plenty.ID)
	second, _ := repo.FindByID(context.Background(), scarce.ID)
	if first.Quantity != 10 || second.Quantity != 1 {
		t.Errorf("quantities = %d/%d after failed batch, want 10/1",
			first.Quantity, second.Quantity)
	}

	if err := repo.DecrementBatch(context.Background(), map[uint]int{
		plenty.ID: 2,
		scarce.ID: 1,
	}); err != nil {
		t.Fatalf("valid batch: %v", err)
	}
	first, _ = repo.FindByID(context.Background(), plenty.ID)
	second, _ = repo.FindByID(context.Background(), scarce.ID)
	if first.Quantity != 8 || second.Quantity != 0 {
		t.Errorf("quantities = %d/%d after batch, want 8/0", first.Quantity, second.Quantity)
	}
}

func TestMemoryItemRepository_FindLowStock(t *testing.T) {
	repo := NewMemoryItemRepository()
	seedItem(t, repo, "BP-001", 3)
	seedItem(t, repo, "OIL-001", 1)
	seedItem(t, repo, "ACC-001", 50)

	low, err := repo.FindLowStock(context.Background(), domain.DefaultLowStockThreshold)
	if err != nil {
		t.Fatalf("find low stock: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("len = %d, want 2", len(low))
	}
	// Scarcest first
	if low[0].ProductCode != "OIL-001" || low[1].ProductCode != "BP-001" {
		t.Errorf("order = %s, %s", low[0].ProductCode, low[1].ProductCode)
	}
}
