package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ayethu/autoparts-backend/internal/item/domain"
)

// MemoryItemRepository is an in-memory item store. It backs the memory
// storage driver and the unit tests; a single mutex guards the map so the
// stock invariants hold under concurrent use.
type MemoryItemRepository struct {
	mu     sync.Mutex
	items  map[uint]*domain.Item
	nextID uint
}

func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{
		items:  make(map[uint]*domain.Item),
		nextID: 1,
	}
}

func (r *MemoryItemRepository) Create(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.ProductCode == item.ProductCode {
			return domain.ErrDuplicateProductCode
		}
	}

	item.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *MemoryItemRepository) FindByID(_ context.Context, id uint) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *MemoryItemRepository) FindByProductCode(_ context.Context, code string) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.ProductCode == code {
			copied := *item
			return &copied, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (r *MemoryItemRepository) FindAll(_ context.Context) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(*domain.Item) bool { return true }), nil
}

func (r *MemoryItemRepository) FindByCategory(_ context.Context, category string) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(i *domain.Item) bool { return i.Category == category }), nil
}

func (r *MemoryItemRepository) FindLowStock(_ context.Context, threshold int) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.collect(func(i *domain.Item) bool { return i.Quantity < threshold })
	sort.Slice(items, func(a, b int) bool { return items[a].Quantity < items[b].Quantity })
	return items, nil
}

func (r *MemoryItemRepository) Update(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrItemNotFound
	}
	item.UpdatedAt = time.Now().UTC()
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *MemoryItemRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryItemRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *MemoryItemRepository) TotalQuantity(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total int64
	for _, item := range r.items {
		total += int64(item.Quantity)
	}
	return total, nil
}

func (r *MemoryItemRepository) DecrementStock(_ context.Context, id uint, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decrementLocked(map[uint]int{id: quantity})
}

// DecrementBatch atomically decrements several items at once: either every
// line has enough stock and all are decremented, or nothing changes. The
// invoice memory repository relies on this for its all-or-nothing commit.
func (r *MemoryItemRepository) DecrementBatch(_ context.Context, quantities map[uint]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decrementLocked(quantities)
}

func (r *MemoryItemRepository) decrementLocked(quantities map[uint]int) error {
	for id, qty := range quantities {
		item, ok := r.items[id]
		if !ok {
			return domain.ErrItemNotFound
		}
		if item.Quantity < qty {
			return domain.ErrInsufficientStock
		}
	}
	now := time.Now().UTC()
	for id, qty := range quantities {
		r.items[id].Quantity -= qty
		r.items[id].UpdatedAt = now
	}
	return nil
}

func (r *MemoryItemRepository) collect(keep func(*domain.Item) bool) []domain.Item {
	items := make([]domain.Item, 0, len(r.items))
	for _, item := range r.items {
		if keep(item) {
			items = append(items, *item)
		}
	}
	sort.Slice(items, func(a, b int) bool { return items[a].ID < items[b].ID })
	return items
}
