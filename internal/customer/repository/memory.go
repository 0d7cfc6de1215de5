package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ayethu/autoparts-backend/internal/customer/domain"
)

// MemoryCustomerRepository is the in-memory driver's customer store.
type MemoryCustomerRepository struct {
	mu        sync.Mutex
	customers map[uint]*domain.Customer
	nextID    uint
}

func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{
		customers: make(map[uint]*domain.Customer),
		nextID:    1,
	}
}

func (r *MemoryCustomerRepository) Create(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	copied := *customer
	r.customers[customer.ID] = &copied
	return nil
}

func (r *MemoryCustomerRepository) FindByID(_ context.Context, id uint) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	copied := *customer
	return &copied, nil
}

func (r *MemoryCustomerRepository) FindAll(_ context.Context) ([]domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customers := make([]domain.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		customers = append(customers, *customer)
	}
	sort.Slice(customers, func(a, b int) bool { return customers[a].ID < customers[b].ID })
	return customers, nil
}

func (r *MemoryCustomerRepository) Update(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[customer.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	customer.UpdatedAt = time.Now().UTC()
	copied := *customer
	r.customers[customer.ID] = &copied
	return nil
}

func (r *MemoryCustomerRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *MemoryCustomerRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.customers)), nil
}
