package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayethu/autoparts-backend/internal/invoice/domain"
)

// StockDecrementer is the slice of the stock store the memory driver
// needs: an all-or-nothing batch decrement.
type StockDecrementer interface {
	DecrementBatch(ctx context.Context, quantities map[uint]int) error
}

// MemoryInvoiceRepository is the in-memory driver's invoice store. Commits
// delegate the stock side to the item store's batch decrement, which keeps
// the all-or-nothing rule without a database transaction.
type MemoryInvoiceRepository struct {
	mu       sync.Mutex
	invoices map[uint]*domain.Invoice
	stock    StockDecrementer
	nextID   uint
}

func NewMemoryInvoiceRepository(stock StockDecrementer) *MemoryInvoiceRepository {
	return &MemoryInvoiceRepository{
		invoices: make(map[uint]*domain.Invoice),
		stock:    stock,
		nextID:   1,
	}
}

func (r *MemoryInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	quantities := make(map[uint]int, len(invoice.Lines))
	for i := range invoice.Lines {
		quantities[invoice.Lines[i].ItemID] += invoice.Lines[i].Quantity
	}
	if err := r.stock.DecrementBatch(ctx, quantities); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	invoice.ID = r.nextID
	r.nextID++
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = time.Now().UTC()
	}
	invoice.UpdatedAt = invoice.CreatedAt
	for i := range invoice.Lines {
		invoice.Lines[i].ID = uint(i + 1)
		invoice.Lines[i].InvoiceID = invoice.ID
	}

	copied := cloneInvoice(invoice)
	r.invoices[invoice.ID] = copied
	return nil
}

func (r *MemoryInvoiceRepository) FindByID(_ context.Context, id uint) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invoice, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	return cloneInvoice(invoice), nil
}

func (r *MemoryInvoiceRepository) FindByCustomerID(_ context.Context, customerID uint) ([]domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(inv *domain.Invoice) bool {
		return inv.CustomerID != nil && *inv.CustomerID == customerID
	}), nil
}

func (r *MemoryInvoiceRepository) FindByDateRange(_ context.Context, from, to time.Time) ([]domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(inv *domain.Invoice) bool {
		if !from.IsZero() && inv.CreatedAt.Before(from) {
			return false
		}
		if !to.IsZero() && !inv.CreatedAt.Before(to) {
			return false
		}
		return true
	}), nil
}

func (r *MemoryInvoiceRepository) FindAll(ctx context.Context) ([]domain.Invoice, error) {
	return r.FindByDateRange(ctx, time.Time{}, time.Time{})
}

func (r *MemoryInvoiceRepository) UpdatePayment(_ context.Context, id uint, amountPaid decimal.Decimal) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invoice, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	if amountPaid.IsNegative() || amountPaid.GreaterThan(invoice.TotalAmount) {
		return nil, domain.ErrPaymentOutOfRange
	}

	invoice.SettlePayment(amountPaid)
	invoice.UpdatedAt = time.Now().UTC()
	return cloneInvoice(invoice), nil
}

func (r *MemoryInvoiceRepository) AssignCustomer(_ context.Context, id uint, customerID uint) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invoice, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	invoice.CustomerID = &customerID
	invoice.UpdatedAt = time.Now().UTC()
	return cloneInvoice(invoice), nil
}

func (r *MemoryInvoiceRepository) collect(keep func(*domain.Invoice) bool) []domain.Invoice {
	invoices := make([]domain.Invoice, 0, len(r.invoices))
	for _, invoice := range r.invoices {
		if keep(invoice) {
			invoices = append(invoices, *cloneInvoice(invoice))
		}
	}
	sort.Slice(invoices, func(a, b int) bool {
		if invoices[a].CreatedAt.Equal(invoices[b].CreatedAt) {
			return invoices[a].ID < invoices[b].ID
		}
		return invoices[a].CreatedAt.Before(invoices[b].CreatedAt)
	})
	return invoices
}

func cloneInvoice(invoice *domain.Invoice) *domain.Invoice {
	copied := *invoice
	copied.Lines = make([]domain.InvoiceLine, len(invoice.Lines))
	copy(copied.Lines, invoice.Lines)
	if invoice.CustomerID != nil {
		id := *invoice.CustomerID
		copied.CustomerID = &id
	}
	return &copied
}
