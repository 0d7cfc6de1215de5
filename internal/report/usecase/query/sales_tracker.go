package query

import (
	"context"
	"sort"

	invoicedomain "github.com/ayethu/autoparts-backend/internal/invoice/domain"
	itemdomain "github.com/ayethu/autoparts-backend/internal/item/domain"
	"github.com/ayethu/autoparts-backend/internal/report/domain"
)

// SalesTrackerQuery asks for the flat per-line feed of everything sold
type SalesTrackerQuery struct{}

// SalesTrackerHandler handles sales tracker query
type SalesTrackerHandler struct {
	invoices invoicedomain.InvoiceRepository
	items    itemdomain.ItemRepository
}

// NewSalesTrackerHandler creates a new sales tracker handler
func NewSalesTrackerHandler(invoices invoicedomain.InvoiceRepository, items itemdomain.ItemRepository) *SalesTrackerHandler {
	return &SalesTrackerHandler{invoices: invoices, items: items}
}

// Handle executes the sales tracker query, newest entries first. Deleted
// items keep their rows with name "(deleted item)" and category "Unknown".
func (h *SalesTrackerHandler) Handle(ctx context.Context, _ SalesTrackerQuery) ([]domain.SalesEntry, error) {
	invoices, err := h.invoices.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items, err := h.items.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[uint]*itemdomain.Item, len(items))
	for i := range items {
		index[items[i].ID] = &items[i]
	}

	entries := make([]domain.SalesEntry, 0, len(invoices))
	for i := range invoices {
		for _, line := range invoices[i].Lines {
			entry := domain.SalesEntry{
				Date:      invoices[i].CreatedAt,
				InvoiceID: invoices[i].ID,
				Quantity:  line.Quantity,
				Revenue:   line.Total(),
			}
			if item, ok := index[line.ItemID]; ok {
				entry.ProductName = item.Name
				entry.Category = item.Category
			} else {
				entry.ProductName = "(deleted item)"
				entry.Category = domain.CategoryUnknown
			}
			entries = append(entries, entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.After(entries[j].Date) })
	return entries, nil
}
