package query

import (
	"context"
	"fmt"
	"time"

	"github.com/ayethu/autoparts-backend/internal/invoice/domain"
)

// InvoicesByDateQuery asks for every invoice created on one UTC calendar day
type InvoicesByDateQuery struct {
	Date string // YYYY-MM-DD
}

// InvoicesByDateHandler handles invoices by date query
type InvoicesByDateHandler struct {
	repo domain.InvoiceRepository
}

// NewInvoicesByDateHandler creates a new invoices by date handler
func NewInvoicesByDateHandler(repo domain.InvoiceRepository) *InvoicesByDateHandler {
	return &InvoicesByDateHandler{repo: repo}
}

// Handle executes the invoices by date query
func (h *InvoicesByDateHandler) Handle(ctx context.Context, q InvoicesByDateQuery) ([]domain.Invoice, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", q.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", q.Date)
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	return h.repo.FindByDateRange(ctx, dayStart, dayEnd)
}
