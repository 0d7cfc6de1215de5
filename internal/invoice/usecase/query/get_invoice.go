package query

import (
	"context"
	"fmt"

	"github.com/ayethu/autoparts-backend/internal/invoice/domain"
)

// GetInvoiceQuery represents the query to get an invoice by ID
type GetInvoiceQuery struct {
	ID uint
}

// GetInvoiceHandler handles get invoice query
type GetInvoiceHandler struct {
	repo domain.InvoiceRepository
}

// NewGetInvoiceHandler creates a new get invoice handler
func NewGetInvoiceHandler(repo domain.InvoiceRepository) *GetInvoiceHandler {
	return &GetInvoiceHandler{repo: repo}
}

// Handle executes the get invoice query
func (h *GetInvoiceHandler) Handle(ctx context.Context, q GetInvoiceQuery) (*domain.Invoice, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}
	return h.repo.FindByID(ctx, q.ID)
}
