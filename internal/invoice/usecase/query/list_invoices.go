package query

import (
	"context"

	"github.com/ayethu/autoparts-backend/internal/invoice/domain"
)

// ListInvoicesQuery represents the query to list all invoices
type ListInvoicesQuery struct{}

// ListInvoicesHandler handles list invoices query
type ListInvoicesHandler struct {
	repo domain.InvoiceRepository
}

// NewListInvoicesHandler creates a new list invoices handler
func NewListInvoicesHandler(repo domain.InvoiceRepository) *ListInvoicesHandler {
	return &ListInvoicesHandler{repo: repo}
}

// Handle executes the list invoices query
func (h *ListInvoicesHandler) Handle(ctx context.Context, _ ListInvoicesQuery) ([]domain.Invoice, error) {
	return h.repo.FindAll(ctx)
}
