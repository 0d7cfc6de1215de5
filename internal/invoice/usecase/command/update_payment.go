package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ayethu/autoparts-backend/internal/invoice/domain"
)

// UpdatePaymentCommand revises how much of an invoice has been paid
type UpdatePaymentCommand struct {
	InvoiceID  uint
	AmountPaid decimal.Decimal
}

// UpdatePaymentHandler handles update payment command
type UpdatePaymentHandler struct {
	repo domain.InvoiceRepository
}

// NewUpdatePaymentHandler creates a new update payment handler
func NewUpdatePaymentHandler(repo domain.InvoiceRepository) *UpdatePaymentHandler {
	return &UpdatePaymentHandler{repo: repo}
}

// Handle executes the update payment command. The repository serializes
// the read-modify-write per invoice and enforces the [0, total] range;
// lines and stock are never touched.
func (h *UpdatePaymentHandler) Handle(ctx context.Context, cmd UpdatePaymentCommand) (*domain.Invoice, error) {
	if cmd.InvoiceID == 0 {
		return nil, fmt.Errorf("invoice_id is required")
	}
	return h.repo.UpdatePayment(ctx, cmd.InvoiceID, cmd.AmountPaid)
}
