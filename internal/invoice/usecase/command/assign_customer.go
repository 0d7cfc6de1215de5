package command

import (
	"context"
	"fmt"

	customerdomain "github.com/ayethu/autoparts-backend/internal/customer/domain"
	"github.com/ayethu/autoparts-backend/internal/invoice/domain"
)

// AssignCustomerCommand attaches a persisted customer to an invoice that
// was created for a walk-in buyer
type AssignCustomerCommand struct {
	InvoiceID  uint
	CustomerID uint
}

// AssignCustomerHandler handles assign customer command
type AssignCustomerHandler struct {
	invoices  domain.InvoiceRepository
	customers customerdomain.CustomerRepository
}

// NewAssignCustomerHandler creates a new assign customer handler
func NewAssignCustomerHandler(invoices domain.InvoiceRepository, customers customerdomain.CustomerRepository) *AssignCustomerHandler {
	return &AssignCustomerHandler{invoices: invoices, customers: customers}
}

// Handle executes the assign customer command
func (h *AssignCustomerHandler) Handle(ctx context.Context, cmd AssignCustomerCommand) (*domain.Invoice, error) {
	if cmd.InvoiceID == 0 {
		return nil, fmt.Errorf("invoice_id is required")
	}
	if cmd.CustomerID == 0 {
		return nil, fmt.Errorf("customer_id is required")
	}

	if _, err := h.customers.FindByID(ctx, cmd.CustomerID); err != nil {
		return nil, err
	}

	return h.invoices.AssignCustomer(ctx, cmd.InvoiceID, cmd.CustomerID)
}
