package command

import (
	"context"
	"fmt"

	"github.com/ayethu/autoparts-backend/internal/customer/domain"
)

// DeleteCustomerCommand represents the command to delete a customer
type DeleteCustomerCommand struct {
	CustomerID uint
}

// DeleteCustomerHandler handles delete customer command
type DeleteCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewDeleteCustomerHandler creates a new delete customer handler
func NewDeleteCustomerHandler(repo domain.CustomerRepository) *DeleteCustomerHandler {
	return &DeleteCustomerHandler{repo: repo}
}

// Handle executes the delete customer command. Invoices that reference the
// customer stay valid; balance and report queries fall back to the name
// snapshot stored on the invoice.
func (h *DeleteCustomerHandler) Handle(ctx context.Context, cmd DeleteCustomerCommand) error {
	if cmd.CustomerID == 0 {
		return fmt.Errorf("customer_id is required")
	}
	return h.repo.Delete(ctx, cmd.CustomerID)
}
