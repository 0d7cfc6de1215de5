package command

import (
	"context"
	"fmt"

	"github.com/ayethu/autoparts-backend/internal/customer/domain"
)

// UpdateCustomerCommand represents a partial customer update
type UpdateCustomerCommand struct {
	CustomerID uint
	Name       *string
	Phone      *string
	Email      *string
	Address    *string
}

// UpdateCustomerHandler handles update customer command
type UpdateCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewUpdateCustomerHandler creates a new update customer handler
func NewUpdateCustomerHandler(repo domain.CustomerRepository) *UpdateCustomerHandler {
	return &UpdateCustomerHandler{repo: repo}
}

// Handle executes the update customer command
func (h *UpdateCustomerHandler) Handle(ctx context.Context, cmd UpdateCustomerCommand) (*domain.Customer, error) {
	if cmd.CustomerID == 0 {
		return nil, fmt.Errorf("customer_id is required")
	}

	customer, err := h.repo.FindByID(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		customer.Name = *cmd.Name
	}
	if cmd.Phone != nil {
		customer.Phone = *cmd.Phone
	}
	if cmd.Email != nil {
		customer.Email = *cmd.Email
	}
	if cmd.Address != nil {
		customer.Address = *cmd.Address
	}

	if err := h.repo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}
