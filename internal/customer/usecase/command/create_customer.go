package command

import (
	"context"
	"fmt"

	"github.com/ayethu/autoparts-backend/internal/customer/domain"
)

// CreateCustomerCommand represents the command to create a customer
type CreateCustomerCommand struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// CreateCustomerHandler handles create customer command
type CreateCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewCreateCustomerHandler creates a new create customer handler
func NewCreateCustomerHandler(repo domain.CustomerRepository) *CreateCustomerHandler {
	return &CreateCustomerHandler{repo: repo}
}

// Handle executes the create customer command
func (h *CreateCustomerHandler) Handle(ctx context.Context, cmd CreateCustomerCommand) (*domain.Customer, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	customer := &domain.Customer{
		Name:    cmd.Name,
		Phone:   cmd.Phone,
		Email:   cmd.Email,
		Address: cmd.Address,
	}

	if err := h.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}
