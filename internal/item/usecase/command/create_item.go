package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ayethu/autoparts-backend/internal/item/domain"
)

// CreateItemCommand represents the command to create an item
type CreateItemCommand struct {
	Name          string
	Category      string
	ProductCode   string
	SalesPrice    decimal.Decimal
	PurchasePrice decimal.Decimal
	Quantity      int
}

// CreateItemHandler handles create item command
type CreateItemHandler struct {
	repo domain.ItemRepository
}

// NewCreateItemHandler creates a new create item handler
func NewCreateItemHandler(repo domain.ItemRepository) *CreateItemHandler {
	return &CreateItemHandler{repo: repo}
}

// Handle executes the create item command
func (h *CreateItemHandler) Handle(ctx context.Context, cmd CreateItemCommand) (*domain.Item, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.ProductCode == "" {
		return nil, fmt.Errorf("product_code is required")
	}
	if !domain.ValidCategory(cmd.Category) {
		return nil, fmt.Errorf("invalid category: %s", cmd.Category)
	}
	if cmd.SalesPrice.IsNegative() {
		return nil, fmt.Errorf("sales_price cannot be negative")
	}
	if cmd.PurchasePrice.IsNegative() {
		return nil, fmt.Errorf("purchase_price cannot be negative")
	}
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	if _, err := h.repo.FindByProductCode(ctx, cmd.ProductCode); err == nil {
		return nil, domain.ErrDuplicateProductCode
	} else if !errors.Is(err, domain.ErrItemNotFound) {
		return nil, fmt.Errorf("failed to check product code: %w", err)
	}

	item := &domain.Item{
		Name:          cmd.Name,
		Category:      cmd.Category,
		ProductCode:   cmd.ProductCode,
		SalesPrice:    cmd.SalesPrice,
		PurchasePrice: cmd.PurchasePrice,
		Quantity:      cmd.Quantity,
	}

	if err := h.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}
