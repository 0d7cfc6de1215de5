package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ayethu/autoparts-backend/internal/item/domain"
)

// UpdateItemCommand represents a partial item update. Nil fields stay
// untouched. Quantity updates are explicit restock edits; sales at the
// till only ever go through the invoice engine's atomic decrement.
type UpdateItemCommand struct {
	ItemID        uint
	Name          *string
	Category      *string
	ProductCode   *string
	SalesPrice    *decimal.Decimal
	PurchasePrice *decimal.Decimal
	Quantity      *int
}

// UpdateItemHandler handles update item command
type UpdateItemHandler struct {
	repo domain.ItemRepository
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(repo domain.ItemRepository) *UpdateItemHandler {
	return &UpdateItemHandler{repo: repo}
}

// Handle executes the update item command
func (h *UpdateItemHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*domain.Item, error) {
	if cmd.ItemID == 0 {
		return nil, fmt.Errorf("item_id is required")
	}

	item, err := h.repo.FindByID(ctx, cmd.ItemID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		item.Name = *cmd.Name
	}
	if cmd.Category != nil {
		if !domain.ValidCategory(*cmd.Category) {
			return nil, fmt.Errorf("invalid category: %s", *cmd.Category)
		}
		item.Category = *cmd.Category
	}
	if cmd.ProductCode != nil && *cmd.ProductCode != item.ProductCode {
		if *cmd.ProductCode == "" {
			return nil, fmt.Errorf("product_code cannot be empty")
		}
		if _, err := h.repo.FindByProductCode(ctx, *cmd.ProductCode); err == nil {
			return nil, domain.ErrDuplicateProductCode
		} else if !errors.Is(err, domain.ErrItemNotFound) {
			return nil, fmt.Errorf("failed to check product code: %w", err)
		}
		item.ProductCode = *cmd.ProductCode
	}
	if cmd.SalesPrice != nil {
		if cmd.SalesPrice.IsNegative() {
			return nil, fmt.Errorf("sales_price cannot be negative")
		}
		item.SalesPrice = *cmd.SalesPrice
	}
	if cmd.PurchasePrice != nil {
		if cmd.PurchasePrice.IsNegative() {
			return nil, fmt.Errorf("purchase_price cannot be negative")
		}
		item.PurchasePrice = *cmd.PurchasePrice
	}
	if cmd.Quantity != nil {
		if *cmd.Quantity < 0 {
			return nil, fmt.Errorf("quantity cannot be negative")
		}
		item.Quantity = *cmd.Quantity
	}

	if err := h.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return item, nil
}
