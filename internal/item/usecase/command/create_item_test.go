package command

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ayethu/autoparts-backend/internal/item/domain"
	"github.com/ayethu/autoparts-backend/internal/item/repository"
)

func validCreateCommand() CreateItemCommand {
	return CreateItemCommand{
		Name:          "brake pad",
		Category:      domain.CategorySpareParts,
		ProductCode:   "BP-001",
		SalesPrice:    decimal.NewFromInt(250),
		PurchasePrice: decimal.NewFromInt(180),
		Quantity:      20,
	}
}

func TestCreateItem(t *testing.T) {
	repo := repository.NewMemoryItemRepository()
	handler := NewCreateItemHandler(repo)

	item, err := handler.Handle(context.Background(), validCreateCommand())
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if item.ID == 0 {
		t.Error("item was not assigned an ID")
	}

	stored, err := repo.FindByProductCode(context.Background(), "BP-001")
	if err != nil {
		t.Fatalf("find by code: %v", err)
	}
	if stored.Quantity != 20 || !stored.SalesPrice.Equal(decimal.NewFromInt(250)) {
		t.Errorf("stored = qty %d price %s", stored.Quantity, stored.SalesPrice)
	}
}

func TestCreateItem_Validation(t *testing.T) {
	repo := repository.NewMemoryItemRepository()
	handler := NewCreateItemHandler(repo)

	cases := []struct {
		name   string
		mutate func(*CreateItemCommand)
	}{
		{"empty name", func(c *CreateItemCommand) { c.Name = "" }},
		{"empty product code", func(c *CreateItemCommand) { c.ProductCode = "" }},
		{"bad category", func(c *CreateItemCommand) { c.Category = "Snacks" }},
		{"negative sales price", func(c *CreateItemCommand) { c.SalesPrice = decimal.NewFromInt(-1) }},
		{"negative purchase price", func(c *CreateItemCommand) { c.PurchasePrice = decimal.NewFromInt(-1) }},
		{"negative quantity", func(c *CreateItemCommand) { c.Quantity = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := validCreateCommand()
			tc.mutate(&cmd)
			if _, err := handler.Handle(context.Background(), cmd); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	count, _ := repo.Count(context.Background())
	if count != 0 {
		t.Errorf("repo count = %d after rejected commands, want 0", count)
	}
}

func TestCreateItem_DuplicateProductCode(t *testing.T) {
	repo := repository.NewMemoryItemRepository()
	handler := NewCreateItemHandler(repo)

	if _, err := handler.Handle(context.Background(), validCreateCommand()); err != nil {
		t.Fatalf("first create: %v", err)
	}

	dup := validCreateCommand()
	dup.Name = "another brake pad"
	if _, err := handler.Handle(context.Background(), dup); !errors.Is(err, domain.ErrDuplicateProductCode) {
		t.Errorf("got %v, want ErrDuplicateProductCode", err)
	}
}
