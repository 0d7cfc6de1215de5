package query

import (
	"context"
	"fmt"

	"github.com/ayethu/autoparts-backend/internal/item/domain"
)

// ListItemsQuery represents the query to list items, optionally by category
type ListItemsQuery struct {
	Category string
}

// ListItemsHandler handles list items query
type ListItemsHandler struct {
	repo domain.ItemRepository
}

// NewListItemsHandler creates a new list items handler
func NewListItemsHandler(repo domain.ItemRepository) *ListItemsHandler {
	return &ListItemsHandler{repo: repo}
}

// Handle executes the list items query
func (h *ListItemsHandler) Handle(ctx context.Context, q ListItemsQuery) ([]domain.Item, error) {
	if q.Category != "" {
		if !domain.ValidCategory(q.Category) {
			return nil, fmt.Errorf("invalid category: %s", q.Category)
		}
		return h.repo.FindByCategory(ctx, q.Category)
	}
	return h.repo.FindAll(ctx)
}
