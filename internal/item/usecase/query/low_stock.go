package query

import (
	"context"

	"github.com/ayethu/autoparts-backend/internal/item/domain"
)

// LowStockQuery represents the query for items running low on stock
type LowStockQuery struct {
	Threshold int
}

// LowStockHandler handles low stock query
type LowStockHandler struct {
	repo domain.ItemRepository
}

// NewLowStockHandler creates a new low stock handler
func NewLowStockHandler(repo domain.ItemRepository) *LowStockHandler {
	return &LowStockHandler{repo: repo}
}

// Handle executes the low stock query
func (h *LowStockHandler) Handle(ctx context.Context, q LowStockQuery) ([]domain.Item, error) {
	threshold := q.Threshold
	if threshold <= 0 {
		threshold = domain.DefaultLowStockThreshold
	}
	return h.repo.FindLowStock(ctx, threshold)
}
