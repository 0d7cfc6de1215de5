package query

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	invoicedomain "github.com/ayethu/autoparts-backend/internal/invoice/domain"
	itemdomain "github.com/ayethu/autoparts-backend/internal/item/domain"
	"github.com/ayethu/autoparts-backend/internal/report/domain"
)

// inventoryBaselineFactor simulates last period's inventory as 88% of the
// current total. Placeholder until real daily snapshots exist; flagged to
// product, do not tune.
const inventoryBaselineFactor = 0.88

// DashboardQuery asks for the headline figures and their trends
type DashboardQuery struct{}

// DashboardHandler handles dashboard query
type DashboardHandler struct {
	invoices invoicedomain.InvoiceRepository
	items    itemdomain.ItemRepository
	now      func() time.Time
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(invoices invoicedomain.InvoiceRepository, items itemdomain.ItemRepository) *DashboardHandler {
	return &DashboardHandler{invoices: invoices, items: items, now: time.Now}
}

// Handle executes the dashboard query. All periods are UTC calendar
// periods; every trend is period-over-period revenue except the inventory
// trend, which compares against the simulated baseline.
func (h *DashboardHandler) Handle(ctx context.Context, _ DashboardQuery) (*domain.Dashboard, error) {
	now := h.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	todayRevenue, err := h.revenueBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	yesterdayRevenue, err := h.revenueBetween(ctx, yesterday, today)
	if err != nil {
		return nil, err
	}
	monthRevenue, err := h.revenueBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	prevMonthRevenue, err := h.revenueBetween(ctx, prevMonthStart, monthStart)
	if err != nil {
		return nil, err
	}

	totalInventory, err := h.items.TotalQuantity(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := h.items.FindLowStock(ctx, itemdomain.DefaultLowStockThreshold)
	if err != nil {
		return nil, err
	}

	inventory := decimal.NewFromInt(totalInventory)
	baseline := inventory.Mul(decimal.NewFromFloat(inventoryBaselineFactor)).Round(0)

	return &domain.Dashboard{
		TotalInventory: int(totalInventory),
		TodaysSales:    todayRevenue,
		LowStockItems:  len(lowStock),
		MonthlyRevenue: monthRevenue,
		SalesTrend:     domain.PercentChange(todayRevenue, yesterdayRevenue),
		RevenueTrend:   domain.PercentChange(monthRevenue, prevMonthRevenue),
		InventoryTrend: domain.PercentChange(inventory, baseline),
	}, nil
}

func (h *DashboardHandler) revenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	invoices, err := h.invoices.FindByDateRange(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	revenue := decimal.Zero
	for i := range invoices {
		revenue = revenue.Add(invoices[i].TotalAmount)
	}
	return revenue, nil
}
