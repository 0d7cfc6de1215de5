package query

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func mustReportDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestDashboard_TrendsAndCounts(t *testing.T) {
	f := newReportFixture()
	brake := f.addItem(t, "brake-pad", "Spare Parts", "250")
	oil := f.addItem(t, "engine-oil", "Lubricants", "300")

	// Stock after sales: brake 100-2-4=94, oil 100-3=97; both well above
	// the low stock threshold.
	f.addSale(t, "2024-05-14", brake.ID, 4, "250") // yesterday, 1000
	f.addSale(t, "2024-05-15", brake.ID, 2, "250") // today, 500
	f.addSale(t, "2024-04-10", oil.ID, 3, "300")   // previous month, 900

	handler := NewDashboardHandler(f.invoices, f.items)
	handler.now = func() time.Time {
		return time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)
	}

	dash, err := handler.Handle(context.Background(), DashboardQuery{})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if dash.TotalInventory != 191 {
		t.Errorf("totalInventory = %d, want 191", dash.TotalInventory)
	}
	if dash.LowStockItems != 0 {
		t.Errorf("lowStockItems = %d, want 0", dash.LowStockItems)
	}
	if !dash.TodaysSales.Equal(mustReportDecimal(t, "500")) {
		t.Errorf("todaysSales = %s, want 500", dash.TodaysSales)
	}
	if !dash.MonthlyRevenue.Equal(mustReportDecimal(t, "1500")) {
		t.Errorf("monthlyRevenue = %s, want 1500", dash.MonthlyRevenue)
	}

	// 500 today against 1000 yesterday
	if dash.SalesTrend != -50 {
		t.Errorf("salesTrend = %v, want -50", dash.SalesTrend)
	}
	// 1500 this month against 900 last month, to within float noise
	if diff := dash.RevenueTrend - 66.66666666666667; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("revenueTrend = %v, want ~66.67", dash.RevenueTrend)
	}
}

func TestDashboard_QuietDayHasZeroTrends(t *testing.T) {
	f := newReportFixture()

	handler := NewDashboardHandler(f.invoices, f.items)
	handler.now = func() time.Time {
		return time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)
	}

	dash, err := handler.Handle(context.Background(), DashboardQuery{})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if dash.SalesTrend != 0 || dash.RevenueTrend != 0 || dash.InventoryTrend != 0 {
		t.Errorf("trends = %v/%v/%v on empty data, want all 0",
			dash.SalesTrend, dash.RevenueTrend, dash.InventoryTrend)
	}
}
