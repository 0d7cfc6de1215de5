package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryUnknown labels lines whose item no longer exists
const CategoryUnknown = "Unknown"

// DailySummary groups one UTC calendar day of sold lines
type DailySummary struct {
	Date          string          `json:"date"` // YYYY-MM-DD
	Categories    map[string]int  `json:"categories"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// SummaryStats are derived over a (possibly month-filtered) summary set
type SummaryStats struct {
	TotalItemsSold    int             `json:"total_items_sold"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	ActiveDays        int             `json:"active_days"`
	ItemsPerActiveDay float64         `json:"items_per_active_day"`
}

// SalesReport is the daily summary sequence plus its derived stats
type SalesReport struct {
	Days  []DailySummary `json:"days"`
	Stats SummaryStats   `json:"stats"`
}

// SalesEntry is one exploded invoice line in the flat tracker feed
type SalesEntry struct {
	Date        time.Time       `json:"date"`
	InvoiceID   uint            `json:"invoice_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// Dashboard is the headline figures plus their period-over-period trends
type Dashboard struct {
	TotalInventory int             `json:"total_inventory"`
	TodaysSales    decimal.Decimal `json:"todays_sales"`
	LowStockItems  int             `json:"low_stock_items"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`

	SalesTrend     float64 `json:"sales_trend"`     // today vs yesterday revenue
	RevenueTrend   float64 `json:"revenue_trend"`   // this month vs last month
	InventoryTrend float64 `json:"inventory_trend"` // current vs simulated baseline
}
