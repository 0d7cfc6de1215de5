package query

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	invoicedomain "github.com/ayethu/autoparts-backend/internal/invoice/domain"
	itemdomain "github.com/ayethu/autoparts-backend/internal/item/domain"
	"github.com/ayethu/autoparts-backend/internal/report/domain"
)

// DailySummaryQuery asks for per-day sales grouped by category, optionally
// restricted to one month
type DailySummaryQuery struct {
	Month string // YYYY-MM, empty for all time
}

// DailySummaryHandler handles daily summary query
type DailySummaryHandler struct {
	invoices invoicedomain.InvoiceRepository
	items    itemdomain.ItemRepository
}

// NewDailySummaryHandler creates a new daily summary handler
func NewDailySummaryHandler(invoices invoicedomain.InvoiceRepository, items itemdomain.ItemRepository) *DailySummaryHandler {
	return &DailySummaryHandler{invoices: invoices, items: items}
}

// Handle executes the daily summary query. Lines are exploded out of their
// invoices, joined with the item's current category and grouped by UTC
// calendar day in ascending order. Lines whose item was deleted land in
// the "Unknown" category rather than failing the report.
func (h *DailySummaryHandler) Handle(ctx context.Context, q DailySummaryQuery) (*domain.SalesReport, error) {
	var from, to time.Time
	if q.Month != "" {
		start, err := time.ParseInLocation("2006-01", q.Month, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid month %q, expected YYYY-MM", q.Month)
		}
		from, to = start, start.AddDate(0, 1, 0)
	}

	invoices, err := h.invoices.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	categories, err := h.categoryIndex(ctx)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*domain.DailySummary)
	for i := range invoices {
		day := invoices[i].CreatedAt.UTC().Format("2006-01-02")
		summary, ok := byDay[day]
		if !ok {
			summary = &domain.DailySummary{
				Date:         day,
				Categories:   make(map[string]int),
				TotalRevenue: decimal.Zero,
			}
			byDay[day] = summary
		}
		for _, line := range invoices[i].Lines {
			category, ok := categories[line.ItemID]
			if !ok {
				category = domain.CategoryUnknown
			}
			summary.Categories[category] += line.Quantity
			summary.TotalQuantity += line.Quantity
			summary.TotalRevenue = summary.TotalRevenue.Add(line.Total())
		}
	}

	days := make([]domain.DailySummary, 0, len(byDay))
	for _, summary := range byDay {
		days = append(days, *summary)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return &domain.SalesReport{Days: days, Stats: deriveStats(days)}, nil
}

func (h *DailySummaryHandler) categoryIndex(ctx context.Context) (map[uint]string, error) {
	items, err := h.items.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[uint]string, len(items))
	for i := range items {
		index[items[i].ID] = items[i].Category
	}
	return index, nil
}

func deriveStats(days []domain.DailySummary) domain.SummaryStats {
	stats := domain.SummaryStats{TotalRevenue: decimal.Zero}
	for i := range days {
		stats.TotalItemsSold += days[i].TotalQuantity
		stats.TotalRevenue = stats.TotalRevenue.Add(days[i].TotalRevenue)
	}
	stats.ActiveDays = len(days)
	if stats.ActiveDays > 0 {
		stats.ItemsPerActiveDay = float64(stats.TotalItemsSold) / float64(stats.ActiveDays)
	}
	return stats
}
