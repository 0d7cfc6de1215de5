package query

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	invoicedomain "github.com/ayethu/autoparts-backend/internal/invoice/domain"
	invoicerepo "github.com/ayethu/autoparts-backend/internal/invoice/repository"
	itemdomain "github.com/ayethu/autoparts-backend/internal/item/domain"
	itemrepo "github.com/ayethu/autoparts-backend/internal/item/repository"
)

type reportFixture struct {
	items    *itemrepo.MemoryItemRepository
	invoices *invoicerepo.MemoryInvoiceRepository
}

func newReportFixture() *reportFixture {
	items := itemrepo.NewMemoryItemRepository()
	return &reportFixture{
		items:    items,
		invoices: invoicerepo.NewMemoryInvoiceRepository(items),
	}
}

func (f *reportFixture) addItem(t *testing.T, name, category, price string) *itemdomain.Item {
	t.Helper()
	priceD, _ := decimal.NewFromString(price)
	item := &itemdomain.Item{
		Name:        name,
		Category:    category,
		ProductCode: "PC-" + name,
		SalesPrice:  priceD,
		Quantity:    100,
	}
	if err := f.items.Create(context.Background(), item); err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

func (f *reportFixture) addSale(t *testing.T, day string, itemID uint, quantity int, unitPrice string) {
	t.Helper()
	createdAt, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	if err != nil {
		t.Fatalf("bad day %q: %v", day, err)
	}
	priceD, _ := decimal.NewFromString(unitPrice)

	line := invoicedomain.InvoiceLine{ItemID: itemID, Quantity: quantity, UnitPrice: priceD}
	inv := &invoicedomain.Invoice{
		InvoiceNumber: "INV-" + day + "-" + unitPrice,
		CustomerName:  "Walk-in",
		TotalAmount:   line.Total(),
		Lines:         []invoicedomain.InvoiceLine{line},
		CreatedAt:     createdAt,
	}
	inv.SettlePayment(decimal.Zero)
	if err := f.invoices.Create(context.Background(), inv); err != nil {
		t.Fatalf("create invoice: %v", err)
	}
}

func TestDailySummary_GroupsByDayAndCategory(t *testing.T) {
	f := newReportFixture()
	brake := f.addItem(t, "brake-pad", itemdomain.CategorySpareParts, "250")
	oil := f.addItem(t, "engine-oil", itemdomain.CategoryLubricants, "300")

	f.addSale(t, "2024-05-01", brake.ID, 2, "250") // revenue 500
	f.addSale(t, "2024-05-02", oil.ID, 3, "300")   // revenue 900
	f.addSale(t, "2024-06-15", oil.ID, 7, "300")   // outside the filter month

	handler := NewDailySummaryHandler(f.invoices, f.items)
	report, err := handler.Handle(context.Background(), DailySummaryQuery{Month: "2024-05"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(report.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(report.Days))
	}

	day1 := report.Days[0]
	if day1.Date != "2024-05-01" || day1.TotalQuantity != 2 {
		t.Errorf("day1 = %s qty %d, want 2024-05-01 qty 2", day1.Date, day1.TotalQuantity)
	}
	if day1.Categories[itemdomain.CategorySpareParts] != 2 {
		t.Errorf("day1 categories = %v", day1.Categories)
	}
	if want, _ := decimal.NewFromString("500"); !day1.TotalRevenue.Equal(want) {
		t.Errorf("day1 revenue = %s, want 500", day1.TotalRevenue)
	}

	day2 := report.Days[1]
	if day2.Date != "2024-05-02" || day2.Categories[itemdomain.CategoryLubricants] != 3 {
		t.Errorf("day2 = %s categories %v", day2.Date, day2.Categories)
	}
	if want, _ := decimal.NewFromString("900"); !day2.TotalRevenue.Equal(want) {
		t.Errorf("day2 revenue = %s, want 900", day2.TotalRevenue)
	}

	stats := report.Stats
	if stats.TotalItemsSold != 5 {
		t.Errorf("totalItemsSold = %d, want 5", stats.TotalItemsSold)
	}
	if want, _ := decimal.NewFromString("1400"); !stats.TotalRevenue.Equal(want) {
		t.Errorf("totalRevenue = %s, want 1400", stats.TotalRevenue)
	}
	if stats.ActiveDays != 2 {
		t.Errorf("activeDays = %d, want 2", stats.ActiveDays)
	}
	if stats.ItemsPerActiveDay != 2.5 {
		t.Errorf("itemsPerActiveDay = %v, want 2.5", stats.ItemsPerActiveDay)
	}
}

func TestDailySummary_EmptyPeriod(t *testing.T) {
	f := newReportFixture()
	handler := NewDailySummaryHandler(f.invoices, f.items)

	report, err := handler.Handle(context.Background(), DailySummaryQuery{Month: "2024-05"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(report.Days) != 0 {
		t.Errorf("days = %d, want 0", len(report.Days))
	}
	// No active days must not divide by zero
	if report.Stats.ItemsPerActiveDay != 0 {
		t.Errorf("itemsPerActiveDay = %v, want 0", report.Stats.ItemsPerActiveDay)
	}
}

func TestDailySummary_DeletedItemFallsBackToUnknown(t *testing.T) {
	f := newReportFixture()
	brake := f.addItem(t, "brake-pad", itemdomain.CategorySpareParts, "250")
	f.addSale(t, "2024-05-01", brake.ID, 2, "250")

	if err := f.items.Delete(context.Background(), brake.ID); err != nil {
		t.Fatal(err)
	}

	handler := NewDailySummaryHandler(f.invoices, f.items)
	report, err := handler.Handle(context.Background(), DailySummaryQuery{})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(report.Days) != 1 {
		t.Fatalf("days = %d, want 1", len(report.Days))
	}
	if report.Days[0].Categories["Unknown"] != 2 {
		t.Errorf("categories = %v, want Unknown:2", report.Days[0].Categories)
	}
}

func TestDailySummary_RejectsBadMonth(t *testing.T) {
	f := newReportFixture()
	handler := NewDailySummaryHandler(f.invoices, f.items)

	if _, err := handler.Handle(context.Background(), DailySummaryQuery{Month: "May-2024"}); err == nil {
		t.Error("expected error for malformed month filter")
	}
}
