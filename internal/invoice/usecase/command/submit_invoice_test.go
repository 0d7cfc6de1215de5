package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	customerdomain "github.com/ayethu/autoparts-backend/internal/customer/domain"
	customerrepo "github.com/ayethu/autoparts-backend/internal/customer/repository"
	"github.com/ayethu/autoparts-backend/internal/invoice/domain"
	invoicerepo "github.com/ayethu/autoparts-backend/internal/invoice/repository"
	itemdomain "github.com/ayethu/autoparts-backend/internal/item/domain"
	itemrepo "github.com/ayethu/autoparts-backend/internal/item/repository"
)

type fixture struct {
	items     *itemrepo.MemoryItemRepository
	customers *customerrepo.MemoryCustomerRepository
	invoices  *invoicerepo.MemoryInvoiceRepository
	handler   *SubmitInvoiceHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	items := itemrepo.NewMemoryItemRepository()
	customers := customerrepo.NewMemoryCustomerRepository()
	invoices := invoicerepo.NewMemoryInvoiceRepository(items)
	return &fixture{
		items:     items,
		customers: customers,
		invoices:  invoices,
		handler:   NewSubmitInvoiceHandler(invoices, items, customers),
	}
}

func (f *fixture) addItem(t *testing.T, name string, price string, quantity int) *itemdomain.Item {
	t.Helper()
	item := &itemdomain.Item{
		Name:        name,
		Category:    itemdomain.CategorySpareParts,
		ProductCode: "PC-" + name,
		SalesPrice:  mustDecimal(t, price),
		Quantity:    quantity,
	}
	if err := f.items.Create(context.Background(), item); err != nil {
		t.Fatalf("create item %s: %v", name, err)
	}
	return item
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestSubmitInvoice_TotalsAndStatus(t *testing.T) {
	cases := []struct {
		name       string
		amountPaid string
		wantStatus string
		wantOwed   string
	}{
		{"unpaid", "0", domain.StatusUnpaid, "700"},
		{"partial", "200", domain.StatusPartial, "500"},
		{"paid exactly", "700", domain.StatusPaid, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			brake := f.addItem(t, "brake-pad", "250", 10)
			oil := f.addItem(t, "engine-oil", "100", 10)

			inv, err := f.handler.Handle(context.Background(), SubmitInvoiceCommand{
				CustomerName: "Walk-in",
				AmountPaid:   mustDecimal(t, tc.amountPaid),
				Lines: []SubmitInvoiceLine{
					{ItemID: brake.ID, Quantity: 2}, // 500
					{ItemID: oil.ID, Quantity: 2},   // 200
				},
			})
			if err != nil {
				t.Fatalf("submit: %v", err)
			}

			if !inv.TotalAmount.Equal(mustDecimal(t, "700")) {
				t.Errorf("total = %s, want 700", inv.TotalAmount)
			}
			if inv.PaymentStatus != tc.wantStatus {
				t.Errorf("status = %s, want %s", inv.PaymentStatus, tc.wantStatus)
			}
			if !inv.OutstandingBalance.Equal(mustDecimal(t, tc.wantOwed)) {
				t.Errorf("outstanding = %s, want %s", inv.OutstandingBalance, tc.wantOwed)
			}
			if !inv.TotalAmount.Equal(inv.AmountPaid.Add(inv.OutstandingBalance)) {
				t.Errorf("identity broken: %s != %s + %s",
					inv.TotalAmount, inv.AmountPaid, inv.OutstandingBalance)
			}
		})
	}
}

func TestSubmitInvoice_CollectsEveryLineViolation(t *testing.T) {
	f := newFixture(t)
	brake := f.addItem(t, "brake-pad", "250", 3)

	_, err := f.handler.Handle(context.Background(), SubmitInvoiceCommand{
		CustomerName: "Walk-in",
		Lines: []SubmitInvoiceLine{
			{ItemID: brake.ID, Quantity: 0},  // bad quantity
			{ItemID: 999, Quantity: 1},       // unknown item
			{ItemID: brake.ID, Quantity: 50}, // oversell
		},
	})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Lines) != 3 {
		t.Fatalf("expected 3 line errors, got %d: %+v", len(verr.Lines), verr.Lines)
	}
	for i, le := range verr.Lines {
		if le.Index != i {
			t.Errorf("line error %d has index %d", i, le.Index)
		}
	}

	// Nothing may have been committed
	got, err := f.items.FindByID(context.Background(), brake.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Quantity != 3 {
		t.Errorf("stock changed on rejected draft: %d", got.Quantity)
	}
	invoices, _ := f.invoices.FindAll(context.Background())
	if len(invoices) != 0 {
		t.Errorf("invoice persisted on rejected draft")
	}
}

func TestSubmitInvoice_AmountPaidBounds(t *testing.T) {
	f := newFixture(t)
	brake := f.addItem(t, "brake-pad", "250", 10)

	for _, amount := range []string{"-1", "501"} {
		_, err := f.handler.Handle(context.Background(), SubmitInvoiceCommand{
			CustomerName: "Walk-in",
			AmountPaid:   mustDecimal(t, amount),
			Lines:        []SubmitInvoiceLine{{ItemID: brake.ID, Quantity: 2}}, // total 500
		})

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("amountPaid %s: expected ValidationError, got %v", amount, err)
		}
		if _, ok := verr.Fields["amount_paid"]; !ok {
			t.Errorf("amountPaid %s: missing amount_paid field error: %+v", amount, verr.Fields)
		}
	}
}

func TestSubmitInvoice_CustomerSelection(t *testing.T) {
	f := newFixture(t)
	brake := f.addItem(t, "brake-pad", "250", 10)

	// Neither customer id nor walk-in name
	_, err := f.handler.Handle(context.Background(), SubmitInvoiceCommand{
		Lines: []SubmitInvoiceLine{{ItemID: brake.ID, Quantity: 1}},
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// Unknown persisted customer
	unknown := uint(42)
	_, err = f.handler.Handle(context.Background(), SubmitInvoiceCommand{
		CustomerID: &unknown,
		Lines:      []SubmitInvoiceLine{{ItemID: brake.ID, Quantity: 1}},
	})
	if !errors.Is(err, customerdomain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}

	// Persisted customer, name snapshotted from the record
	cust := &customerdomain.Customer{Name: "U Mya"}
	if err := f.customers.Create(context.Background(), cust); err != nil {
		t.Fatal(err)
	}
	inv, err := f.handler.Handle(context.Background(), SubmitInvoiceCommand{
		CustomerID: &cust.ID,
		Lines:      []SubmitInvoiceLine{{ItemID: brake.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if inv.CustomerName != "U Mya" {
		t.Errorf("customer name = %q, want snapshot of record", inv.CustomerName)
	}
}

func TestSubmitInvoice_FreezesUnitPrices(t *testing.T) {
	f := newFixture(t)
	brake := f.addItem(t, "brake-pad", "250", 10)

	inv, err := f.handler.Handle(context.Background(), SubmitInvoiceCommand{
		CustomerName: "Walk-in",
		Lines:        []SubmitInvoiceLine{{ItemID: brake.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Raise the catalog price afterwards
	brake.SalesPrice = mustDecimal(t, "999")
	if err := f.items.Update(context.Background(), brake); err != nil {
		t.Fatal(err)
	}

	reloaded, err := f.invoices.FindByID(context.Background(), inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.Lines[0].UnitPrice.Equal(mustDecimal(t, "250")) {
		t.Errorf("unit price drifted to %s after catalog edit", reloaded.Lines[0].UnitPrice)
	}
	if !reloaded.TotalAmount.Equal(mustDecimal(t, "500")) {
		t.Errorf("total drifted to %s after catalog edit", reloaded.TotalAmount)
	}
}

func TestSubmitInvoice_ConcurrentCommitsNeverOversell(t *testing.T) {
	f := newFixture(t)
	brake := f.addItem(t, "brake-pad", "250", 10)

	const buyers = 20
	var wg sync.WaitGroup
	results := make(chan error, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.handler.Handle(context.Background(), SubmitInvoiceCommand{
				CustomerName: "Walk-in",
				Lines:        []SubmitInvoiceLine{{ItemID: brake.ID, Quantity: 1}},
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var verr *domain.ValidationError
		if !errors.Is(err, itemdomain.ErrInsufficientStock) && !errors.As(err, &verr) {
			t.Errorf("unexpected failure: %v", err)
		}
	}
	if succeeded != 10 {
		t.Errorf("%d commits succeeded, want exactly 10", succeeded)
	}

	got, err := f.items.FindByID(context.Background(), brake.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Quantity != 0 {
		t.Errorf("final stock = %d, want 0", got.Quantity)
	}
}
