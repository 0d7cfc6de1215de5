package query

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	invoicedomain "github.com/ayethu/autoparts-backend/internal/invoice/domain"
	invoicerepo "github.com/ayethu/autoparts-backend/internal/invoice/repository"
	itemrepo "github.com/ayethu/autoparts-backend/internal/item/repository"
)

func addInvoice(t *testing.T, repo *invoicerepo.MemoryInvoiceRepository, customerID uint, total, paid string) {
	t.Helper()
	totalD, _ := decimal.NewFromString(total)
	paidD, _ := decimal.NewFromString(paid)

	inv := &invoicedomain.Invoice{
		InvoiceNumber: "INV-" + total + "-" + paid,
		CustomerID:    &customerID,
		CustomerName:  "Test",
		TotalAmount:   totalD,
	}
	inv.SettlePayment(paidD)
	if err := repo.Create(context.Background(), inv); err != nil {
		t.Fatalf("create invoice: %v", err)
	}
}

func TestOutstandingBalance_SumsUnpaidAcrossInvoices(t *testing.T) {
	items := itemrepo.NewMemoryItemRepository()
	invoices := invoicerepo.NewMemoryInvoiceRepository(items)
	handler := NewOutstandingBalanceHandler(invoices)

	// Paid in full, half paid, mostly unpaid
	addInvoice(t, invoices, 1, "300", "300") // contributes 0
	addInvoice(t, invoices, 1, "400", "200") // contributes 200
	addInvoice(t, invoices, 1, "60", "10")   // contributes 50
	addInvoice(t, invoices, 2, "900", "0")   // other customer

	result, err := handler.Handle(context.Background(), OutstandingBalanceQuery{CustomerID: 1})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	want, _ := decimal.NewFromString("250")
	if !result.Balance.Equal(want) {
		t.Errorf("balance = %s, want 250", result.Balance)
	}
	if result.Invoices != 3 {
		t.Errorf("invoices = %d, want 3", result.Invoices)
	}
}

func TestOutstandingBalance_ReflectsPaymentUpdates(t *testing.T) {
	items := itemrepo.NewMemoryItemRepository()
	invoices := invoicerepo.NewMemoryInvoiceRepository(items)
	handler := NewOutstandingBalanceHandler(invoices)

	addInvoice(t, invoices, 1, "400", "0")

	paid, _ := decimal.NewFromString("400")
	if _, err := invoices.UpdatePayment(context.Background(), 1, paid); err != nil {
		t.Fatalf("update payment: %v", err)
	}

	result, err := handler.Handle(context.Background(), OutstandingBalanceQuery{CustomerID: 1})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !result.Balance.IsZero() {
		t.Errorf("balance = %s after full payment, want 0", result.Balance)
	}
}

func TestOutstandingBalance_UnknownCustomerOwesZero(t *testing.T) {
	items := itemrepo.NewMemoryItemRepository()
	invoices := invoicerepo.NewMemoryInvoiceRepository(items)
	handler := NewOutstandingBalanceHandler(invoices)

	result, err := handler.Handle(context.Background(), OutstandingBalanceQuery{CustomerID: 77})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !result.Balance.IsZero() || result.Invoices != 0 {
		t.Errorf("unknown customer: balance=%s invoices=%d, want 0/0", result.Balance, result.Invoices)
	}
}
