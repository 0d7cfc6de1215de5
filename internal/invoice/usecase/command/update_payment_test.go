package command

import (
	"context"
	"errors"
	"testing"

	"github.com/ayethu/autoparts-backend/internal/invoice/domain"
)

func TestUpdatePayment_RoundTrip(t *testing.T) {
	f := newFixture(t)
	brake := f.addItem(t, "brake-pad", "250", 10)

	inv, err := f.handler.Handle(context.Background(), SubmitInvoiceCommand{
		CustomerName: "Walk-in",
		AmountPaid:   mustDecimal(t, "100"),
		Lines:        []SubmitInvoiceLine{{ItemID: brake.ID, Quantity: 2}}, // total 500
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	payments := NewUpdatePaymentHandler(f.invoices)

	// Pay in full
	updated, err := payments.Handle(context.Background(), UpdatePaymentCommand{
		InvoiceID:  inv.ID,
		AmountPaid: mustDecimal(t, "500"),
	})
	if err != nil {
		t.Fatalf("update to full: %v", err)
	}
	if updated.PaymentStatus != domain.StatusPaid || !updated.OutstandingBalance.IsZero() {
		t.Errorf("after full payment: status=%s outstanding=%s",
			updated.PaymentStatus, updated.OutstandingBalance)
	}

	// Revise back to zero
	updated, err = payments.Handle(context.Background(), UpdatePaymentCommand{
		InvoiceID:  inv.ID,
		AmountPaid: mustDecimal(t, "0"),
	})
	if err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if updated.PaymentStatus != domain.StatusUnpaid {
		t.Errorf("after revert: status=%s, want unpaid", updated.PaymentStatus)
	}
	if !updated.OutstandingBalance.Equal(updated.TotalAmount) {
		t.Errorf("after revert: outstanding=%s, want %s",
			updated.OutstandingBalance, updated.TotalAmount)
	}

	// Lines and stock stay untouched throughout
	if len(updated.Lines) != 1 || updated.Lines[0].Quantity != 2 {
		t.Errorf("lines changed by payment update: %+v", updated.Lines)
	}
	item, _ := f.items.FindByID(context.Background(), brake.ID)
	if item.Quantity != 8 {
		t.Errorf("stock changed by payment update: %d", item.Quantity)
	}
}

func TestUpdatePayment_RejectsOutOfRange(t *testing.T) {
	f := newFixture(t)
	brake := f.addItem(t, "brake-pad", "250", 10)

	inv, err := f.handler.Handle(context.Background(), SubmitInvoiceCommand{
		CustomerName: "Walk-in",
		Lines:        []SubmitInvoiceLine{{ItemID: brake.ID, Quantity: 2}}, // total 500
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	payments := NewUpdatePaymentHandler(f.invoices)

	for _, amount := range []string{"-0.01", "500.01"} {
		_, err := payments.Handle(context.Background(), UpdatePaymentCommand{
			InvoiceID:  inv.ID,
			AmountPaid: mustDecimal(t, amount),
		})
		if !errors.Is(err, domain.ErrPaymentOutOfRange) {
			t.Errorf("amount %s: got %v, want ErrPaymentOutOfRange", amount, err)
		}
	}

	// Rejected updates must not change the invoice
	reloaded, _ := f.invoices.FindByID(context.Background(), inv.ID)
	if reloaded.PaymentStatus != domain.StatusUnpaid || !reloaded.AmountPaid.IsZero() {
		t.Errorf("invoice mutated by rejected update: status=%s paid=%s",
			reloaded.PaymentStatus, reloaded.AmountPaid)
	}
}

func TestUpdatePayment_UnknownInvoice(t *testing.T) {
	f := newFixture(t)
	payments := NewUpdatePaymentHandler(f.invoices)

	_, err := payments.Handle(context.Background(), UpdatePaymentCommand{
		InvoiceID:  7,
		AmountPaid: mustDecimal(t, "10"),
	})
	if !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Errorf("got %v, want ErrInvoiceNotFound", err)
	}
}
