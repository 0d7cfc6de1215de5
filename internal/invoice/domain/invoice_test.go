package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPaymentStatusFor(t *testing.T) {
	cases := []struct {
		total string
		paid  string
		want  string
	}{
		{"100", "0", StatusUnpaid},
		{"100", "0.01", StatusPartial},
		{"100", "99.99", StatusPartial},
		{"100", "100", StatusPaid}, // paying the exact total is paid
		{"100", "150", StatusPaid},
		{"0", "0", StatusPaid}, // zero-total invoice owes nothing
	}

	for _, tc := range cases {
		total, _ := decimal.NewFromString(tc.total)
		paid, _ := decimal.NewFromString(tc.paid)
		if got := PaymentStatusFor(total, paid); got != tc.want {
			t.Errorf("PaymentStatusFor(%s, %s) = %s, want %s", tc.total, tc.paid, got, tc.want)
		}
	}
}

func TestSettlePayment(t *testing.T) {
	total, _ := decimal.NewFromString("700")
	paid, _ := decimal.NewFromString("200")

	inv := &Invoice{TotalAmount: total}
	inv.SettlePayment(paid)

	if inv.PaymentStatus != StatusPartial {
		t.Errorf("status = %s, want partial", inv.PaymentStatus)
	}
	want, _ := decimal.NewFromString("500")
	if !inv.OutstandingBalance.Equal(want) {
		t.Errorf("outstanding = %s, want 500", inv.OutstandingBalance)
	}
}

func TestLineTotal(t *testing.T) {
	price, _ := decimal.NewFromString("250")
	inv := &Invoice{Lines: []InvoiceLine{
		{Quantity: 2, UnitPrice: price},
		{Quantity: 1, UnitPrice: price},
	}}

	want, _ := decimal.NewFromString("750")
	if got := inv.LineTotal(); !got.Equal(want) {
		t.Errorf("LineTotal() = %s, want 750", got)
	}
}
