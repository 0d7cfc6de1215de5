package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses
const (
	StatusUnpaid  = "unpaid"
	StatusPartial = "partial"
	StatusPaid    = "paid"
)

// InvoiceLine is one sold position. UnitPrice is frozen at commit time;
// later item price edits never rewrite past invoices.
type InvoiceLine struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	InvoiceID uint            `json:"invoice_id" gorm:"not null;index"`
	ItemID    uint            `json:"item_id" gorm:"not null;index"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(20,2);not null"`
}

// TableName specifies the table name
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}

// Total returns quantity × unit price for the line
func (l *InvoiceLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Invoice represents a committed sale. The line set and TotalAmount are
// immutable after creation; only the payment fields may be revised, via
// UpdatePayment.
type Invoice struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	InvoiceNumber string `json:"invoice_number" gorm:"uniqueIndex;not null"`

	// Either a persisted customer or an inline walk-in identity. The
	// name is always snapshotted so reports survive customer deletion.
	CustomerID    *uint  `json:"customer_id,omitempty" gorm:"index"`
	CustomerName  string `json:"customer_name" gorm:"not null"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	TotalAmount        decimal.Decimal `json:"total_amount" gorm:"type:decimal(20,2);not null"`
	AmountPaid         decimal.Decimal `json:"amount_paid" gorm:"type:decimal(20,2);not null;default:0"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance" gorm:"type:decimal(20,2);not null;default:0"`
	PaymentStatus      string          `json:"payment_status" gorm:"not null;default:'unpaid'"`

	Lines     []InvoiceLine `json:"lines" gorm:"foreignKey:InvoiceID"`
	CreatedAt time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// TableName specifies the table name
func (Invoice) TableName() string {
	return "invoices"
}

// LineTotal sums quantity × frozen unit price over all lines
func (inv *Invoice) LineTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range inv.Lines {
		total = total.Add(inv.Lines[i].Total())
	}
	return total
}

// SettlePayment sets the payment fields from amountPaid. Callers must have
// validated 0 ≤ amountPaid ≤ TotalAmount first; the balance is never
// clamped, an overpayment is a caller bug.
func (inv *Invoice) SettlePayment(amountPaid decimal.Decimal) {
	inv.AmountPaid = amountPaid
	inv.OutstandingBalance = inv.TotalAmount.Sub(amountPaid)
	inv.PaymentStatus = PaymentStatusFor(inv.TotalAmount, amountPaid)
}

// PaymentStatusFor applies the three-way rule. Paying the exact total is
// paid, not partial.
func PaymentStatusFor(total, paid decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(total):
		return StatusPaid
	case paid.IsPositive():
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

// InvoiceRepository defines the contract for invoice data access.
//
// Create must commit the invoice and every line's stock decrement
// atomically: any failed decrement aborts the whole invoice with zero
// partial changes. UpdatePayment must serialize concurrent edits of the
// same invoice (read-modify-write under a lock).
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id uint) (*Invoice, error)
	FindByCustomerID(ctx context.Context, customerID uint) ([]Invoice, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Invoice, error)
	FindAll(ctx context.Context) ([]Invoice, error)
	UpdatePayment(ctx context.Context, id uint, amountPaid decimal.Decimal) (*Invoice, error)
	AssignCustomer(ctx context.Context, id uint, customerID uint) (*Invoice, error)
}
