package query

import (
	"context"

	"github.com/shopspring/decimal"

	invoicedomain "github.com/ayethu/autoparts-backend/internal/invoice/domain"
)

// OutstandingBalanceQuery asks for the total unpaid amount across every
// invoice attributed to one customer
type OutstandingBalanceQuery struct {
	CustomerID uint
}

// OutstandingBalanceResult carries the aggregated balance and the
// invoices that contribute to it
type OutstandingBalanceResult struct {
	CustomerID uint            `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
	Invoices   int             `json:"invoices"`
}

// OutstandingBalanceHandler handles outstanding balance query
type OutstandingBalanceHandler struct {
	invoices invoicedomain.InvoiceRepository
}

// NewOutstandingBalanceHandler creates a new outstanding balance handler
func NewOutstandingBalanceHandler(invoices invoicedomain.InvoiceRepository) *OutstandingBalanceHandler {
	return &OutstandingBalanceHandler{invoices: invoices}
}

// Handle executes the outstanding balance query. A customer with no
// invoices, including an ID that was never issued, owes zero; fully
// paid invoices contribute nothing.
func (h *OutstandingBalanceHandler) Handle(ctx context.Context, q OutstandingBalanceQuery) (*OutstandingBalanceResult, error) {
	invoices, err := h.invoices.FindByCustomerID(ctx, q.CustomerID)
	if err != nil {
		return nil, err
	}

	balance := decimal.Zero
	for _, inv := range invoices {
		balance = balance.Add(inv.OutstandingBalance)
	}

	return &OutstandingBalanceResult{
		CustomerID: q.CustomerID,
		Balance:    balance,
		Invoices:   len(invoices),
	}, nil
}
