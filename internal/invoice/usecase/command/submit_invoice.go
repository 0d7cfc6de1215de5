package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	customerdomain "github.com/ayethu/autoparts-backend/internal/customer/domain"
	itemdomain "github.com/ayethu/autoparts-backend/internal/item/domain"
	"github.com/ayethu/autoparts-backend/internal/invoice/domain"
)

// SubmitInvoiceLine is one draft position
type SubmitInvoiceLine struct {
	ItemID   uint
	Quantity int
}

// SubmitInvoiceCommand is an unvalidated invoice draft. Either CustomerID
// or a walk-in CustomerName must be present.
type SubmitInvoiceCommand struct {
	CustomerID    *uint
	CustomerName  string
	CustomerPhone string
	AmountPaid    decimal.Decimal
	Lines         []SubmitInvoiceLine
}

// SubmitInvoiceHandler validates a draft and commits it against live stock
type SubmitInvoiceHandler struct {
	invoices  domain.InvoiceRepository
	items     itemdomain.ItemRepository
	customers customerdomain.CustomerRepository
}

// NewSubmitInvoiceHandler creates a new submit invoice handler
func NewSubmitInvoiceHandler(
	invoices domain.InvoiceRepository,
	items itemdomain.ItemRepository,
	customers customerdomain.CustomerRepository,
) *SubmitInvoiceHandler {
	return &SubmitInvoiceHandler{
		invoices:  invoices,
		items:     items,
		customers: customers,
	}
}

// Handle executes the submit invoice command.
//
// Validation walks every line and collects ALL violations before failing,
// so the caller can correct the whole draft at once. Nothing is mutated
// until validation passes; the repository then commits all stock
// decrements and the invoice atomically. A decrement that fails because
// stock moved between validation and commit aborts the whole invoice.
func (h *SubmitInvoiceHandler) Handle(ctx context.Context, cmd SubmitInvoiceCommand) (*domain.Invoice, error) {
	verr := domain.NewValidationError()

	customerName := cmd.CustomerName
	if cmd.CustomerID != nil {
		customer, err := h.customers.FindByID(ctx, *cmd.CustomerID)
		if err != nil {
			if errors.Is(err, customerdomain.ErrCustomerNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to resolve customer: %w", err)
		}
		if customerName == "" {
			customerName = customer.Name
		}
	} else if customerName == "" {
		verr.AddField("customer", "either customer_id or a walk-in customer_name is required")
	}

	if len(cmd.Lines) == 0 {
		verr.AddField("lines", "at least one line is required")
	}

	total := decimal.Zero
	lines := make([]domain.InvoiceLine, 0, len(cmd.Lines))
	for i, draft := range cmd.Lines {
		if draft.Quantity < 1 {
			verr.AddLine(i, "quantity", "must be at least 1")
			continue
		}

		item, err := h.items.FindByID(ctx, draft.ItemID)
		if err != nil {
			if errors.Is(err, itemdomain.ErrItemNotFound) {
				verr.AddLine(i, "item_id", fmt.Sprintf("item %d does not exist", draft.ItemID))
				continue
			}
			return nil, fmt.Errorf("failed to load item %d: %w", draft.ItemID, err)
		}

		if !item.InStock(draft.Quantity) {
			verr.AddLine(i, "quantity",
				fmt.Sprintf("requested %d but only %d in stock", draft.Quantity, item.Quantity))
			continue
		}

		line := domain.InvoiceLine{
			ItemID:    draft.ItemID,
			Quantity:  draft.Quantity,
			UnitPrice: item.SalesPrice,
		}
		total = total.Add(line.Total())
		lines = append(lines, line)
	}

	if cmd.AmountPaid.IsNegative() {
		verr.AddField("amount_paid", "cannot be negative")
	} else if !verr.HasErrors() && cmd.AmountPaid.GreaterThan(total) {
		verr.AddField("amount_paid",
			fmt.Sprintf("cannot exceed the invoice total of %s", total.StringFixed(2)))
	}

	if verr.HasErrors() {
		return nil, verr
	}

	invoice := &domain.Invoice{
		InvoiceNumber: fmt.Sprintf("INV-%s", uuid.New().String()[:8]),
		CustomerID:    cmd.CustomerID,
		CustomerName:  customerName,
		CustomerPhone: cmd.CustomerPhone,
		TotalAmount:   total,
		Lines:         lines,
	}
	invoice.SettlePayment(cmd.AmountPaid)

	if err := h.invoices.Create(ctx, invoice); err != nil {
		if errors.Is(err, itemdomain.ErrInsufficientStock) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return invoice, nil
}
