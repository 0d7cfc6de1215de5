package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ayethu/autoparts-backend/internal/invoice/domain"
)

var tracer = otel.Tracer("invoice-repository")

// TracingInvoiceRepository decorates an InvoiceRepository with spans on
// the write paths.
type TracingInvoiceRepository struct {
	domain.InvoiceRepository
}

func NewTracingInvoiceRepository(inner domain.InvoiceRepository) *TracingInvoiceRepository {
	return &TracingInvoiceRepository{InvoiceRepository: inner}
}

func (r *TracingInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.Int("invoice.line_count", len(invoice.Lines)),
			attribute.String("invoice.total_amount", invoice.TotalAmount.String()),
			attribute.String("invoice.payment_status", invoice.PaymentStatus),
		),
	)
	defer span.End()

	err := r.InvoiceRepository.Create(ctx, invoice)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("invoice.id", int(invoice.ID)))
	return nil
}

func (r *TracingInvoiceRepository) UpdatePayment(ctx context.Context, id uint, amountPaid decimal.Decimal) (*domain.Invoice, error) {
	ctx, span := tracer.Start(ctx, "repository.UpdatePayment",
		trace.WithAttributes(
			attribute.Int("invoice.id", int(id)),
			attribute.String("invoice.amount_paid", amountPaid.String()),
		),
	)
	defer span.End()

	invoice, err := r.InvoiceRepository.UpdatePayment(ctx, id, amountPaid)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("invoice.payment_status", invoice.PaymentStatus))
	return invoice, nil
}
