package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ayethu/autoparts-backend/internal/item/domain"
)

var tracer = otel.Tracer("item-repository")

// TracingItemRepository decorates an ItemRepository with spans on the
// paths the invoice engine hits.
type TracingItemRepository struct {
	domain.ItemRepository
}

func NewTracingItemRepository(inner domain.ItemRepository) *TracingItemRepository {
	return &TracingItemRepository{ItemRepository: inner}
}

func (r *TracingItemRepository) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.Int("item.id", int(id)),
		),
	)
	defer span.End()

	item, err := r.ItemRepository.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("item.product_code", item.ProductCode),
		attribute.Int("item.quantity", item.Quantity),
	)
	return item, nil
}

func (r *TracingItemRepository) Create(ctx context.Context, item *domain.Item) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("item.product_code", item.ProductCode),
			attribute.String("item.category", item.Category),
			attribute.Int("item.quantity", item.Quantity),
		),
	)
	defer span.End()

	err := r.ItemRepository.Create(ctx, item)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("item.id", int(item.ID)))
	return nil
}

func (r *TracingItemRepository) Update(ctx context.Context, item *domain.Item) error {
	ctx, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(
			attribute.Int("item.id", int(item.ID)),
			attribute.Int("item.quantity", item.Quantity),
		),
	)
	defer span.End()

	err := r.ItemRepository.Update(ctx, item)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *TracingItemRepository) DecrementStock(ctx context.Context, id uint, quantity int) error {
	ctx, span := tracer.Start(ctx, "repository.DecrementStock",
		trace.WithAttributes(
			attribute.Int("item.id", int(id)),
			attribute.Int("item.decrement", quantity),
		),
	)
	defer span.End()

	err := r.ItemRepository.DecrementStock(ctx, id, quantity)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
