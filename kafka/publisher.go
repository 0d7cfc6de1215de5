package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/ayethu/autoparts-backend/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishInvoiceCreated publishes an invoice created event with tracing
func (p *Publisher) PublishInvoiceCreated(ctx context.Context, event InvoiceCreatedEvent) error {
	event.EventType = EventTypeInvoiceCreated
	return p.publish(ctx, TopicInvoiceCreated, event.EventType,
		fmt.Sprintf("invoice_%d", event.InvoiceID), &event.EventID, &event.Timestamp, &event,
		attribute.Int64("invoice.id", int64(event.InvoiceID)),
		attribute.String("invoice.payment_status", event.PaymentStatus),
		attribute.Int("invoice.line_count", event.LineCount),
	)
}

// PublishPaymentUpdated publishes a payment updated event with tracing
func (p *Publisher) PublishPaymentUpdated(ctx context.Context, event PaymentUpdatedEvent) error {
	event.EventType = EventTypePaymentUpdated
	return p.publish(ctx, TopicPaymentUpdated, event.EventType,
		fmt.Sprintf("invoice_%d", event.InvoiceID), &event.EventID, &event.Timestamp, &event,
		attribute.Int64("invoice.id", int64(event.InvoiceID)),
		attribute.String("invoice.payment_status", event.PaymentStatus),
	)
}

// PublishLowStock publishes a low stock alert event with tracing
func (p *Publisher) PublishLowStock(ctx context.Context, event LowStockEvent) error {
	event.EventType = EventTypeLowStock
	return p.publish(ctx, TopicLowStock, event.EventType,
		fmt.Sprintf("item_%d", event.ItemID), &event.EventID, &event.Timestamp, &event,
		attribute.Int64("item.id", int64(event.ItemID)),
		attribute.Int("item.quantity", event.Quantity),
	)
}

func (p *Publisher) publish(ctx context.Context, topic, eventType, key string, eventID *string, timestamp *time.Time, event interface{}, attrs ...attribute.KeyValue) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, fmt.Sprintf("kafka.publish.%s", eventType),
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(append([]attribute.KeyValue{
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", eventType),
		}, attrs...)...),
	)
	defer span.End()

	// Set event metadata before marshalling
	if *eventID == "" {
		*eventID = fmt.Sprintf("evt_%d", time.Now().UnixNano())
	}
	*timestamp = time.Now().UTC()

	span.SetAttributes(attribute.String("event.id", *eventID))

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{
			Key:   []byte("event_type"),
			Value: []byte(eventType),
		},
		{
			Key:   []byte("event_id"),
			Value: []byte(*eventID),
		},
	}

	for hk, hv := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(hk),
			Value: []byte(hv),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Logger.Error().
			Err(err).
			Str("topic", topic).
			Str("event_type", eventType).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Logger.Info().
		Str("event_id", *eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
