package kafka

import "time"

// InvoiceCreatedEvent is emitted after an invoice commits with its stock changes
type InvoiceCreatedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	InvoiceID     uint      `json:"invoice_id"`
	CustomerID    *uint     `json:"customer_id,omitempty"`
	CustomerName  string    `json:"customer_name"`
	TotalAmount   string    `json:"total_amount"`
	AmountPaid    string    `json:"amount_paid"`
	PaymentStatus string    `json:"payment_status"`
	LineCount     int       `json:"line_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// PaymentUpdatedEvent is emitted after an invoice's payment state changes
type PaymentUpdatedEvent struct {
	EventID            string    `json:"event_id"`
	EventType          string    `json:"event_type"`
	InvoiceID          uint      `json:"invoice_id"`
	AmountPaid         string    `json:"amount_paid"`
	OutstandingBalance string    `json:"outstanding_balance"`
	PaymentStatus      string    `json:"payment_status"`
	Timestamp          time.Time `json:"timestamp"`
}

// LowStockEvent is emitted when a committed sale pushes an item below the threshold
type LowStockEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ItemID    uint      `json:"item_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Threshold int       `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeInvoiceCreated = "invoice.created"
	EventTypePaymentUpdated = "invoice.payment_updated"
	EventTypeLowStock       = "stock.low"
)

// Kafka topics
const (
	TopicInvoiceCreated = "invoice-created"
	TopicPaymentUpdated = "payment-updated"
	TopicLowStock       = "stock-low"
)
