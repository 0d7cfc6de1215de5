package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvoiceNotFound is returned when an invoice id does not resolve
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrPaymentOutOfRange is returned when amountPaid falls outside
	// [0, totalAmount]. Out-of-range values are rejected, never clamped.
	ErrPaymentOutOfRange = errors.New("amount paid must be between 0 and the invoice total")
)

// LineError describes one invalid draft line, identified by its position
type LineError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every problem found in a draft so the caller
// can fix all of them in one resubmission.
type ValidationError struct {
	Fields map[string]string `json:"fields,omitempty"`
	Lines  []LineError       `json:"lines,omitempty"`
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// AddField records a draft-level problem
func (e *ValidationError) AddField(field, message string) {
	e.Fields[field] = message
}

// AddLine records a problem on the line at index
func (e *ValidationError) AddLine(index int, field, message string) {
	e.Lines = append(e.Lines, LineError{Index: index, Field: field, Message: message})
}

// HasErrors reports whether anything was recorded
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0 || len(e.Lines) > 0
}

func (e *ValidationError) Error() string {
	var parts []string
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	for _, le := range e.Lines {
		parts = append(parts, fmt.Sprintf("line %d %s: %s", le.Index, le.Field, le.Message))
	}
	if len(parts) == 0 {
		return "invalid draft"
	}
	return "invalid draft: " + strings.Join(parts, "; ")
}
