package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	customerdomain "github.com/ayethu/autoparts-backend/internal/customer/domain"
	gatehttp "github.com/ayethu/autoparts-backend/internal/gate/delivery/http"
	"github.com/ayethu/autoparts-backend/internal/invoice/domain"
	"github.com/ayethu/autoparts-backend/internal/invoice/usecase/command"
	"github.com/ayethu/autoparts-backend/internal/invoice/usecase/query"
	itemdomain "github.com/ayethu/autoparts-backend/internal/item/domain"
	"github.com/ayethu/autoparts-backend/kafka"
	"github.com/ayethu/autoparts-backend/pkg/logger"
)

var validate = validator.New()

// InvoiceHandler handles HTTP requests for invoices
type InvoiceHandler struct {
	// Command handlers
	submitHandler  *command.SubmitInvoiceHandler
	paymentHandler *command.UpdatePaymentHandler
	assignHandler  *command.AssignCustomerHandler

	// Query handlers
	getHandler    *query.GetInvoiceHandler
	listHandler   *query.ListInvoicesHandler
	byDateHandler *query.InvoicesByDateHandler

	items     itemdomain.ItemRepository
	publisher *kafka.Publisher // nil when Kafka is disabled

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	invoiceTotal   prometheus.Counter
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(
	invoices domain.InvoiceRepository,
	items itemdomain.ItemRepository,
	customers customerdomain.CustomerRepository,
	publisher *kafka.Publisher,
) *InvoiceHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_requests_total",
			Help: "Total number of invoice endpoint requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "invoice_request_duration_seconds",
			Help:    "Duration of invoice endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	invoiceTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "invoices_created_total",
			Help: "Total number of invoices committed",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(invoiceTotal)

	return &InvoiceHandler{
		submitHandler:  command.NewSubmitInvoiceHandler(invoices, items, customers),
		paymentHandler: command.NewUpdatePaymentHandler(invoices),
		assignHandler:  command.NewAssignCustomerHandler(invoices, customers),
		getHandler:     query.NewGetInvoiceHandler(invoices),
		listHandler:    query.NewListInvoicesHandler(invoices),
		byDateHandler:  query.NewInvoicesByDateHandler(invoices),
		items:          items,
		publisher:      publisher,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		invoiceTotal:   invoiceTotal,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *InvoiceHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Submit handles POST /invoices
func (h *InvoiceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID    *uint           `json:"customer_id"`
		CustomerName  string          `json:"customer_name"`
		CustomerPhone string          `json:"customer_phone"`
		AmountPaid    decimal.Decimal `json:"amount_paid"`
		Lines         []struct {
			ItemID   uint `json:"item_id"`
			Quantity int  `json:"quantity"`
		} `json:"lines" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cmd := command.SubmitInvoiceCommand{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		AmountPaid:    req.AmountPaid,
	}
	for _, line := range req.Lines {
		cmd.Lines = append(cmd.Lines, command.SubmitInvoiceLine{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}

	invoice, err := h.submitHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondCommandError(w, err)
		return
	}

	h.invoiceTotal.Inc()
	h.publishInvoiceCreated(r.Context(), invoice)
	h.checkLowStock(r.Context(), invoice)
	h.respondJSON(w, http.StatusCreated, invoice)
}

// Get handles GET /invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	invoice, err := h.getHandler.Handle(r.Context(), query.GetInvoiceQuery{ID: id})
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, invoice)
}

// List handles GET /invoices with an optional ?date=YYYY-MM-DD filter
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	if date := r.URL.Query().Get("date"); date != "" {
		invoices, err := h.byDateHandler.Handle(r.Context(), query.InvoicesByDateQuery{Date: date})
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondJSON(w, http.StatusOK, invoices)
		return
	}

	invoices, err := h.listHandler.Handle(r.Context(), query.ListInvoicesQuery{})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, invoices)
}

// UpdatePayment handles PUT /invoices/{id}/payment
func (h *InvoiceHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var req struct {
		AmountPaid decimal.Decimal `json:"amount_paid"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdatePaymentCommand{InvoiceID: id, AmountPaid: req.AmountPaid}
	invoice, err := h.paymentHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondCommandError(w, err)
		return
	}

	h.publishPaymentUpdated(r.Context(), invoice)
	h.respondJSON(w, http.StatusOK, invoice)
}

// AssignCustomer handles PUT /invoices/{id}/customer
func (h *InvoiceHandler) AssignCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var req struct {
		CustomerID uint `json:"customer_id" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cmd := command.AssignCustomerCommand{InvoiceID: id, CustomerID: req.CustomerID}
	invoice, err := h.assignHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondCommandError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, invoice)
}

// respondCommandError maps domain errors onto HTTP statuses. Validation
// problems keep their full field and line detail in the body.
func (h *InvoiceHandler) respondCommandError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		h.respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": verr.Fields,
			"lines":  verr.Lines,
		})
	case errors.Is(err, itemdomain.ErrInsufficientStock):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrPaymentOutOfRange):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvoiceNotFound),
		errors.Is(err, customerdomain.ErrCustomerNotFound),
		errors.Is(err, itemdomain.ErrItemNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		h.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *InvoiceHandler) publishInvoiceCreated(ctx context.Context, invoice *domain.Invoice) {
	if h.publisher == nil {
		return
	}
	event := kafka.InvoiceCreatedEvent{
		InvoiceID:     invoice.ID,
		CustomerID:    invoice.CustomerID,
		CustomerName:  invoice.CustomerName,
		TotalAmount:   invoice.TotalAmount.StringFixed(2),
		AmountPaid:    invoice.AmountPaid.StringFixed(2),
		PaymentStatus: invoice.PaymentStatus,
		LineCount:     len(invoice.Lines),
	}
	if err := h.publisher.PublishInvoiceCreated(ctx, event); err != nil {
		logger.Logger.Error().Err(err).Uint("invoice_id", invoice.ID).Msg("Failed to publish invoice created event")
	}
}

func (h *InvoiceHandler) publishPaymentUpdated(ctx context.Context, invoice *domain.Invoice) {
	if h.publisher == nil {
		return
	}
	event := kafka.PaymentUpdatedEvent{
		InvoiceID:          invoice.ID,
		AmountPaid:         invoice.AmountPaid.StringFixed(2),
		OutstandingBalance: invoice.OutstandingBalance.StringFixed(2),
		PaymentStatus:      invoice.PaymentStatus,
	}
	if err := h.publisher.PublishPaymentUpdated(ctx, event); err != nil {
		logger.Logger.Error().Err(err).Uint("invoice_id", invoice.ID).Msg("Failed to publish payment updated event")
	}
}

// checkLowStock emits a low stock event for every sold item the commit
// pushed to or below the threshold
func (h *InvoiceHandler) checkLowStock(ctx context.Context, invoice *domain.Invoice) {
	if h.publisher == nil {
		return
	}
	for _, line := range invoice.Lines {
		item, err := h.items.FindByID(ctx, line.ItemID)
		if err != nil {
			continue
		}
		if item.Quantity > itemdomain.DefaultLowStockThreshold {
			continue
		}
		event := kafka.LowStockEvent{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Threshold: itemdomain.DefaultLowStockThreshold,
		}
		if err := h.publisher.PublishLowStock(ctx, event); err != nil {
			logger.Logger.Error().Err(err).Uint("item_id", item.ID).Msg("Failed to publish low stock event")
		}
	}
}

// respondJSON sends a JSON response
func (h *InvoiceHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *InvoiceHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// RegisterRoutes registers all invoice routes
func (h *InvoiceHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/invoices", h.metricsMiddleware("/invoices", h.List)).Methods("GET")
	router.HandleFunc("/invoices/{id}", h.metricsMiddleware("/invoices/{id}", h.Get)).Methods("GET")

	router.HandleFunc("/invoices", h.metricsMiddleware("/invoices", gatehttp.SessionMiddleware(h.Submit))).Methods("POST")
	router.HandleFunc("/invoices/{id}/payment", h.metricsMiddleware("/invoices/{id}/payment", gatehttp.SessionMiddleware(h.UpdatePayment))).Methods("PUT")
	router.HandleFunc("/invoices/{id}/customer", h.metricsMiddleware("/invoices/{id}/customer", gatehttp.SessionMiddleware(h.AssignCustomer))).Methods("PUT")
}
