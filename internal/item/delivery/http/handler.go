package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	gatehttp "github.com/ayethu/autoparts-backend/internal/gate/delivery/http"
	"github.com/ayethu/autoparts-backend/internal/item/domain"
	"github.com/ayethu/autoparts-backend/internal/item/usecase/command"
	"github.com/ayethu/autoparts-backend/internal/item/usecase/query"
)

var validate = validator.New()

// ItemHandler handles HTTP requests for catalog items
type ItemHandler struct {
	// Command handlers
	createHandler *command.CreateItemHandler
	updateHandler *command.UpdateItemHandler
	deleteHandler *command.DeleteItemHandler

	// Query handlers
	getHandler      *query.GetItemHandler
	listHandler     *query.ListItemsHandler
	lowStockHandler *query.LowStockHandler

	repo           domain.ItemRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	stockGauge     prometheus.Gauge
}

// NewItemHandler creates a new item handler
func NewItemHandler(repo domain.ItemRepository) *ItemHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "item_requests_total",
			Help: "Total number of item endpoint requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "item_request_duration_seconds",
			Help:    "Duration of item endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	stockGauge := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "item_total_stock_units",
			Help: "Total units currently in stock across all items",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(stockGauge)

	return &ItemHandler{
		createHandler:   command.NewCreateItemHandler(repo),
		updateHandler:   command.NewUpdateItemHandler(repo),
		deleteHandler:   command.NewDeleteItemHandler(repo),
		getHandler:      query.NewGetItemHandler(repo),
		listHandler:     query.NewListItemsHandler(repo),
		lowStockHandler: query.NewLowStockHandler(repo),
		repo:            repo,
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		stockGauge:      stockGauge,
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
func (h *ItemHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Create handles POST /items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string          `json:"name" validate:"required"`
		Category      string          `json:"category" validate:"required"`
		ProductCode   string          `json:"product_code" validate:"required"`
		SalesPrice    decimal.Decimal `json:"sales_price"`
		PurchasePrice decimal.Decimal `json:"purchase_price"`
		Quantity      int             `json:"quantity" validate:"gte=0"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cmd := command.CreateItemCommand{
		Name:          req.Name,
		Category:      req.Category,
		ProductCode:   req.ProductCode,
		SalesPrice:    req.SalesPrice,
		PurchasePrice: req.PurchasePrice,
		Quantity:      req.Quantity,
	}

	item, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateProductCode) {
			h.respondError(w, http.StatusConflict, err.Error())
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.updateStockGauge(r.Context())
	h.respondJSON(w, http.StatusCreated, item)
}

// Get handles GET /items/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := h.getHandler.Handle(r.Context(), query.GetItemQuery{ID: id})
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, item)
}

// List handles GET /items with an optional ?category= filter
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := query.ListItemsQuery{Category: r.URL.Query().Get("category")}

	items, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, items)
}

// LowStock handles GET /items/low-stock with an optional ?threshold=
func (h *ItemHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold, _ := strconv.Atoi(r.URL.Query().Get("threshold"))

	items, err := h.lowStockHandler.Handle(r.Context(), query.LowStockQuery{Threshold: threshold})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, items)
}

// Update handles PUT /items/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var req struct {
		Name          *string          `json:"name"`
		Category      *string          `json:"category"`
		ProductCode   *string          `json:"product_code"`
		SalesPrice    *decimal.Decimal `json:"sales_price"`
		PurchasePrice *decimal.Decimal `json:"purchase_price"`
		Quantity      *int             `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateItemCommand{
		ItemID:        id,
		Name:          req.Name,
		Category:      req.Category,
		ProductCode:   req.ProductCode,
		SalesPrice:    req.SalesPrice,
		PurchasePrice: req.PurchasePrice,
		Quantity:      req.Quantity,
	}

	item, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrDuplicateProductCode):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			h.respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	h.updateStockGauge(r.Context())
	h.respondJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /items/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteItemCommand{ItemID: id}); err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.updateStockGauge(r.Context())
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

// HealthCheck handles GET /health
func (h *ItemHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// updateStockGauge refreshes the total stock gauge
func (h *ItemHandler) updateStockGauge(ctx context.Context) {
	total, err := h.repo.TotalQuantity(ctx)
	if err == nil {
		h.stockGauge.Set(float64(total))
	}
}

// respondJSON sends a JSON response
func (h *ItemHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *ItemHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// RegisterRoutes registers all item routes
func (h *ItemHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/items", h.metricsMiddleware("/items", h.List)).Methods("GET")
	router.HandleFunc("/items/low-stock", h.metricsMiddleware("/items/low-stock", h.LowStock)).Methods("GET")
	router.HandleFunc("/items/{id}", h.metricsMiddleware("/items/{id}", h.Get)).Methods("GET")

	router.HandleFunc("/items", h.metricsMiddleware("/items", gatehttp.SessionMiddleware(h.Create))).Methods("POST")
	router.HandleFunc("/items/{id}", h.metricsMiddleware("/items/{id}", gatehttp.SessionMiddleware(h.Update))).Methods("PUT")
	router.HandleFunc("/items/{id}", h.metricsMiddleware("/items/{id}", gatehttp.SessionMiddleware(h.Delete))).Methods("DELETE")
}

// RegisterHealthCheck registers health check endpoint
func (h *ItemHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.HealthCheck(db)).Methods("GET")
}
