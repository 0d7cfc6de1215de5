package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ayethu/autoparts-backend/internal/customer/domain"
	"github.com/ayethu/autoparts-backend/internal/customer/usecase/command"
	"github.com/ayethu/autoparts-backend/internal/customer/usecase/query"
	gatehttp "github.com/ayethu/autoparts-backend/internal/gate/delivery/http"
)

var validate = validator.New()

// CustomerHandler handles HTTP requests for customers
type CustomerHandler struct {
	// Command handlers
	createHandler *command.CreateCustomerHandler
	updateHandler *command.UpdateCustomerHandler
	deleteHandler *command.DeleteCustomerHandler

	// Query handlers
	getHandler     *query.GetCustomerHandler
	listHandler    *query.ListCustomersHandler
	balanceHandler *query.OutstandingBalanceHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(repo domain.CustomerRepository, balanceHandler *query.OutstandingBalanceHandler) *CustomerHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customer_requests_total",
			Help: "Total number of customer endpoint requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "customer_request_duration_seconds",
			Help:    "Duration of customer endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CustomerHandler{
		createHandler:  command.NewCreateCustomerHandler(repo),
		updateHandler:  command.NewUpdateCustomerHandler(repo),
		deleteHandler:  command.NewDeleteCustomerHandler(repo),
		getHandler:     query.NewGetCustomerHandler(repo),
		listHandler:    query.NewListCustomersHandler(repo),
		balanceHandler: balanceHandler,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
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
func (h *CustomerHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name" validate:"required"`
		Phone   string `json:"phone"`
		Email   string `json:"email" validate:"omitempty,email"`
		Address string `json:"address"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cmd := command.CreateCustomerCommand{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}

	customer, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, customer)
}

// Get handles GET /customers/{id}
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	customer, err := h.getHandler.Handle(r.Context(), query.GetCustomerQuery{ID: id})
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, customer)
}

// List handles GET /customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.listHandler.Handle(r.Context(), query.ListCustomersQuery{})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, customers)
}

// OutstandingBalance handles GET /customers/{id}/balance
func (h *CustomerHandler) OutstandingBalance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	balance, err := h.balanceHandler.Handle(r.Context(), query.OutstandingBalanceQuery{CustomerID: id})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, balance)
}

// Update handles PUT /customers/{id}
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Phone   *string `json:"phone"`
		Email   *string `json:"email"`
		Address *string `json:"address"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateCustomerCommand{
		CustomerID: id,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
	}

	customer, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, customer)
}

// Delete handles DELETE /customers/{id}
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteCustomerCommand{CustomerID: id}); err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}

// respondJSON sends a JSON response
func (h *CustomerHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *CustomerHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// RegisterRoutes registers all customer routes
func (h *CustomerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/customers", h.metricsMiddleware("/customers", h.List)).Methods("GET")
	router.HandleFunc("/customers/{id}", h.metricsMiddleware("/customers/{id}", h.Get)).Methods("GET")
	router.HandleFunc("/customers/{id}/balance", h.metricsMiddleware("/customers/{id}/balance", h.OutstandingBalance)).Methods("GET")

	router.HandleFunc("/customers", h.metricsMiddleware("/customers", gatehttp.SessionMiddleware(h.Create))).Methods("POST")
	router.HandleFunc("/customers/{id}", h.metricsMiddleware("/customers/{id}", gatehttp.SessionMiddleware(h.Update))).Methods("PUT")
	router.HandleFunc("/customers/{id}", h.metricsMiddleware("/customers/{id}", gatehttp.SessionMiddleware(h.Delete))).Methods("DELETE")
}
