package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ayethu/autoparts-backend/internal/report/usecase/query"
)

// ReportHandler handles HTTP requests for sales reports and the dashboard
type ReportHandler struct {
	dailySummaryHandler *query.DailySummaryHandler
	salesTrackerHandler *query.SalesTrackerHandler
	dashboardHandler    *query.DashboardHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewReportHandler creates a new report handler
func NewReportHandler(
	dailySummaryHandler *query.DailySummaryHandler,
	salesTrackerHandler *query.SalesTrackerHandler,
	dashboardHandler *query.DashboardHandler,
) *ReportHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_requests_total",
			Help: "Total number of report endpoint requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_request_duration_seconds",
			Help:    "Duration of report endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &ReportHandler{
		dailySummaryHandler: dailySummaryHandler,
		salesTrackerHandler: salesTrackerHandler,
		dashboardHandler:    dashboardHandler,
		requestCounter:      requestCounter,
		requestLatency:      requestLatency,
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
func (h *ReportHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// DailySummary handles GET /reports/daily-summary with an optional ?month=YYYY-MM
func (h *ReportHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	q := query.DailySummaryQuery{Month: r.URL.Query().Get("month")}

	report, err := h.dailySummaryHandler.Handle(r.Context(), q)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, report)
}

// SalesTracker handles GET /reports/sales-tracker
func (h *ReportHandler) SalesTracker(w http.ResponseWriter, r *http.Request) {
	entries, err := h.salesTrackerHandler.Handle(r.Context(), query.SalesTrackerQuery{})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, entries)
}

// Dashboard handles GET /reports/dashboard
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardHandler.Handle(r.Context(), query.DashboardQuery{})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, dashboard)
}

// respondJSON sends a JSON response
func (h *ReportHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *ReportHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/reports/daily-summary", h.metricsMiddleware("/reports/daily-summary", h.DailySummary)).Methods("GET")
	router.HandleFunc("/reports/sales-tracker", h.metricsMiddleware("/reports/sales-tracker", h.SalesTracker)).Methods("GET")
	router.HandleFunc("/reports/dashboard", h.metricsMiddleware("/reports/dashboard", h.Dashboard)).Methods("GET")
}
