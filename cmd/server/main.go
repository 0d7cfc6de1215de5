package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/ayethu/autoparts-backend/internal/app"
	customerdomain "github.com/ayethu/autoparts-backend/internal/customer/domain"
	invoicedomain "github.com/ayethu/autoparts-backend/internal/invoice/domain"
	itemdomain "github.com/ayethu/autoparts-backend/internal/item/domain"
	"github.com/ayethu/autoparts-backend/kafka"
	"github.com/ayethu/autoparts-backend/pkg/database"
	"github.com/ayethu/autoparts-backend/pkg/logger"
	"github.com/ayethu/autoparts-backend/pkg/tracing"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	serviceName := getEnv("OTEL_SERVICE_NAME", "autoparts-backend")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting autoparts backend")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Optional Kafka publisher
	var publisher *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize Kafka publisher")
		}
		defer publisher.Close()

		startLowStockConsumer(strings.Split(brokers, ","))
	}

	var handlers *app.Handlers
	var sqlDB *sql.DB

	switch driver := getEnv("STORAGE_DRIVER", "postgres"); driver {
	case "memory":
		logger.Logger.Warn().Msg("Using in-memory storage, data will not survive a restart")
		handlers = app.InitializeMemoryHandlers(publisher)

	case "postgres":
		dbConfig := database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "autopartsdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		}

		db, err := database.NewGormConnection(dbConfig)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
		}

		sqlDB, err = db.DB()
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
		}
		defer sqlDB.Close()

		// Run migrations
		if err := db.AutoMigrate(
			&itemdomain.Item{},
			&customerdomain.Customer{},
			&invoicedomain.Invoice{},
			&invoicedomain.InvoiceLine{},
		); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}

		logger.Logger.Info().Msg("Database initialized successfully")

		handlers, err = app.InitializeHandlers(db, publisher)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize handlers")
		}

	default:
		logger.Logger.Fatal().Str("driver", driver).Msg("Unknown storage driver")
	}

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8080")
	server := buildHTTPServer(handlers, sqlDB, httpPort)

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}

func buildHTTPServer(handlers *app.Handlers, db *sql.DB, port string) *http.Server {
	// Setup router
	router := mux.NewRouter()

	// Logging and tracing middlewares
	app.RegisterMiddlewares(router)

	// Register routes
	handlers.RegisterRoutes(router)

	// Health check endpoint
	router.HandleFunc("/health", healthCheck(db)).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return &http.Server{
		Addr:    ":" + port,
		Handler: c.Handler(router),
	}
}

// healthCheck reports database connectivity; the memory driver has no
// database and is always healthy
func healthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"unhealthy"}`))
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}
}

// startLowStockConsumer logs restock alerts coming back from the broker
func startLowStockConsumer(brokers []string) {
	consumer, err := kafka.NewConsumer(brokers, "autoparts-backend", []string{kafka.TopicLowStock})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize low stock consumer")
		return
	}

	consumer.RegisterLowStockHandler(func(ctx context.Context, event kafka.LowStockEvent) error {
		logger.Logger.Warn().
			Uint("item_id", event.ItemID).
			Str("name", event.Name).
			Int("quantity", event.Quantity).
			Int("threshold", event.Threshold).
			Msg("Item is running low on stock")
		return nil
	})

	go func() {
		if err := consumer.Start(context.Background()); err != nil {
			logger.Logger.Error().Err(err).Msg("Low stock consumer stopped")
		}
	}()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
