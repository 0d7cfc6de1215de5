package config

import (
	"os"
	"strings"
	"time"
)

// ServiceConfig holds configuration for a backend service
type ServiceConfig struct {
	Name        string
	BaseURL     string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port     string
	Services map[string]ServiceConfig
}

// LoadConfig loads the gateway configuration. The shop backend is one
// service; CORE_SERVICE_URLS may list several instances for round-robin.
func LoadConfig() *GatewayConfig {
	coreURLs := strings.Split(getEnv("CORE_SERVICE_URLS", "http://localhost:8080"), ",")

	return &GatewayConfig{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Services: map[string]ServiceConfig{
			"core": {
				Name:        "autoparts-backend",
				BaseURL:     coreURLs[0],
				Instances:   coreURLs,
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
