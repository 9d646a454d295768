package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// DefaultProductResourceURL is the hosted mock collection the dashboard was built against
const DefaultProductResourceURL = "https://62fb62afe4bcaf5351837ac1.mockapi.io/product"

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Inventory InventoryConfig
	MockAPI   MockAPIConfig
	LogLevel  string
}

type ServerConfig struct {
	Port               string
	Host               string
	ReadTimeout        int
	WriteTimeout       int
	ShutdownTimeout    int
	CORSAllowedOrigins []string
}

// AuthConfig controls the session marker cookie and the routing guard
type AuthConfig struct {
	CookieName        string
	CookieSecure      bool
	SessionTTLHours   int
	LoginPath         string
	DashboardPath     string
	ProtectedPrefixes []string
}

// InventoryConfig points the synchronizer at the remote product collection
type InventoryConfig struct {
	ResourceURL    string
	RequestTimeout int     // seconds, 0 disables the timeout
	RateLimit      float64 // requests per second, 0 disables throttling
	RateBurst      int
}

// MockAPIConfig configures the local stand-in for the remote collection
type MockAPIConfig struct {
	Port string
	Host string
	Seed bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			Host:               getEnv("HOST", "0.0.0.0"),
			ReadTimeout:        getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:       getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout:    getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Auth: AuthConfig{
			CookieName:        getEnv("AUTH_COOKIE_NAME", "token"),
			CookieSecure:      getEnvAsBool("AUTH_COOKIE_SECURE", false),
			SessionTTLHours:   getEnvAsInt("AUTH_SESSION_TTL_HOURS", 7*24),
			LoginPath:         getEnv("LOGIN_PATH", "/login"),
			DashboardPath:     getEnv("DASHBOARD_PATH", "/dashboard"),
			ProtectedPrefixes: getEnvAsSlice("PROTECTED_PREFIXES", []string{"/dashboard", "/products", "/settings"}),
		},
		Inventory: InventoryConfig{
			ResourceURL:    getEnv("PRODUCT_RESOURCE_URL", DefaultProductResourceURL),
			RequestTimeout: getEnvAsInt("REMOTE_TIMEOUT", 0),
			RateLimit:      getEnvAsFloat("REMOTE_RATE_LIMIT", 0),
			RateBurst:      getEnvAsInt("REMOTE_RATE_BURST", 1),
		},
		MockAPI: MockAPIConfig{
			Port: getEnv("MOCKAPI_PORT", "8081"),
			Host: getEnv("MOCKAPI_HOST", "0.0.0.0"),
			Seed: getEnvAsBool("MOCKAPI_SEED", true),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Auth.CookieName == "" {
		return fmt.Errorf("AUTH_COOKIE_NAME is required")
	}

	if c.Auth.SessionTTLHours <= 0 {
		return fmt.Errorf("AUTH_SESSION_TTL_HOURS must be positive")
	}

	if !strings.HasPrefix(c.Auth.LoginPath, "/") || !strings.HasPrefix(c.Auth.DashboardPath, "/") {
		return fmt.Errorf("LOGIN_PATH and DASHBOARD_PATH must be absolute paths")
	}

	for _, prefix := range c.Auth.ProtectedPrefixes {
		if !strings.HasPrefix(prefix, "/") {
			return fmt.Errorf("invalid protected prefix: %s (must start with /)", prefix)
		}
		if strings.HasSuffix(prefix, "/") {
			return fmt.Errorf("invalid protected prefix: %s (must not be / or end with /)", prefix)
		}
	}

	u, err := url.Parse(c.Inventory.ResourceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid PRODUCT_RESOURCE_URL: %q", c.Inventory.ResourceURL)
	}

	if c.Inventory.RequestTimeout < 0 {
		return fmt.Errorf("REMOTE_TIMEOUT must not be negative")
	}

	if c.Inventory.RateLimit < 0 {
		return fmt.Errorf("REMOTE_RATE_LIMIT must not be negative")
	}

	if c.Inventory.RateLimit > 0 && c.Inventory.RateBurst < 1 {
		return fmt.Errorf("REMOTE_RATE_BURST must be at least 1 when rate limiting is enabled")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
