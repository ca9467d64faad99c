package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `json:"server"`

	// Logging configuration
	Logging LoggingConfig `json:"logging"`

	// Application configuration
	App AppConfig `json:"app"`

	// Identity verification configuration
	Auth AuthConfig `json:"auth"`

	// Database configuration
	Database DatabaseConfig `json:"database"`

	// Janitor configuration
	Janitor JanitorConfig `json:"janitor"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         string        `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// LoggingConfig holds logging-specific configuration
type LoggingConfig struct {
	Level string `json:"level"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Debug       bool   `json:"debug"`
}

// AuthConfig holds identity-verification configuration.
// Provider "service" verifies bearer tokens against the external auth
// service at ServiceURL; "google" validates Google ID tokens locally.
type AuthConfig struct {
	Provider       string        `json:"provider"`
	ServiceURL     string        `json:"service_url"`
	ServiceKey     string        // ENV only, never serialized
	GoogleClientId string        `json:"google_client_id"`
	RequestTimeout time.Duration `json:"request_timeout"`
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

// JanitorConfig holds janitor-specific configuration
type JanitorConfig struct {
	ShortCleanInterval time.Duration `json:"short_clean_interval"` // Interval between expired-survey sweeps
	FullCleanInterval  time.Duration `json:"full_clean_interval"`  // Interval between deep cleans of soft-deleted rows
}

var (
	instance *Config
	once     sync.Once
	mu       sync.RWMutex
)

// Get returns the singleton configuration instance
func Get() *Config {
	mu.RLock()
	if instance != nil {
		defer mu.RUnlock()
		return instance
	}
	mu.RUnlock()

	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		instance = loadConfig()
	})
	return instance
}

// loadConfig loads configuration from environment variables
func loadConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		App: AppConfig{
			Name:        getEnv("APP_NAME", "aula-backend"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("ENV", "development"),
			Debug:       getEnvAsBool("DEBUG", false),
		},
		Auth: AuthConfig{
			Provider:       getEnv("AUTH_PROVIDER", "service"),
			ServiceURL:     getEnv("AUTH_SERVICE_URL", "http://localhost:9999"),
			ServiceKey:     getEnv("AUTH_SERVICE_KEY", ""),
			GoogleClientId: getEnv("GOOGLE_CLIENT_ID", ""),
			RequestTimeout: getEnvAsDuration("AUTH_REQUEST_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "sqlite"),
			DSN:    getEnv("DB_DSN", "data/aula.db"),
		},
		Janitor: JanitorConfig{
			ShortCleanInterval: getEnvAsDuration("JANITOR_SHORT_CLEAN_INTERVAL", 5*time.Minute),
			FullCleanInterval:  getEnvAsDuration("JANITOR_FULL_CLEAN_INTERVAL", 24*time.Hour),
		},
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("Invalid configuration: %v", err))
	}

	return cfg
}

// validate validates the configuration
func (c *Config) validate() error {
	// Validate server port
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %s", c.Server.Port)
	}

	// Validate environment
	validEnvs := []string{"development", "staging", "production"}
	if !slices.Contains(validEnvs, c.App.Environment) {
		return fmt.Errorf("invalid environment: %s (must be one of: %s)",
			c.App.Environment, strings.Join(validEnvs, ", "))
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			c.Logging.Level, strings.Join(validLevels, ", "))
	}

	// Validate auth provider
	validProviders := []string{"service", "google"}
	if !slices.Contains(validProviders, c.Auth.Provider) {
		return fmt.Errorf("invalid auth provider: %s (must be one of: %s)",
			c.Auth.Provider, strings.Join(validProviders, ", "))
	}
	switch c.Auth.Provider {
	case "service":
		parsed, err := url.Parse(c.Auth.ServiceURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid AUTH_SERVICE_URL: %s", c.Auth.ServiceURL)
		}
	case "google":
		if c.Auth.GoogleClientId == "" {
			return fmt.Errorf("GOOGLE_CLIENT_ID is required when AUTH_PROVIDER is google")
		}
	}

	// Validate database driver
	validDrivers := []string{"sqlite", "postgres"}
	if !slices.Contains(validDrivers, c.Database.Driver) {
		return fmt.Errorf("invalid database driver: %s (must be one of: %s)",
			c.Database.Driver, strings.Join(validDrivers, ", "))
	}

	return nil
}

// IsDevelopment returns true if the app is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the app is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetServerAddress returns the server address in the format "host:port"
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// Reload reloads the configuration (useful for testing or after loading .env files)
func Reload() {
	mu.Lock()
	defer mu.Unlock()
	once = sync.Once{}
	instance = nil
}

// ForceReload forces an immediate reload of the configuration
func ForceReload() {
	mu.Lock()
	defer mu.Unlock()
	instance = loadConfig()
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsBool gets an environment variable as boolean with a fallback value
func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvAsDuration gets an environment variable as duration with a fallback value
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}
