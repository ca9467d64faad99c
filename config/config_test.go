package config

import (
	"os"
	"testing"
	"time"
)

func TestGet_Singleton(t *testing.T) {
	// Reset for clean test
	Reload()

	// Get config twice
	cfg1 := Get()
	cfg2 := Get()

	// Should be the same instance
	if cfg1 != cfg2 {
		t.Error("Get() should return the same instance (singleton pattern)")
	}
}

func TestConfig_Validation(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		shouldPanic bool
	}{
		{
			name: "valid config",
			env: map[string]string{
				"SERVER_PORT": "8080",
				"ENV":         "development",
				"LOG_LEVEL":   "info",
			},
			shouldPanic: false,
		},
		{
			name: "invalid port",
			env: map[string]string{
				"SERVER_PORT": "invalid",
			},
			shouldPanic: true,
		},
		{
			name: "invalid environment",
			env: map[string]string{
				"ENV": "invalid",
			},
			shouldPanic: true,
		},
		{
			name: "invalid log level",
			env: map[string]string{
				"LOG_LEVEL": "invalid",
			},
			shouldPanic: true,
		},
		{
			name: "invalid auth provider",
			env: map[string]string{
				"AUTH_PROVIDER": "okta",
			},
			shouldPanic: true,
		},
		{
			name: "google provider without client id",
			env: map[string]string{
				"AUTH_PROVIDER": "google",
			},
			shouldPanic: true,
		},
		{
			name: "google provider with client id",
			env: map[string]string{
				"AUTH_PROVIDER":    "google",
				"GOOGLE_CLIENT_ID": "123456789012-abcdefg.apps.googleusercontent.com",
			},
			shouldPanic: false,
		},
		{
			name: "invalid auth service url",
			env: map[string]string{
				"AUTH_SERVICE_URL": "not a url",
			},
			shouldPanic: true,
		},
		{
			name: "invalid database driver",
			env: map[string]string{
				"DB_DRIVER": "oracle",
			},
			shouldPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Backup original environment
			originalEnv := backupEnv()
			defer restoreEnv(originalEnv)

			// Set test environment
			for key, value := range tt.env {
				os.Setenv(key, value)
			}

			// Reset singleton
			Reload()

			// Test
			if tt.shouldPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Error("Expected panic but didn't get one")
					}
				}()
			}

			cfg := Get()
			if !tt.shouldPanic && cfg == nil {
				t.Error("Expected valid config but got nil")
			}
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	originalEnv := backupEnv()
	defer restoreEnv(originalEnv)

	// Clear relevant environment variables
	for _, key := range configEnvKeys() {
		os.Unsetenv(key)
	}

	Reload()
	cfg := Get()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("expected default read timeout 15s, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Auth.Provider != "service" {
		t.Errorf("expected default auth provider 'service', got %s", cfg.Auth.Provider)
	}
	if cfg.Auth.RequestTimeout != 5*time.Second {
		t.Errorf("expected default auth request timeout 5s, got %s", cfg.Auth.RequestTimeout)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected default database driver 'sqlite', got %s", cfg.Database.Driver)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected default environment to be development")
	}
}

func TestConfig_GetServerAddress(t *testing.T) {
	originalEnv := backupEnv()
	defer restoreEnv(originalEnv)

	os.Setenv("SERVER_HOST", "0.0.0.0")
	os.Setenv("SERVER_PORT", "9090")
	Reload()

	cfg := Get()
	if addr := cfg.GetServerAddress(); addr != "0.0.0.0:9090" {
		t.Errorf("expected address 0.0.0.0:9090, got %s", addr)
	}
}

// configEnvKeys lists every environment variable the config reads
func configEnvKeys() []string {
	return []string{
		"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"APP_NAME", "APP_VERSION", "ENV", "DEBUG",
		"AUTH_PROVIDER", "AUTH_SERVICE_URL", "AUTH_SERVICE_KEY", "GOOGLE_CLIENT_ID", "AUTH_REQUEST_TIMEOUT",
		"DB_DRIVER", "DB_DSN",
		"JANITOR_SHORT_CLEAN_INTERVAL", "JANITOR_FULL_CLEAN_INTERVAL",
	}
}

// backupEnv saves the config-relevant environment variables
func backupEnv() map[string]string {
	backup := make(map[string]string)
	for _, key := range configEnvKeys() {
		if value, exists := os.LookupEnv(key); exists {
			backup[key] = value
		}
	}
	return backup
}

// restoreEnv restores environment variables from backup
func restoreEnv(backup map[string]string) {
	for _, key := range configEnvKeys() {
		if value, exists := backup[key]; exists {
			os.Setenv(key, value)
		} else {
			os.Unsetenv(key)
		}
	}
	Reload()
}
