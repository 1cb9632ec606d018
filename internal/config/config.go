// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
)

// defaultSecretKey is the fixed application-wide encryption key for the local
// credential store. It is a shared compatibility secret, not a security
// boundary: it ships inside the binary. STOCKPANEL_SECRET_KEY overrides it.
const defaultSecretKey = "stockpanel-local-credential-key!"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIBaseURL string
	ListenAddr string
	DBPath     string
	SecretKey  []byte
}

// Load reads configuration from environment variables and returns a validated
// Config. STOCKPANEL_API_BASE_URL is required. Optional variables with
// defaults: STOCKPANEL_LISTEN_ADDR (127.0.0.1:8080), STOCKPANEL_DB_PATH
// (stockpanel.db), STOCKPANEL_SECRET_KEY (built-in fixed key; overrides must
// be exactly 32 bytes for AES-256).
func Load() (*Config, error) {
	apiBaseURL := os.Getenv("STOCKPANEL_API_BASE_URL")
	if apiBaseURL == "" {
		return nil, fmt.Errorf("STOCKPANEL_API_BASE_URL is required")
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("STOCKPANEL_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "stockpanel.db"
	if v, ok := os.LookupEnv("STOCKPANEL_DB_PATH"); ok {
		dbPath = v
	}

	secretKey := []byte(defaultSecretKey)
	if v, ok := os.LookupEnv("STOCKPANEL_SECRET_KEY"); ok {
		if len(v) != 32 {
			return nil, fmt.Errorf("STOCKPANEL_SECRET_KEY must be exactly 32 bytes, got %d", len(v))
		}
		secretKey = []byte(v)
	}

	return &Config{
		APIBaseURL: apiBaseURL,
		ListenAddr: listenAddr,
		DBPath:     dbPath,
		SecretKey:  secretKey,
	}, nil
}
