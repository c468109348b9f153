// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverLocal = "local"
	DriverMinio = "minio"
)

// DefaultMaxUploadBytes is the largest accepted upload (5 MiB).
const DefaultMaxUploadBytes int64 = 5 * 1024 * 1024

// Config holds all runtime configuration for the service.
type Config struct {
	Port      string
	AppEnv    string
	LogFormat string // "text" or "json"

	JWTSecret     string
	AuthVerifyJWT bool // gate requires a valid JWT instead of mere token presence

	// Upload endpoint
	UploadDir        string
	UploadPublicBase string
	MaxUploadBytes   int64

	// Append logger
	LogDir  string
	LogFile string

	// Frontend served behind the auth gate
	WebDir string

	// Optional upload record persistence; empty disables it
	DatabaseURL string

	// Object storage (S3-compatible), used when StorageDriver is "minio"
	StorageDriver     string
	StorageEndpoint   string
	StorageAccessKey  string
	StorageSecretKey  string
	StorageBucket     string
	StorageUseSSL     bool
	StoragePublicBase string // browser-accessible base URL, e.g. "http://localhost:9000/uploads"
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	return &Config{
		Port:      getEnv("PORT", "8080"),
		AppEnv:    getEnv("APP_ENV", "development"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		JWTSecret:     getEnv("JWT_SECRET", "change_me_in_production"),
		AuthVerifyJWT: getEnv("AUTH_VERIFY_JWT", "false") == "true",

		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		UploadPublicBase: getEnv("UPLOAD_PUBLIC_BASE", "/uploads"),
		MaxUploadBytes:   getEnvInt64("UPLOAD_MAX_BYTES", DefaultMaxUploadBytes),

		LogDir:  getEnv("LOG_DIR", "logs"),
		LogFile: getEnv("LOG_FILE", "log.txt"),

		WebDir: getEnv("WEB_DIR", "web"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		StorageDriver:     getEnv("STORAGE_DRIVER", DriverLocal),
		StorageEndpoint:   getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey:  getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
		StorageSecretKey:  getEnv("STORAGE_SECRET_KEY", "minioadmin"),
		StorageBucket:     getEnv("STORAGE_BUCKET", "uploads"),
		StorageUseSSL:     getEnv("STORAGE_USE_SSL", "false") == "true",
		StoragePublicBase: getEnv("STORAGE_PUBLIC_BASE", "http://localhost:9000/uploads"),
	}
}

// Validate reports configuration that the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.MaxUploadBytes))
	}
	if c.StorageDriver != DriverLocal && c.StorageDriver != DriverMinio {
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverLocal, DriverMinio, c.StorageDriver))
	}
	if c.LogFile == "" {
		errs = append(errs, errors.New("LOG_FILE must not be empty"))
	}
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == "change_me_in_production") {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	return errors.Join(errs...)
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// HasDatabase reports whether upload records should be persisted.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
