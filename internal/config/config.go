package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultJWTSecret = "your-secret-key-change-in-production"

	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config is populated from environment variables.
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Loan    LoanConfig
	Log     LogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// StorageConfig selects the record store backend.
// "memory" keeps everything in process and skips Postgres/Redis entirely.
type StorageConfig struct {
	Driver string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
	Enabled  bool
	BookTTL  time.Duration
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// LoanConfig drives due-date computation for new loans.
type LoanConfig struct {
	DurationDays int
}

// Duration returns the loan window as a time.Duration.
func (l LoanConfig) Duration() time.Duration {
	return time.Duration(l.DurationDays) * 24 * time.Hour
}

type LogConfig struct {
	Level string
}

// Load reads and validates the configuration.
func Load() (*Config, error) {
	bookTTL, err := time.ParseDuration(getEnv("REDIS_BOOK_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_BOOK_TTL: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bibliotheque API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			BookTTL:  bookTTL,
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 24*60),
		},
		Loan: LoanConfig{
			DurationDays: getEnvInt("LOAN_DURATION_DAYS", 14),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q",
			StorageDriverPostgres, StorageDriverMemory, c.Storage.Driver)
	}

	if c.Loan.DurationDays <= 0 {
		return fmt.Errorf("LOAN_DURATION_DAYS must be positive, got %d", c.Loan.DurationDays)
	}

	if c.JWT.AccessTokenExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive, got %d", c.JWT.AccessTokenExpiry)
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Storage.Driver == StorageDriverMemory {
			return fmt.Errorf("STORAGE_DRIVER=memory is not allowed in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvBool(key string, defaultValue bool) bool {
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
