package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Jobs     JobsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// JobsConfig holds tunables for the correction jobs.
type JobsConfig struct {
	AutoAbsenceInterval time.Duration
	BulkBatchSize       int
	PolicyCacheTTL      time.Duration
}

func Load() (*Config, error) {
	// A missing .env is fine in deployed environments; real env vars win.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "crm-backend"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Jobs configuration
	autoAbsenceInterval, err := time.ParseDuration(getEnv("AUTO_ABSENCE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_ABSENCE_INTERVAL: %w", err)
	}
	bulkBatchSize, err := strconv.Atoi(getEnv("BULK_BATCH_SIZE", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid BULK_BATCH_SIZE: %w", err)
	}
	policyCacheTTL, err := time.ParseDuration(getEnv("POLICY_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLICY_CACHE_TTL: %w", err)
	}

	config.Jobs = JobsConfig{
		AutoAbsenceInterval: autoAbsenceInterval,
		BulkBatchSize:       bulkBatchSize,
		PolicyCacheTTL:      policyCacheTTL,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Jobs.BulkBatchSize <= 0 {
		return fmt.Errorf("BULK_BATCH_SIZE must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
