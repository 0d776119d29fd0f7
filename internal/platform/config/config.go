package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                string
	DatabaseURL         string
	ExternalDatabaseURL string
	JWTSecret           string
	Environment         string
	RunMigrations       bool
	MetricsEnabled      bool
	MaxBodyBytes        int64

	// Default weekly targets applied to a new plan's productivity report.
	TargetVisits         int
	TargetAssistedVisits int
	TargetCalls          int
	TargetEmails         int
	TargetQuotations     int
	ObjectiveScore       int

	// External quotations system.
	ExternalQueryTimeout time.Duration

	// Remote photo-evidence storage (FTP).
	StorageHost     string
	StorageUser     string
	StoragePassword string
	StorageBasePath string
	StorageTimeout  time.Duration
}

func Load() Config {
	return Config{
		Addr:                 getEnv("APP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		ExternalDatabaseURL:  getEnv("EXTERNAL_DATABASE_URL", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		Environment:          getEnv("APP_ENV", "development"),
		RunMigrations:        getEnvBool("RUN_MIGRATIONS", true),
		MetricsEnabled:       getEnvBool("METRICS_ENABLED", true),
		MaxBodyBytes:         int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		TargetVisits:         getEnvInt("KPI_TARGET_VISITS", 25),
		TargetAssistedVisits: getEnvInt("KPI_TARGET_ASSISTED_VISITS", 0),
		TargetCalls:          getEnvInt("KPI_TARGET_CALLS", 30),
		TargetEmails:         getEnvInt("KPI_TARGET_EMAILS", 100),
		TargetQuotations:     getEnvInt("KPI_TARGET_QUOTATIONS", 0),
		ObjectiveScore:       getEnvInt("KPI_OBJECTIVE_SCORE", 205),
		ExternalQueryTimeout: getEnvDuration("EXTERNAL_QUERY_TIMEOUT", 5*time.Second),
		StorageHost:          getEnv("STORAGE_FTP_HOST", ""),
		StorageUser:          getEnv("STORAGE_FTP_USER", ""),
		StoragePassword:      getEnv("STORAGE_FTP_PASSWORD", ""),
		StorageBasePath:      getEnv("STORAGE_FTP_BASE_PATH", "public_html"),
		StorageTimeout:       getEnvDuration("STORAGE_FTP_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.ObjectiveScore < 0 {
		return fmt.Errorf("KPI_OBJECTIVE_SCORE must not be negative")
	}
	if c.ExternalQueryTimeout <= 0 {
		return fmt.Errorf("EXTERNAL_QUERY_TIMEOUT must be positive")
	}
	return nil
}
