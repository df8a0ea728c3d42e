package common

import (
	"os"
	"strconv"
	"time"
)

// UnknownPolicy controls how an unknown type classification is surfaced.
type UnknownPolicy string

const (
	// UnknownKeep surfaces type as null but keeps amount and description.
	UnknownKeep UnknownPolicy = "keep"
	// UnknownSuppress nulls type, amount and description; fraud stays false.
	UnknownSuppress UnknownPolicy = "suppress"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Backend  BackendConfig
	Extract  ExtractConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Addr string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver      string // "sqlite" or "postgres"
	DSN         string
	DialTimeout time.Duration
}

// BackendConfig holds model-backend configuration
type BackendConfig struct {
	Provider     string // "none", "openai", "gemini"
	Model        string
	APIKey       string
	BaseURL      string
	Temperature  float32
	InferTimeout time.Duration
}

// ExtractConfig holds pipeline thresholds and policy switches
type ExtractConfig struct {
	TypeConfidenceThreshold  float64
	FraudConfidenceThreshold float64
	Unknown                  UnknownPolicy
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: getEnv("SERVER_ADDR", ":8080"),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", "sqlite"),
			DSN:         getEnv("DB_URL", "./smsparse.db"),
			DialTimeout: getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Backend: BackendConfig{
			Provider:     getEnv("BACKEND_PROVIDER", "none"),
			Model:        getEnv("BACKEND_MODEL", "gpt-4o-mini"),
			APIKey:       getEnv("BACKEND_API_KEY", ""),
			BaseURL:      getEnv("BACKEND_BASE_URL", "https://api.openai.com/v1"),
			Temperature:  getEnvAsFloat32("BACKEND_TEMPERATURE", 0.0),
			InferTimeout: getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
		},
		Extract: ExtractConfig{
			TypeConfidenceThreshold:  getEnvAsFloat64("TYPE_CONFIDENCE_THRESHOLD", 0.5),
			FraudConfidenceThreshold: getEnvAsFloat64("FRAUD_CONFIDENCE_THRESHOLD", 0.5),
			Unknown:                  UnknownPolicy(getEnv("UNKNOWN_POLICY", string(UnknownKeep))),
		},
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return NewAppError("CONFIG_ERROR", "DB_DRIVER must be sqlite or postgres", ErrInvalidInput)
	}
	switch c.Backend.Provider {
	case "none", "openai", "gemini":
	default:
		return NewAppError("CONFIG_ERROR", "BACKEND_PROVIDER must be none, openai or gemini", ErrInvalidInput)
	}
	if c.Backend.Provider == "openai" && c.Backend.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "BACKEND_API_KEY is required for the openai provider", ErrInvalidInput)
	}
	switch c.Extract.Unknown {
	case UnknownKeep, UnknownSuppress:
	default:
		return NewAppError("CONFIG_ERROR", "UNKNOWN_POLICY must be keep or suppress", ErrInvalidInput)
	}
	if c.Extract.TypeConfidenceThreshold <= 0 || c.Extract.TypeConfidenceThreshold >= 1 {
		return NewAppError("CONFIG_ERROR", "TYPE_CONFIDENCE_THRESHOLD must be in (0,1)", ErrInvalidInput)
	}
	if c.Extract.FraudConfidenceThreshold <= 0 || c.Extract.FraudConfidenceThreshold >= 1 {
		return NewAppError("CONFIG_ERROR", "FRAUD_CONFIDENCE_THRESHOLD must be in (0,1)", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
