package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Auth        AuthConfig
	Resend      ResendConfig
	FedEx       FedExConfig
	CORS        CORSConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AuthConfig holds the JWT signing secret and token lifetime.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// ResendConfig is used to send transactional email through Resend
type ResendConfig struct {
	APIKey      string
	FromAddress string // e.g. "TheGoodCameraStore <store@example.com>"
}

// FedExConfig is used to fetch shipping-rate quotes from the FedEx sandbox
type FedExConfig struct {
	BaseURL       string
	ClientID      string
	ClientSecret  string
	AccountNumber string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// .env is optional; real env vars always win
	_ = godotenv.Load()

	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("FEDEX_BASE_URL", "https://apis-sandbox.fedex.com")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	ttl, err := time.ParseDuration(getEnvOrViper("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "camerastore"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret: strings.TrimSpace(getEnvOrViper("JWT_SECRET", "")),
			TokenTTL:  ttl,
		},
		Resend: ResendConfig{
			APIKey:      strings.TrimSpace(getEnvOrViper("RESEND_API_KEY", "")),
			FromAddress: getEnvOrViper("RESEND_FROM", "TheGoodCameraStore <store@the-brik.com>"),
		},
		FedEx: FedExConfig{
			BaseURL:       strings.TrimSuffix(getEnvOrViper("FEDEX_BASE_URL", "https://apis-sandbox.fedex.com"), "/"),
			ClientID:      strings.TrimSpace(getEnvOrViper("FEDEX_CLIENT_ID", "")),
			ClientSecret:  strings.TrimSpace(getEnvOrViper("FEDEX_CLIENT_SECRET", "")),
			AccountNumber: strings.TrimSpace(getEnvOrViper("FEDEX_ACCOUNT", "")),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitAndTrim(getEnvOrViper("CORS_ORIGINS", "http://localhost:5174,http://127.0.0.1:5174")),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
