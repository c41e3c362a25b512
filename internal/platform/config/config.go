// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	StorageDir        string
	StorageBaseURL    string
	RateLimit         string // ulule/limiter formatted rate, e.g. "100-M"
	CORSAllowOrigins  []string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Environment variables win over .env values.
func LoadConfig() (*Config, error) {
	// Ignore the error; a missing .env file is the normal production case.
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "clearbooks-backend")
	viper.SetDefault("STORAGE_DIR", "./data/documents")
	viper.SetDefault("STORAGE_BASE_URL", "/files")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		JWTIssuer:        viper.GetString("JWT_ISSUER"),
		StorageDir:       viper.GetString("STORAGE_DIR"),
		StorageBaseURL:   viper.GetString("STORAGE_BASE_URL"),
		RateLimit:        viper.GetString("RATE_LIMIT"),
		CORSAllowOrigins: viper.GetStringSlice("CORS_ALLOW_ORIGINS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL environment variable is required")
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in production")
		}
		cfg.JWTSecret = "insecure-development-secret-change-me"
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	expiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	expiry, err := time.ParseDuration(expiryStr)
	if err != nil {
		expiry = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", expiryStr, expiry)
	}
	cfg.JWTExpiryDuration = expiry

	return cfg, nil
}
