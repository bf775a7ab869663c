package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration, populated from
// environment variables.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Auction AuctionConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// AuctionConfig carries the tunables of the auction lifecycle.
type AuctionConfig struct {
	// BiddingPeriodMonths is how far in the future a new lot's
	// bidding end date is set.
	BiddingPeriodMonths int
	// RenewalPeriodDays is how far an expired unbid lot's end date
	// is pushed out on renewal.
	RenewalPeriodDays int
	// ListingCacheTTLSeconds bounds staleness of the cached listings.
	ListingCacheTTLSeconds int
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Auction API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 15),
		},
		Auction: AuctionConfig{
			BiddingPeriodMonths:    getEnvInt("AUCTION_BIDDING_PERIOD_MONTHS", 3),
			RenewalPeriodDays:      getEnvInt("AUCTION_RENEWAL_PERIOD_DAYS", 30),
			ListingCacheTTLSeconds: getEnvInt("AUCTION_LISTING_CACHE_TTL", 30),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that critical settings are sane.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	if c.Auction.RenewalPeriodDays <= 0 {
		return fmt.Errorf("AUCTION_RENEWAL_PERIOD_DAYS must be positive")
	}
	if c.Auction.BiddingPeriodMonths <= 0 {
		return fmt.Errorf("AUCTION_BIDDING_PERIOD_MONTHS must be positive")
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
