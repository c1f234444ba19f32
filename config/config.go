package config

import (
	"fmt"
	"os"
	"sync"

	"minicasino/money"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// Casino configuration
	StartingBalance money.Money // welcome bonus credited to new accounts
	ScratchCardCost money.Money // fixed price of one scratch card

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "test" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		Environment: os.Getenv("ENVIRONMENT"),

		// Defaults
		StartingBalance: money.MustParse("100.00"),
		ScratchCardCost: money.MustParse("1.00"),
	}

	// Override defaults if environment variables are set
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		parsed, err := money.Parse(balance)
		if err != nil {
			return nil, fmt.Errorf("invalid STARTING_BALANCE: %w", err)
		}
		config.StartingBalance = parsed.Quantize()
	}
	if cost := os.Getenv("SCRATCH_CARD_COST"); cost != "" {
		parsed, err := money.ParsePositive(cost)
		if err != nil {
			return nil, fmt.Errorf("invalid SCRATCH_CARD_COST: %w", err)
		}
		config.ScratchCardCost = parsed.Quantize()
	}

	if config.Environment == "" {
		config.Environment = "development"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
