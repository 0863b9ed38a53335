package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	BaseCurrency string // base for rate tables and historical series
	Pairs        string // comma-separated "FROM/TO" list
	CoinIDs      []string

	RatesRefreshInterval  time.Duration
	CryptoRefreshInterval time.Duration
	TimeRangeMode         string // 24h | 7d | 30d, drives history window and cadence

	RequestTimeout time.Duration
	RequestsPerSec int
	MaxRetries     int

	PrimaryRatesURL   string
	SecondaryRatesURL string
	HistoryURL        string
	CryptoURL         string

	LogLevel string
}

// Load initializes configuration from environment variables, reading a .env
// file first when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{
		BaseCurrency: strings.ToUpper(getEnvWithDefault("BASE_CURRENCY", "USD")),
		Pairs:        getEnvWithDefault("PAIRS", "EUR/USD,GBP/USD,USD/JPY,USD/VND,AUD/USD,USD/CHF"),
		CoinIDs:      splitList(getEnvWithDefault("COIN_IDS", "bitcoin,ethereum,binancecoin,solana,ripple,cardano")),

		RatesRefreshInterval:  time.Duration(getEnvIntWithDefault("RATES_REFRESH_SECONDS", 60)) * time.Second,
		CryptoRefreshInterval: time.Duration(getEnvIntWithDefault("CRYPTO_REFRESH_SECONDS", 120)) * time.Second,
		TimeRangeMode:         getEnvWithDefault("TIME_RANGE_MODE", "30d"),

		RequestTimeout: time.Duration(getEnvIntWithDefault("REQUEST_TIMEOUT", 15)) * time.Second,
		RequestsPerSec: getEnvIntWithDefault("REQUESTS_PER_SEC", 4),
		MaxRetries:     getEnvIntWithDefault("MAX_RETRIES", 0),

		PrimaryRatesURL:   getEnvWithDefault("PRIMARY_RATES_URL", "https://api.exchangerate-api.com/v4"),
		SecondaryRatesURL: getEnvWithDefault("SECONDARY_RATES_URL", "https://cdn.jsdelivr.net/gh/fawazahmed0/currency-api@1/latest"),
		HistoryURL:        getEnvWithDefault("HISTORY_URL", "https://api.exchangerate.host"),
		CryptoURL:         getEnvWithDefault("CRYPTO_URL", "https://api.coingecko.com/api/v3"),

		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// HistoryDays returns the historical window size for the configured
// time-range mode.
func (c *Config) HistoryDays() int {
	switch c.TimeRangeMode {
	case "24h":
		return 1
	case "7d":
		return 7
	default:
		return 30
	}
}

// HistoryRefreshInterval returns the historical refresh cadence for the
// configured time-range mode. Short windows refresh more often.
func (c *Config) HistoryRefreshInterval() time.Duration {
	if c.TimeRangeMode == "24h" {
		return time.Duration(getEnvIntWithDefault("HISTORY_REFRESH_SECONDS", 120)) * time.Second
	}
	return time.Duration(getEnvIntWithDefault("HISTORY_REFRESH_SECONDS", 300)) * time.Second
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
