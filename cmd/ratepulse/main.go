package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lehoangvi123/ratepulse/config"
	"github.com/lehoangvi123/ratepulse/internal/api/coingecko"
	"github.com/lehoangvi123/ratepulse/internal/api/currencyapi"
	"github.com/lehoangvi123/ratepulse/internal/api/exchangerateapi"
	"github.com/lehoangvi123/ratepulse/internal/api/exchangeratehost"
	"github.com/lehoangvi123/ratepulse/internal/engine"
	"github.com/lehoangvi123/ratepulse/internal/rates"
	"github.com/lehoangvi123/ratepulse/models"
)

func main() {
	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	setupSignalHandling(cancel)

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// 2. Configure logging
	setupLogging(cfg.LogLevel)
	log.Info().Msg("Starting ratepulse")

	pairs, err := models.ParsePairs(cfg.Pairs)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid PAIRS configuration")
	}
	printConfig(cfg, pairs)

	// 3. Setup API clients
	primary := exchangerateapi.NewClient(exchangerateapi.ClientOptions{
		BaseURL:        cfg.PrimaryRatesURL,
		RequestTimeout: cfg.RequestTimeout,
		RequestsPerSec: cfg.RequestsPerSec,
		MaxRetries:     cfg.MaxRetries,
	})
	secondary := currencyapi.NewClient(currencyapi.ClientOptions{
		BaseURL:        cfg.SecondaryRatesURL,
		RequestTimeout: cfg.RequestTimeout,
		RequestsPerSec: cfg.RequestsPerSec,
		MaxRetries:     cfg.MaxRetries,
	})
	history := exchangeratehost.NewClient(exchangeratehost.ClientOptions{
		BaseURL:        cfg.HistoryURL,
		RequestTimeout: cfg.RequestTimeout,
		RequestsPerSec: cfg.RequestsPerSec,
		MaxRetries:     cfg.MaxRetries,
	})
	crypto := coingecko.NewClient(coingecko.ClientOptions{
		BaseURL:        cfg.CryptoURL,
		RequestTimeout: cfg.RequestTimeout,
		RequestsPerSec: cfg.RequestsPerSec,
		MaxRetries:     cfg.MaxRetries,
	})

	// 4. Start the engine
	eng := engine.New(engine.Options{
		BaseCurrency:    cfg.BaseCurrency,
		Pairs:           pairs,
		CoinIDs:         cfg.CoinIDs,
		HistoryDays:     cfg.HistoryDays(),
		RatesInterval:   cfg.RatesRefreshInterval,
		CryptoInterval:  cfg.CryptoRefreshInterval,
		HistoryInterval: cfg.HistoryRefreshInterval(),
	}, rates.NewFallback(primary, secondary), crypto, history)

	eng.Start(ctx)
	defer eng.Stop()

	// 5. Log snapshots until shutdown
	logSnapshots(ctx, eng)
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
	}()
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}

// printConfig outputs the current configuration
func printConfig(cfg *config.Config, pairs []models.CurrencyPairSpec) {
	log.Info().
		Str("BaseCurrency", cfg.BaseCurrency).
		Int("Pairs", len(pairs)).
		Strs("CoinIDs", cfg.CoinIDs).
		Str("TimeRangeMode", cfg.TimeRangeMode).
		Dur("RatesRefresh", cfg.RatesRefreshInterval).
		Dur("CryptoRefresh", cfg.CryptoRefreshInterval).
		Dur("HistoryRefresh", cfg.HistoryRefreshInterval()).
		Msg("Configuration")
}

// logSnapshots periodically logs the engine's current state so the binary is
// useful on its own, without a UI in front of it.
func logSnapshots(ctx context.Context, eng *engine.Engine) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status := eng.Status()
			log.Info().
				Str("rates", string(status.Rates.State)).
				Str("crypto", string(status.Crypto.State)).
				Str("historical", string(status.Historical.State)).
				Msg("Fetch status")

			for _, record := range eng.PairRates() {
				log.Info().
					Str("pair", record.Pair).
					Float64("rate", record.Rate).
					Float64("change_pct", record.Change.Percentage).
					Msg("Pair rate")
			}
			for _, coin := range eng.CryptoPrices() {
				log.Info().
					Str("symbol", coin.Symbol).
					Float64("price", coin.Price).
					Float64("change_24h", coin.Change24h).
					Msg("Coin price")
			}
		}
	}
}
