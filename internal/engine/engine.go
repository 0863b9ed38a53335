// Package engine owns the refresh lifecycle and exposes the outward API the
// presentation layer consumes: current pair rates, crypto prices, historical
// series, conversion, status and manual retry.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lehoangvi123/ratepulse/internal/apperrors"
	"github.com/lehoangvi123/ratepulse/internal/rates"
	"github.com/lehoangvi123/ratepulse/models"
)

// RateFetcher fetches the latest rate table. In production this is the
// source fallback chain.
type RateFetcher interface {
	FetchLatest(ctx context.Context, base string) (*models.RateTable, error)
}

// CryptoFetcher fetches current coin quotes.
type CryptoFetcher interface {
	FetchPrices(ctx context.Context, coinIDs []string) ([]models.CoinPriceRecord, error)
}

// HistoryFetcher fetches a date-ranged daily rate timeseries.
type HistoryFetcher interface {
	FetchTimeseries(ctx context.Context, base string, symbols []string, start, end time.Time) (map[string]map[string]float64, error)
}

type category int

const (
	catRates category = iota
	catCrypto
	catHistory
	catCount
)

func (c category) String() string {
	switch c {
	case catRates:
		return "rates"
	case catCrypto:
		return "crypto"
	default:
		return "historical"
	}
}

// Options configures an Engine.
type Options struct {
	BaseCurrency    string
	Pairs           []models.CurrencyPairSpec
	CoinIDs         []string
	HistoryDays     int
	RatesInterval   time.Duration
	CryptoInterval  time.Duration
	HistoryInterval time.Duration
}

// Engine periodically refreshes the three data categories and publishes the
// results as immutable snapshots. Each category refreshes independently and
// has at most one fetch in flight: a tick or retry that lands while a fetch
// for the same category is pending is dropped, not queued.
type Engine struct {
	opts       Options
	ratesSrc   RateFetcher
	cryptoSrc  CryptoFetcher
	historySrc HistoryFetcher
	pairs      *rates.PairBuilder
	series     *rates.SeriesBuilder
	logger     zerolog.Logger

	mu          sync.Mutex
	table       *models.RateTable
	pairRecords []models.PairRateRecord
	coinRecords []models.CoinPriceRecord
	histSeries  map[string][]models.HistoricalPoint
	status      models.FetchStatus
	inFlight    [catCount]bool
	running     bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an Engine. Start must be called before any data is available.
func New(opts Options, ratesSrc RateFetcher, cryptoSrc CryptoFetcher, historySrc HistoryFetcher) *Engine {
	return &Engine{
		opts:       opts,
		ratesSrc:   ratesSrc,
		cryptoSrc:  cryptoSrc,
		historySrc: historySrc,
		pairs:      rates.NewPairBuilder(),
		series:     rates.NewSeriesBuilder(),
		logger:     log.With().Str("component", "engine").Logger(),
		status: models.FetchStatus{
			Rates:      models.CategoryStatus{State: models.StatePending},
			Crypto:     models.CategoryStatus{State: models.StatePending},
			Historical: models.CategoryStatus{State: models.StatePending},
		},
	}
}

// Start kicks off an immediate refresh of every category and begins the
// periodic refresh loops. It is a no-op when the engine is already running.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.ctx, e.cancel = context.WithCancel(ctx)
	e.mu.Unlock()

	e.Retry()

	e.loop(catRates, e.opts.RatesInterval)
	e.loop(catCrypto, e.opts.CryptoInterval)
	e.loop(catHistory, e.opts.HistoryInterval)
}

// Stop cancels the refresh loops and waits for in-flight fetches to return.
// Results arriving after Stop are discarded.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	cancel := e.cancel
	e.mu.Unlock()

	cancel()
	e.wg.Wait()
}

// Retry triggers an immediate refresh of all three categories, bypassing the
// timers. Categories with a fetch already in flight are skipped.
func (e *Engine) Retry() {
	for cat := catRates; cat < catCount; cat++ {
		cat := cat
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			e.refresh(cat)
		}()
	}
}

func (e *Engine) loop(cat category, interval time.Duration) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-e.ctx.Done():
				return
			case <-ticker.C:
				e.refresh(cat)
			}
		}
	}()
}

// refresh runs one fetch cycle for a category. Returns false when the cycle
// was dropped because another fetch for the category was still pending.
func (e *Engine) refresh(cat category) bool {
	e.mu.Lock()
	if !e.running || e.inFlight[cat] {
		e.mu.Unlock()
		e.logger.Debug().Stringer("category", cat).Msg("Refresh skipped, fetch in flight")
		return false
	}
	e.inFlight[cat] = true
	ctx := e.ctx
	e.mu.Unlock()

	var err error
	switch cat {
	case catRates:
		err = e.refreshRates(ctx)
	case catCrypto:
		err = e.refreshCrypto(ctx)
	case catHistory:
		err = e.refreshHistory(ctx)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight[cat] = false
	if ctx.Err() != nil {
		// Engine stopped while the fetch was out; status keeps its
		// last real value.
		return true
	}
	st := e.categoryStatus(cat)
	if err != nil {
		e.logger.Error().Err(err).Stringer("category", cat).Msg("Refresh failed")
		st.State = models.StateFailed
		st.LastError = err.Error()
	} else {
		st.State = models.StateReady
		st.LastError = ""
		st.LastSuccess = time.Now().UTC()
	}
	return true
}

func (e *Engine) categoryStatus(cat category) *models.CategoryStatus {
	switch cat {
	case catRates:
		return &e.status.Rates
	case catCrypto:
		return &e.status.Crypto
	default:
		return &e.status.Historical
	}
}

func (e *Engine) refreshRates(ctx context.Context) error {
	table, err := e.ratesSrc.FetchLatest(ctx, e.opts.BaseCurrency)
	if err != nil {
		return err
	}
	records := e.pairs.Build(table, e.opts.Pairs)

	e.mu.Lock()
	if ctx.Err() == nil {
		e.table = table
		e.pairRecords = records
	}
	e.mu.Unlock()
	return nil
}

func (e *Engine) refreshCrypto(ctx context.Context) error {
	records, err := e.cryptoSrc.FetchPrices(ctx, e.opts.CoinIDs)
	if err != nil {
		return err
	}

	e.mu.Lock()
	if ctx.Err() == nil {
		e.coinRecords = records
	}
	e.mu.Unlock()
	return nil
}

func (e *Engine) refreshHistory(ctx context.Context) error {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -e.opts.HistoryDays)

	raw, err := e.historySrc.FetchTimeseries(ctx, e.opts.BaseCurrency, e.historySymbols(), start, end)
	if err != nil {
		return err
	}

	series, err := e.series.Build(e.opts.BaseCurrency, raw, e.opts.Pairs)
	if err != nil {
		// No dates in the window is "nothing to chart", not a failure.
		e.logger.Warn().Err(err).Msg("No historical data available")
		series = map[string][]models.HistoricalPoint{}
	}

	e.mu.Lock()
	if ctx.Err() == nil {
		e.histSeries = series
	}
	e.mu.Unlock()
	return nil
}

// historySymbols collects every non-base currency the configured pairs touch.
func (e *Engine) historySymbols() []string {
	seen := map[string]bool{}
	var symbols []string
	for _, spec := range e.opts.Pairs {
		for _, code := range []string{spec.From, spec.To} {
			if code != e.opts.BaseCurrency && !seen[code] {
				seen[code] = true
				symbols = append(symbols, code)
			}
		}
	}
	return symbols
}

// PairRates returns the pair rate records from the last successful rates
// refresh.
func (e *Engine) PairRates() []models.PairRateRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.PairRateRecord, len(e.pairRecords))
	copy(out, e.pairRecords)
	return out
}

// CryptoPrices returns the coin price records from the last successful crypto
// refresh.
func (e *Engine) CryptoPrices() []models.CoinPriceRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.CoinPriceRecord, len(e.coinRecords))
	copy(out, e.coinRecords)
	return out
}

// HistoricalSeries returns the historical points for a pair, or nil when no
// series is held for it.
func (e *Engine) HistoricalSeries(pair string) []models.HistoricalPoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	points, ok := e.histSeries[pair]
	if !ok {
		return nil
	}
	out := make([]models.HistoricalPoint, len(points))
	copy(out, points)
	return out
}

// Convert converts amount between two currencies using the current rate
// table. Fails with apperrors.ErrNoRates before the first successful rates
// refresh.
func (e *Engine) Convert(from, to string, amount float64) (models.ConversionResult, error) {
	e.mu.Lock()
	table := e.table
	e.mu.Unlock()

	if table == nil {
		return models.ConversionResult{}, apperrors.ErrNoRates
	}
	return rates.Convert(table, from, to, amount)
}

// Status returns the current per-category fetch status.
func (e *Engine) Status() models.FetchStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}
