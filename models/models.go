package models

import (
	"time"
)

// RateTable is a normalized snapshot of exchange rates against a single base
// currency. It is built fresh on every successful fetch and never mutated;
// the next successful fetch replaces the whole table.
type RateTable struct {
	Base  string             `json:"base"`
	AsOf  time.Time          `json:"as_of"`
	Rates map[string]float64 `json:"rates"`
}

// Rate returns the rate for a currency code. The base currency is always 1,
// whether or not the upstream payload listed it.
func (t *RateTable) Rate(code string) (float64, bool) {
	if code == t.Base {
		return 1, true
	}
	r, ok := t.Rates[code]
	if !ok || r <= 0 {
		return 0, false
	}
	return r, true
}

// CurrencyPairSpec is static configuration for one tracked currency pair.
type CurrencyPairSpec struct {
	Pair  string `json:"pair"` // "EUR/USD"
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// RateChange is the display-only change indicator attached to a pair rate.
// It is derived from a simulated previous rate, not a real historical
// snapshot.
type RateChange struct {
	Delta      float64 `json:"delta"`
	Percentage float64 `json:"percentage"`
	IsPositive bool    `json:"is_positive"`
}

// PairRateRecord is the current rate for one configured pair, recomputed from
// the latest RateTable on every refresh cycle.
type PairRateRecord struct {
	Pair        string     `json:"pair"`
	Rate        float64    `json:"rate"`
	LastUpdated time.Time  `json:"last_updated"`
	Change      RateChange `json:"change"`
}

// HistoricalPoint is one day of a per-pair rate series. Open, High, Low and
// Volume are synthesized from the daily rate for charting, since the upstream
// provides a single closing rate per day.
type HistoricalPoint struct {
	Date      string  `json:"date"` // "2006-01-02"
	Timestamp int64   `json:"timestamp"`
	Rate      float64 `json:"rate"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// ConversionResult is the outcome of a single conversion request.
type ConversionResult struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
	Rate   float64 `json:"rate"`
}

// CoinPriceRecord is the current USD quote for one tracked coin.
type CoinPriceRecord struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
	MarketCap float64 `json:"market_cap"`
	Volume24h float64 `json:"volume_24h"`
}

// CategoryState is the externally visible fetch state of one data category.
type CategoryState string

const (
	StatePending CategoryState = "pending"
	StateReady   CategoryState = "ready"
	StateFailed  CategoryState = "failed"
)

// CategoryStatus describes the last known outcome for one data category.
type CategoryStatus struct {
	State       CategoryState `json:"state"`
	LastError   string        `json:"last_error,omitempty"`
	LastSuccess time.Time     `json:"last_success"`
}

// FetchStatus is the per-category status snapshot exposed to consumers.
type FetchStatus struct {
	Rates      CategoryStatus `json:"rates"`
	Crypto     CategoryStatus `json:"crypto"`
	Historical CategoryStatus `json:"historical"`
}
