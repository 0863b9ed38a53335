package rates

import (
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lehoangvi123/ratepulse/internal/apperrors"
	"github.com/lehoangvi123/ratepulse/models"
)

// SeriesBuilder reshapes a multi-day timeseries payload into ordered per-pair
// point sequences. Open, high, low and volume are synthesized from the daily
// rate for charting; the upstream only supplies one rate per day.
type SeriesBuilder struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewSeriesBuilder creates a SeriesBuilder.
func NewSeriesBuilder() *SeriesBuilder {
	return &SeriesBuilder{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: log.With().Str("component", "series_builder").Logger(),
	}
}

// Build converts raw date → (code → rate) rows into per-pair point sequences
// sorted ascending by timestamp, keyed by the pair string. Dates missing a
// pair's currency are skipped for that pair; pairs with no usable dates are
// omitted. A payload with zero dates fails with apperrors.ErrEmptySeries.
func (b *SeriesBuilder) Build(base string, raw map[string]map[string]float64, specs []models.CurrencyPairSpec) (map[string][]models.HistoricalPoint, error) {
	if len(raw) == 0 {
		return nil, apperrors.ErrEmptySeries
	}

	series := make(map[string][]models.HistoricalPoint, len(specs))
	for _, spec := range specs {
		var points []models.HistoricalPoint
		for date, row := range raw {
			day, err := time.Parse("2006-01-02", date)
			if err != nil {
				b.logger.Warn().Str("date", date).Msg("Skipping unparseable date")
				continue
			}

			table := models.RateTable{Base: base, Rates: row}
			rate, err := PairRate(&table, spec)
			if err != nil {
				continue
			}

			points = append(points, b.point(day, rate))
		}
		if len(points) == 0 {
			b.logger.Warn().Str("pair", spec.Pair).Msg("No historical points for pair")
			continue
		}

		sort.Slice(points, func(i, j int) bool {
			return points[i].Timestamp < points[j].Timestamp
		})
		series[spec.Pair] = points
	}

	return series, nil
}

func (b *SeriesBuilder) point(day time.Time, rate float64) models.HistoricalPoint {
	open := rate * (1 + (b.rng.Float64()-0.5)*0.004)
	return models.HistoricalPoint{
		Date:      day.Format("2006-01-02"),
		Timestamp: day.Unix(),
		Rate:      rate,
		Open:      open,
		High:      rate * 1.005,
		Low:       rate * 0.995,
		Close:     rate,
		Volume:    int64(1_000_000 + b.rng.Intn(9_000_000)),
	}
}
