package rates

import (
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lehoangvi123/ratepulse/internal/apperrors"
	"github.com/lehoangvi123/ratepulse/models"
)

// PairBuilder computes current pair rates from a rate table.
//
// The change indicator it attaches is simulated: no previous table is
// retained across refreshes, so a synthetic previous rate is drawn within
// ±0.5% of the current one. It exists for display only and carries no
// historical meaning.
type PairBuilder struct {
	jitter func() float64 // symmetric, small magnitude
	logger zerolog.Logger
}

// NewPairBuilder creates a PairBuilder with the default ±0.5% jitter.
func NewPairBuilder() *PairBuilder {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &PairBuilder{
		jitter: func() float64 { return (rng.Float64() - 0.5) * 0.01 },
		logger: log.With().Str("component", "pair_builder").Logger(),
	}
}

// NewPairBuilderWithJitter creates a PairBuilder with a fixed jitter source,
// used by tests to pin the change indicator.
func NewPairBuilderWithJitter(jitter func() float64) *PairBuilder {
	b := NewPairBuilder()
	b.jitter = jitter
	return b
}

// Build computes one record per spec from the given table. A spec whose
// currency is missing from the table is skipped and logged; the rest of the
// batch still builds, so partial results are normal.
func (b *PairBuilder) Build(table *models.RateTable, specs []models.CurrencyPairSpec) []models.PairRateRecord {
	records := make([]models.PairRateRecord, 0, len(specs))
	for _, spec := range specs {
		rate, err := PairRate(table, spec)
		if err != nil {
			b.logger.Warn().Err(err).Str("pair", spec.Pair).Msg("Skipping pair")
			continue
		}

		previous := rate * (1 + b.jitter())
		delta := round4(rate - previous)

		records = append(records, models.PairRateRecord{
			Pair:        spec.Pair,
			Rate:        rate,
			LastUpdated: table.AsOf,
			Change: models.RateChange{
				Delta:      delta,
				Percentage: round2(delta / previous * 100),
				IsPositive: delta >= 0,
			},
		})
	}
	return records
}

// PairRate computes the rate for one pair against a table. When the pair's
// from side is the table's base the quote rate is used directly; otherwise
// the pair is quoted against the base and the stored rate is inverted.
func PairRate(table *models.RateTable, spec models.CurrencyPairSpec) (float64, error) {
	if spec.From == table.Base {
		rate, ok := table.Rate(spec.To)
		if !ok {
			return 0, &apperrors.MissingRateError{Pair: spec.Pair, Code: spec.To}
		}
		return rate, nil
	}

	rate, ok := table.Rate(spec.From)
	if !ok {
		return 0, &apperrors.MissingRateError{Pair: spec.Pair, Code: spec.From}
	}
	return 1 / rate, nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
