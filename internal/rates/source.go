// Package rates holds the aggregation core: the source fallback chain, the
// pair and series builders, and the conversion calculator.
package rates

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lehoangvi123/ratepulse/internal/apperrors"
	"github.com/lehoangvi123/ratepulse/models"
)

// Source is one upstream rate-table provider.
type Source interface {
	Name() string
	FetchLatest(ctx context.Context, base string) (*models.RateTable, error)
}

// Fallback tries sources in priority order until one succeeds. Attempts are
// strictly sequential; the second source is only contacted after the first
// has failed, to stay inside the free providers' quotas.
type Fallback struct {
	sources []Source
	logger  zerolog.Logger
}

// NewFallback creates a Fallback over the given sources, highest priority
// first.
func NewFallback(sources ...Source) *Fallback {
	return &Fallback{
		sources: sources,
		logger:  log.With().Str("component", "rate_fallback").Logger(),
	}
}

// FetchLatest returns the first source's table that fetches successfully.
// Each source gets a single attempt per call. When every source fails the
// returned error is an *apperrors.AllSourcesFailedError carrying all causes.
func (f *Fallback) FetchLatest(ctx context.Context, base string) (*models.RateTable, error) {
	var errs []error
	for _, source := range f.sources {
		table, err := source.FetchLatest(ctx, base)
		if err == nil {
			f.logger.Debug().
				Str("source", source.Name()).
				Int("rates", len(table.Rates)).
				Msg("Rate table fetched")
			return table, nil
		}
		f.logger.Warn().
			Err(err).
			Str("source", source.Name()).
			Msg("Rate source failed, trying next")
		errs = append(errs, err)
	}
	return nil, &apperrors.AllSourcesFailedError{Errs: errs}
}
