// Package currencyapi is the fallback exchange-rate source adapter. The
// provider serves static JSON keyed by the lower-cased base currency, so the
// payload is walked with gjson instead of a fixed struct.
package currencyapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/lehoangvi123/ratepulse/internal/apperrors"
	httpclient "github.com/lehoangvi123/ratepulse/internal/platform/http"
	"github.com/lehoangvi123/ratepulse/models"
)

const sourceName = "currency-api"

// Client is the fawazahmed0/currency-api client.
type Client struct {
	baseURL    string
	httpClient *httpclient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new client.
type ClientOptions struct {
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec int
	MaxRetries     int
}

// NewClient creates a new currency-api client.
func NewClient(options ClientOptions) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = "https://cdn.jsdelivr.net/gh/fawazahmed0/currency-api@1/latest"
	}

	return &Client{
		baseURL: baseURL,
		httpClient: httpclient.NewClient(httpclient.ClientOptions{
			Timeout:        options.RequestTimeout,
			RequestsPerSec: options.RequestsPerSec,
			MaxRetries:     options.MaxRetries,
		}),
		logger: log.With().Str("component", "currencyapi_client").Logger(),
	}
}

// Name returns the source name used in logs and error messages.
func (c *Client) Name() string { return sourceName }

// FetchLatest fetches the latest rate table for the given base currency.
func (c *Client) FetchLatest(ctx context.Context, base string) (*models.RateTable, error) {
	base = strings.ToUpper(base)
	url := fmt.Sprintf("%s/currencies/%s.json", c.baseURL, strings.ToLower(base))

	c.logger.Debug().Str("url", url).Msg("Fetching latest rates")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, &apperrors.NetworkError{Source: sourceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.NetworkError{Source: sourceName, Err: err}
	}

	if !gjson.ValidBytes(body) {
		return nil, &apperrors.ParseError{Source: sourceName, Err: errors.New("invalid JSON")}
	}

	table := gjson.GetBytes(body, strings.ToLower(base))
	if !table.Exists() || !table.IsObject() {
		return nil, &apperrors.UpstreamFormatError{
			Source: sourceName,
			Reason: fmt.Sprintf("missing %q field", strings.ToLower(base)),
		}
	}

	rates := make(map[string]float64)
	table.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Number {
			rates[strings.ToUpper(key.String())] = value.Float()
		}
		return true
	})
	if len(rates) == 0 {
		return nil, &apperrors.UpstreamFormatError{Source: sourceName, Reason: "empty rates object"}
	}

	asOf := time.Now().UTC()
	if t, err := time.Parse("2006-01-02", gjson.GetBytes(body, "date").String()); err == nil {
		asOf = t
	}

	c.logger.Debug().Int("count", len(rates)).Msg("Fetched rates")

	return &models.RateTable{
		Base:  base,
		AsOf:  asOf,
		Rates: rates,
	}, nil
}
