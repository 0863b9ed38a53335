// Package exchangerateapi is the primary exchange-rate source adapter.
package exchangerateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lehoangvi123/ratepulse/internal/apperrors"
	httpclient "github.com/lehoangvi123/ratepulse/internal/platform/http"
	"github.com/lehoangvi123/ratepulse/models"
)

const sourceName = "exchangerate-api"

// Client is the exchangerate-api.com client.
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

// NewClient creates a new exchangerate-api client.
func NewClient(options ClientOptions) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = "https://api.exchangerate-api.com/v4"
	}

	return &Client{
		baseURL: baseURL,
		httpClient: httpclient.NewClient(httpclient.ClientOptions{
			Timeout:        options.RequestTimeout,
			RequestsPerSec: options.RequestsPerSec,
			MaxRetries:     options.MaxRetries,
		}),
		logger: log.With().Str("component", "exchangerateapi_client").Logger(),
	}
}

// Name returns the source name used in logs and error messages.
func (c *Client) Name() string { return sourceName }

type latestResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// FetchLatest fetches the latest rate table for the given base currency.
func (c *Client) FetchLatest(ctx context.Context, base string) (*models.RateTable, error) {
	base = strings.ToUpper(base)
	url := fmt.Sprintf("%s/latest/%s", c.baseURL, base)

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

	var data latestResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing JSON")
		return nil, &apperrors.ParseError{Source: sourceName, Err: err}
	}

	if len(data.Rates) == 0 {
		return nil, &apperrors.UpstreamFormatError{Source: sourceName, Reason: "missing rates field"}
	}

	rates := make(map[string]float64, len(data.Rates))
	for code, rate := range data.Rates {
		rates[strings.ToUpper(code)] = rate
	}

	asOf := time.Now().UTC()
	if t, err := time.Parse("2006-01-02", data.Date); err == nil {
		asOf = t
	}

	c.logger.Debug().Int("count", len(rates)).Msg("Fetched rates")

	return &models.RateTable{
		Base:  base,
		AsOf:  asOf,
		Rates: rates,
	}, nil
}
