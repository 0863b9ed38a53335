// Package exchangeratehost is the historical timeseries source adapter.
package exchangeratehost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lehoangvi123/ratepulse/internal/apperrors"
	httpclient "github.com/lehoangvi123/ratepulse/internal/platform/http"
)

const sourceName = "exchangerate.host"

// Client is the exchangerate.host timeseries client.
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

// NewClient creates a new exchangerate.host client.
func NewClient(options ClientOptions) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = "https://api.exchangerate.host"
	}

	return &Client{
		baseURL: baseURL,
		httpClient: httpclient.NewClient(httpclient.ClientOptions{
			Timeout:        options.RequestTimeout,
			RequestsPerSec: options.RequestsPerSec,
			MaxRetries:     options.MaxRetries,
		}),
		logger: log.With().Str("component", "exchangeratehost_client").Logger(),
	}
}

type timeseriesResponse struct {
	Success bool                          `json:"success"`
	Rates   map[string]map[string]float64 `json:"rates"`
}

// FetchTimeseries fetches daily rates for the given base and symbols between
// start and end (inclusive). The result maps "2006-01-02" date keys to
// code → rate rows; key order carries no meaning.
func (c *Client) FetchTimeseries(ctx context.Context, base string, symbols []string, start, end time.Time) (map[string]map[string]float64, error) {
	query := url.Values{}
	query.Set("start_date", start.Format("2006-01-02"))
	query.Set("end_date", end.Format("2006-01-02"))
	query.Set("base", strings.ToUpper(base))
	query.Set("symbols", strings.ToUpper(strings.Join(symbols, ",")))
	reqURL := fmt.Sprintf("%s/timeseries?%s", c.baseURL, query.Encode())

	c.logger.Debug().Str("url", reqURL).Msg("Fetching timeseries")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
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

	var data timeseriesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing JSON")
		return nil, &apperrors.ParseError{Source: sourceName, Err: err}
	}

	if !data.Success {
		return nil, &apperrors.UpstreamFormatError{Source: sourceName, Reason: "success=false"}
	}
	if data.Rates == nil {
		return nil, &apperrors.UpstreamFormatError{Source: sourceName, Reason: "missing rates field"}
	}

	normalized := make(map[string]map[string]float64, len(data.Rates))
	for date, row := range data.Rates {
		day := make(map[string]float64, len(row))
		for code, rate := range row {
			day[strings.ToUpper(code)] = rate
		}
		normalized[date] = day
	}

	c.logger.Debug().Int("days", len(normalized)).Msg("Fetched timeseries")
	return normalized, nil
}
