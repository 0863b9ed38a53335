// Package coingecko is the cryptocurrency price source adapter.
package coingecko

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
	"github.com/lehoangvi123/ratepulse/models"
)

const sourceName = "coingecko"

// Client is the CoinGecko simple-price client.
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

// NewClient creates a new CoinGecko client.
func NewClient(options ClientOptions) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = "https://api.coingecko.com/api/v3"
	}

	return &Client{
		baseURL: baseURL,
		httpClient: httpclient.NewClient(httpclient.ClientOptions{
			Timeout:        options.RequestTimeout,
			RequestsPerSec: options.RequestsPerSec,
			MaxRetries:     options.MaxRetries,
		}),
		logger: log.With().Str("component", "coingecko_client").Logger(),
	}
}

type coinQuote struct {
	USD       float64 `json:"usd"`
	Change24h float64 `json:"usd_24h_change"`
	MarketCap float64 `json:"usd_market_cap"`
	Volume24h float64 `json:"usd_24h_vol"`
}

// FetchPrices fetches current USD quotes for the given coin ids. Ids the
// provider does not know are skipped; result order follows the input ids.
func (c *Client) FetchPrices(ctx context.Context, coinIDs []string) ([]models.CoinPriceRecord, error) {
	query := url.Values{}
	query.Set("ids", strings.Join(coinIDs, ","))
	query.Set("vs_currencies", "usd")
	query.Set("include_24hr_change", "true")
	query.Set("include_market_cap", "true")
	query.Set("include_24hr_vol", "true")
	reqURL := fmt.Sprintf("%s/simple/price?%s", c.baseURL, query.Encode())

	c.logger.Debug().Str("url", reqURL).Msg("Fetching coin prices")

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

	var quotes map[string]coinQuote
	if err := json.Unmarshal(body, &quotes); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing JSON")
		return nil, &apperrors.ParseError{Source: sourceName, Err: err}
	}

	records := make([]models.CoinPriceRecord, 0, len(coinIDs))
	for _, id := range coinIDs {
		quote, ok := quotes[id]
		if !ok {
			c.logger.Warn().Str("coin", id).Msg("Coin missing from response")
			continue
		}
		records = append(records, models.CoinPriceRecord{
			ID:        id,
			Symbol:    SymbolFor(id),
			Price:     quote.USD,
			Change24h: quote.Change24h,
			MarketCap: quote.MarketCap,
			Volume24h: quote.Volume24h,
		})
	}

	c.logger.Debug().Int("count", len(records)).Msg("Fetched coin prices")
	return records, nil
}
