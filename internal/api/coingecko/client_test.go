package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehoangvi123/ratepulse/internal/apperrors"
)

func newTestClient(serverURL string) *Client {
	return NewClient(ClientOptions{
		BaseURL:        serverURL,
		RequestTimeout: 2 * time.Second,
		RequestsPerSec: 100,
	})
}

func TestFetchPrices_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "bitcoin,ethereum", query.Get("ids"))
		assert.Equal(t, "usd", query.Get("vs_currencies"))
		assert.Equal(t, "true", query.Get("include_24hr_change"))
		assert.Equal(t, "true", query.Get("include_market_cap"))
		assert.Equal(t, "true", query.Get("include_24hr_vol"))

		_, _ = w.Write([]byte(`{
			"bitcoin": {"usd": 67234.5, "usd_24h_change": 1.2, "usd_market_cap": 1300000000000, "usd_24h_vol": 25000000000},
			"ethereum": {"usd": 3456.7, "usd_24h_change": -0.8, "usd_market_cap": 420000000000, "usd_24h_vol": 12000000000}
		}`))
	}))
	defer server.Close()

	records, err := newTestClient(server.URL).FetchPrices(context.Background(), []string{"bitcoin", "ethereum"})

	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "bitcoin", records[0].ID)
	assert.Equal(t, "BTC", records[0].Symbol)
	assert.Equal(t, 67234.5, records[0].Price)
	assert.Equal(t, 1.2, records[0].Change24h)

	assert.Equal(t, "ETH", records[1].Symbol)
	assert.Equal(t, -0.8, records[1].Change24h)
}

func TestFetchPrices_SkipsUnknownIds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"bitcoin": {"usd": 67234.5}}`))
	}))
	defer server.Close()

	records, err := newTestClient(server.URL).FetchPrices(context.Background(), []string{"bitcoin", "obscurecoin"})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "bitcoin", records[0].ID)
}

func TestFetchPrices_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchPrices(context.Background(), []string{"bitcoin"})

	var parseErr *apperrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestFetchPrices_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchPrices(context.Background(), []string{"bitcoin"})

	var netErr *apperrors.NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestSymbolFor(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"bitcoin", "BTC"},
		{"ethereum", "ETH"},
		{"avalanche-2", "AVAX"},
		{"obscurecoin", "OBS"}, // fallback: first three letters upper-cased
		{"ng", "NG"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, SymbolFor(tt.id))
		})
	}
}
