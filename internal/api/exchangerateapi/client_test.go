package exchangerateapi

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

func TestFetchLatest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","date":"2024-06-01","rates":{"eur":0.92,"VND":24000,"GBP":0.79}}`))
	}))
	defer server.Close()

	table, err := newTestClient(server.URL).FetchLatest(context.Background(), "usd")

	require.NoError(t, err)
	assert.Equal(t, "USD", table.Base)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), table.AsOf)
	// Lower-cased upstream keys are normalized.
	assert.Equal(t, 0.92, table.Rates["EUR"])
	assert.Equal(t, float64(24000), table.Rates["VND"])
	assert.Equal(t, 0.79, table.Rates["GBP"])
}

func TestFetchLatest_MissingRatesField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","date":"2024-06-01"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchLatest(context.Background(), "USD")

	var formatErr *apperrors.UpstreamFormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestFetchLatest_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"rates": not json`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchLatest(context.Background(), "USD")

	var parseErr *apperrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestFetchLatest_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchLatest(context.Background(), "USD")

	var netErr *apperrors.NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestFetchLatest_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := newTestClient(server.URL).FetchLatest(context.Background(), "USD")

	var netErr *apperrors.NetworkError
	require.ErrorAs(t, err, &netErr)
}
