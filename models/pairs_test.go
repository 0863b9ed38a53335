package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePair(t *testing.T) {
	spec, err := ParsePair("EUR/USD")
	require.NoError(t, err)
	assert.Equal(t, "EUR/USD", spec.Pair)
	assert.Equal(t, "EUR", spec.From)
	assert.Equal(t, "USD", spec.To)
}

func TestParsePair_NormalizesInput(t *testing.T) {
	spec, err := ParsePair(" eur / usd ")
	require.NoError(t, err)
	assert.Equal(t, "EUR/USD", spec.Pair)
}

func TestParsePair_Invalid(t *testing.T) {
	tests := []struct {
		name string
		pair string
	}{
		{"no separator", "EURUSD"},
		{"too many parts", "EUR/USD/JPY"},
		{"short code", "EU/USD"},
		{"numeric code", "EU1/USD"},
		{"identical sides", "USD/USD"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePair(tt.pair)
			assert.Error(t, err)
		})
	}
}

func TestParsePairs(t *testing.T) {
	specs, err := ParsePairs("EUR/USD, GBP/USD ,USD/JPY,")
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, "GBP/USD", specs[1].Pair)
}

func TestParsePairs_PropagatesError(t *testing.T) {
	_, err := ParsePairs("EUR/USD,bogus")
	assert.Error(t, err)
}

func TestRateTable_Rate(t *testing.T) {
	table := RateTable{
		Base:  "USD",
		Rates: map[string]float64{"EUR": 0.92, "BAD": 0},
	}

	rate, ok := table.Rate("EUR")
	assert.True(t, ok)
	assert.Equal(t, 0.92, rate)

	// The base is implicitly 1 even when not stored.
	rate, ok = table.Rate("USD")
	assert.True(t, ok)
	assert.Equal(t, float64(1), rate)

	_, ok = table.Rate("ZZZ")
	assert.False(t, ok)

	// Non-positive stored rates are unusable.
	_, ok = table.Rate("BAD")
	assert.False(t, ok)
}
