package rates

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehoangvi123/ratepulse/internal/apperrors"
)

func TestConvert_FromBase(t *testing.T) {
	result, err := Convert(testTable(), "USD", "EUR", 100)

	require.NoError(t, err)
	assert.InDelta(t, 92, result.Result, 1e-9)
	assert.InDelta(t, 0.92, result.Rate, 1e-9)
	assert.Equal(t, "USD", result.From)
	assert.Equal(t, "EUR", result.To)
	assert.Equal(t, float64(100), result.Amount)
}

func TestConvert_CrossPair(t *testing.T) {
	// EUR -> VND goes through the USD base.
	result, err := Convert(testTable(), "EUR", "VND", 1)

	require.NoError(t, err)
	assert.InDelta(t, 24000/0.92, result.Result, 1e-6)
	assert.InDelta(t, 24000/0.92, result.Rate, 1e-6)
}

func TestConvert_RoundTrip(t *testing.T) {
	table := testTable()
	codes := []string{"USD", "EUR", "GBP", "VND", "JPY"}

	for _, from := range codes {
		for _, to := range codes {
			if from == to {
				continue
			}
			forward, err := Convert(table, from, to, 123.45)
			require.NoError(t, err)
			back, err := Convert(table, to, from, forward.Result)
			require.NoError(t, err)

			assert.InEpsilon(t, 123.45, back.Result, 1e-6, "%s -> %s -> %s", from, to, from)
		}
	}
}

func TestConvert_Identity(t *testing.T) {
	result, err := Convert(testTable(), "EUR", "EUR", 42.5)

	require.NoError(t, err)
	assert.Equal(t, 42.5, result.Result)
	assert.Equal(t, float64(1), result.Rate)
}

func TestConvert_NormalizesCase(t *testing.T) {
	result, err := Convert(testTable(), "usd", "eur", 10)

	require.NoError(t, err)
	assert.Equal(t, "USD", result.From)
	assert.Equal(t, "EUR", result.To)
	assert.InDelta(t, 9.2, result.Result, 1e-9)
}

func TestConvert_UnsupportedCurrency(t *testing.T) {
	_, err := Convert(testTable(), "USD", "ZZZ", 10)

	var unsupported *apperrors.UnsupportedCurrencyError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "ZZZ", unsupported.Code)

	_, err = Convert(testTable(), "ZZZ", "USD", 10)
	require.ErrorAs(t, err, &unsupported)
}

func TestConvert_InvalidAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
	}{
		{"negative", -5},
		{"nan", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(testTable(), "USD", "EUR", tt.amount)
			require.ErrorIs(t, err, apperrors.ErrInvalidAmount)
		})
	}
}

func TestConvert_ZeroAmount(t *testing.T) {
	result, err := Convert(testTable(), "USD", "EUR", 0)

	require.NoError(t, err)
	assert.Zero(t, result.Result)
}

func TestConvert_AmountCheckedBeforeLookup(t *testing.T) {
	// An invalid amount fails even when the currencies are unknown too.
	_, err := Convert(testTable(), "ZZZ", "YYY", -1)
	require.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}
