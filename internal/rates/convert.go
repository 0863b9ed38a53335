package rates

import (
	"fmt"
	"math"
	"strings"

	"github.com/lehoangvi123/ratepulse/internal/apperrors"
	"github.com/lehoangvi123/ratepulse/models"
)

// Convert converts amount from one currency to another through the table's
// base currency. The amount is validated before any rate lookup; a currency
// the table does not cover fails with *apperrors.UnsupportedCurrencyError.
func Convert(table *models.RateTable, from, to string, amount float64) (models.ConversionResult, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.ConversionResult{}, fmt.Errorf("%w: not a finite number", apperrors.ErrInvalidAmount)
	}
	if amount < 0 {
		return models.ConversionResult{}, fmt.Errorf("%w: negative amount %v", apperrors.ErrInvalidAmount, amount)
	}

	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	fromRate, ok := table.Rate(from)
	if !ok {
		return models.ConversionResult{}, &apperrors.UnsupportedCurrencyError{Code: from}
	}
	toRate, ok := table.Rate(to)
	if !ok {
		return models.ConversionResult{}, &apperrors.UnsupportedCurrencyError{Code: to}
	}

	return models.ConversionResult{
		Amount: amount,
		From:   from,
		To:     to,
		Result: amount / fromRate * toRate,
		Rate:   toRate / fromRate,
	}, nil
}
