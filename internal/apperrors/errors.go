// Package apperrors defines the error taxonomy shared by the fetch and
// calculation layers.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySeries indicates the historical provider returned zero dates.
// Callers treat it as "no data available", not as a fatal condition.
var ErrEmptySeries = errors.New("empty rate series")

// ErrInvalidAmount indicates a conversion amount that is negative or not a
// finite number.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrNoRates indicates no rate table has been fetched yet.
var ErrNoRates = errors.New("no exchange rates available yet")

// NetworkError wraps a transport-level failure (DNS, timeout, connection)
// from one upstream source.
type NetworkError struct {
	Source string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Source, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError wraps a malformed response body from one upstream source.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse error: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UpstreamFormatError indicates well-formed JSON that is missing the fields
// the adapter requires.
type UpstreamFormatError struct {
	Source string
	Reason string
}

func (e *UpstreamFormatError) Error() string {
	return fmt.Sprintf("%s: unexpected payload: %s", e.Source, e.Reason)
}

// AllSourcesFailedError reports that every configured rate source failed in
// one refresh cycle. It carries all underlying errors.
type AllSourcesFailedError struct {
	Errs []error
}

func (e *AllSourcesFailedError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return "all rate sources failed: " + strings.Join(msgs, "; ")
}

func (e *AllSourcesFailedError) Unwrap() []error { return e.Errs }

// MissingRateError indicates a currency code required by a configured pair is
// absent from an otherwise valid rate table. It affects only that pair.
type MissingRateError struct {
	Pair string
	Code string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("pair %s: no rate for %s", e.Pair, e.Code)
}

// UnsupportedCurrencyError indicates a conversion request named a currency
// the current rate table does not cover.
type UnsupportedCurrencyError struct {
	Code string
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf("unsupported currency %q", e.Code)
}
