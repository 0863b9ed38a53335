package models

import (
	"fmt"
	"strings"
)

// ParsePair parses a "FROM/TO" pair string into a CurrencyPairSpec. Codes are
// upper-cased and must look like ISO 4217 codes (three letters).
func ParsePair(pair string) (CurrencyPairSpec, error) {
	parts := strings.Split(strings.TrimSpace(pair), "/")
	if len(parts) != 2 {
		return CurrencyPairSpec{}, fmt.Errorf("invalid pair %q: want FROM/TO", pair)
	}

	from := strings.ToUpper(strings.TrimSpace(parts[0]))
	to := strings.ToUpper(strings.TrimSpace(parts[1]))
	if !isCurrencyCode(from) || !isCurrencyCode(to) {
		return CurrencyPairSpec{}, fmt.Errorf("invalid pair %q: bad currency code", pair)
	}
	if from == to {
		return CurrencyPairSpec{}, fmt.Errorf("invalid pair %q: identical sides", pair)
	}

	return CurrencyPairSpec{
		Pair: from + "/" + to,
		From: from,
		To:   to,
	}, nil
}

// ParsePairs parses a comma-separated pair list, e.g. "EUR/USD,GBP/USD".
func ParsePairs(list string) ([]CurrencyPairSpec, error) {
	var specs []CurrencyPairSpec
	for _, raw := range strings.Split(list, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		spec, err := ParsePair(raw)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
