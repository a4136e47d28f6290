package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// maxFractionDigits is how many fractional digits a formatted balance keeps.
// Digits beyond this are truncated, never rounded.
const maxFractionDigits = 8

// ParseBaseUnits parses a base-unit decimal string into a big.Int. Balances
// are kept as strings end to end because magnitudes can exceed the 64-bit
// integer range.
func ParseBaseUnits(balance string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(balance), 10)
	if !ok {
		return nil, fmt.Errorf("invalid base-unit balance %q", balance)
	}
	return n, nil
}

// IsZeroBaseUnits reports whether a base-unit string is zero. Unparseable
// input counts as zero so malformed fetcher output is dropped, not surfaced.
func IsZeroBaseUnits(balance string) bool {
	n, err := ParseBaseUnits(balance)
	if err != nil {
		return true
	}
	return n.Sign() == 0
}

// CompareBaseUnits compares two base-unit strings as arbitrary-precision
// integers. Unparseable input compares as zero.
func CompareBaseUnits(a, b string) int {
	na, err := ParseBaseUnits(a)
	if err != nil {
		na = big.NewInt(0)
	}
	nb, err := ParseBaseUnits(b)
	if err != nil {
		nb = big.NewInt(0)
	}
	return na.Cmp(nb)
}

// FormatBaseUnits converts a base-unit decimal string to a human-readable
// value by integer-dividing by 10^decimals. The fractional part is truncated
// to maxFractionDigits and trailing zeros are stripped.
// Example: balance="1234567890123456789", decimals=18 => "1.23456789".
func FormatBaseUnits(balance string, decimals uint8) (string, error) {
	n, err := ParseBaseUnits(balance)
	if err != nil {
		return "", err
	}
	if decimals == 0 {
		return n.String(), nil
	}

	negative := n.Sign() < 0
	abs := new(big.Int).Abs(n)

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	quo, rem := new(big.Int).QuoRem(abs, divisor, new(big.Int))

	frac := rem.String()
	if pad := int(decimals) - len(frac); pad > 0 {
		frac = strings.Repeat("0", pad) + frac
	}
	if len(frac) > maxFractionDigits {
		frac = frac[:maxFractionDigits]
	}
	frac = strings.TrimRight(frac, "0")

	formatted := quo.String()
	if frac != "" {
		formatted += "." + frac
	}
	if negative && formatted != "0" {
		formatted = "-" + formatted
	}
	return formatted, nil
}
