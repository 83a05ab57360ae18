package validation

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var ErrInvalidNumber = errors.New("invalid_number")

// NormalizeText trims and collapses internal whitespace runs to a single space.
// An empty result means the field is missing.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeSKU trims surrounding whitespace only; SKUs keep their internal form.
func NormalizeSKU(s string) string { return strings.TrimSpace(s) }

// ParseDecimal parses a non-negative decimal accepting "," or "." as the
// fractional separator (price fields come from pt-BR forms).
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidNumber
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidNumber
	}
	return d, nil
}

// ParseInt parses a non-negative base-10 integer. Negative input is rejected
// here rather than leaving the range check to callers.
func ParseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

// Violations maps field name to error code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func MinLength(field, value string, minLen int, v Violations) {
	if utf8.RuneCountInString(value) < minLen {
		v[field] = "too_short"
	}
}
