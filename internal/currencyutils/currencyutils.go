// Package currencyutils provides the decimal formatting used by the report and
// the generated SQL.
package currencyutils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats amount with thousands separators and two decimal places,
// prefixed by symbol: FormatCurrency(1234.5, "Q") returns "Q1,234.50".
func FormatCurrency(amount decimal.Decimal, symbol string) string {
	return symbol + FormatGrouped(amount)
}

// FormatGrouped formats amount with comma thousands separators and two decimal
// places. The digits come from the exact decimal value, so no magnitude loses cents.
func FormatGrouped(amount decimal.Decimal) string {
	fixed := FormatFixed(amount)
	sign := ""
	if rest, ok := strings.CutPrefix(fixed, "-"); ok {
		sign, fixed = "-", rest
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatFixed formats amount with exactly two decimal places and no grouping.
func FormatFixed(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatSQLNumeric renders amount as a numeric literal in its shortest exact form,
// always carrying a fractional part: 120.50 -> "120.5", 100 -> "100.0".
func FormatSQLNumeric(amount decimal.Decimal) string {
	s := amount.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
