package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency symbols shown before the amount. Codes without an entry are
// rendered with the ISO code itself ("SGD 922.20").
var symbols = map[string]string{
	"MYR": "RM",
}

// Zero is the additive identity, exported for call-site readability.
var Zero = decimal.Zero

// Percent converts a whole-number percentage into its decimal fraction.
func Percent(p decimal.Decimal) decimal.Decimal {
	return p.Div(decimal.NewFromInt(100))
}

// ClampFloor returns v, raised to floor when it falls below it.
func ClampFloor(v, floor decimal.Decimal) decimal.Decimal {
	if v.LessThan(floor) {
		return floor
	}
	return v
}

// Round2 rounds to two decimal places, the display convention for all amounts.
// Intermediate arithmetic stays unrounded; only formatting rounds.
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// Format renders an amount as "RM 3,180.00" for known symbols, or
// "SGD 922.20" when only the ISO code is available.
func Format(currency string, v decimal.Decimal) string {
	prefix, ok := symbols[currency]
	if !ok {
		prefix = currency
	}
	return prefix + " " + group(Round2(v).StringFixed(2))
}

// group inserts thousands separators into a fixed-point decimal string.
func group(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteString(fracPart)
	return b.String()
}
