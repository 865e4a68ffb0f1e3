package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD formats an amount in cents as a string like "$1,234.50".
func FormatUSD(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}

	whole := strconv.FormatInt(cents/100, 10)
	frac := cents % 100

	var b strings.Builder
	b.Grow(len(whole) + len(whole)/3 + 5)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(whole) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(whole[:rem])
	for i := rem; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	fmt.Fprintf(&b, ".%02d", frac)

	return b.String()
}

// ParseMoney parses user-entered currency text such as "$1,234.5" or "12".
// Empty text is zero.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// ToCents converts a currency amount to integer cents, rounding half away from zero
func ToCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// FromCents converts integer cents to a currency amount
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
