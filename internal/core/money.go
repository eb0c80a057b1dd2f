package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD renders an amount as a US-dollar string with thousands
// separators. The amount is first rounded to 2 places, half up. Whole
// amounts drop the cents entirely ("$1,234"); everything else keeps
// exactly two places ("$1,234.56"). Negative amounts carry the sign
// before the dollar ("-$12.50").
func FormatUSD(amount decimal.Decimal) string {
	rounded := amount.Round(2)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	whole := rounded.Truncate(0)
	if rounded.Equal(whole) {
		return sign + "$" + groupThousands(whole.String())
	}

	fixed := rounded.StringFixed(2)
	dot := strings.IndexByte(fixed, '.')
	return sign + "$" + groupThousands(fixed[:dot]) + fixed[dot:]
}

// FormatPercent renders a percentage with the fractional part truncated
// toward zero: 32.9 becomes "32%".
func FormatPercent(pct decimal.Decimal) string {
	return pct.Truncate(0).String() + "%"
}

// groupThousands inserts commas into a bare digit string every 3 digits
// from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	b.Grow(n + n/3)
	pre := n % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
