// Package services provides the pricing, quotation and cost-reconciliation
// calculations for the quoting application. Everything in this package is
// pure computation over in-memory values; persistence lives in handlers.
package services

import (
	"math"
	"strconv"
	"strings"
)

// Money is a monetary amount in the currency's minor unit (Colombian pesos).
// Keeping amounts integral avoids floating-point drift across the repeated
// recomputation the quotation aggregate performs on every mutation.
type Money int64

// RoundMoney rounds a float intermediate to the nearest minor unit, half up.
func RoundMoney(v float64) Money {
	return Money(math.Floor(v + 0.5))
}

// RoundToThousand rounds to the nearest 1000 minor units, half up. Catalog
// unit prices are always quoted at this granularity.
func RoundToThousand(v float64) Money {
	return Money(math.Floor(v/1000+0.5)) * 1000
}

// FormatCOP formats an amount as a string like "$1.234.500", using dot as
// the thousands separator (Colombian convention).
func FormatCOP(amount Money) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(int64(amount), 10)

	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 2)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}

	return b.String()
}
