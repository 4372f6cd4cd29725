package model

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// interestFloor is the minimum per-deposit interest worth crediting.
// Interest amounts below 1 are dropped entirely, they are not rounded up.
var interestFloor = decimal.NewFromInt(1)

var oneHundred = decimal.NewFromInt(100)

// DeriveUsername returns the lowercase initials of each word in owner,
// concatenated in word order: "Jonas Schmedtmann" -> "js".
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, word := range strings.Fields(owner) {
		r := []rune(word)
		b.WriteString(strings.ToLower(string(r[0])))
	}
	return b.String()
}

// Balance returns the sum of all movements. An empty history sums to zero.
func Balance(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, mov := range movements {
		total = total.Add(mov)
	}
	return total
}

// Income returns the sum of all deposits (movements strictly greater than zero).
func Income(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, mov := range movements {
		if mov.IsPositive() {
			total = total.Add(mov)
		}
	}
	return total
}

// Outgoing returns the signed sum of all withdrawals (movements strictly less
// than zero). The result is <= 0; the display layer takes the absolute value.
func Outgoing(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, mov := range movements {
		if mov.IsNegative() {
			total = total.Add(mov)
		}
	}
	return total
}

// Interest returns the total interest earned on deposits at the given
// percentage rate. Each deposit earns deposit*rate/100; per-deposit amounts
// below 1 are not credited at all.
func Interest(movements []decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, mov := range movements {
		if !mov.IsPositive() {
			continue
		}
		earned := mov.Mul(rate).Div(oneHundred)
		if earned.GreaterThanOrEqual(interestFloor) {
			total = total.Add(earned)
		}
	}
	return total
}

// SortedMovements returns a new ascending-sorted copy of movements.
// The input slice is never reordered.
func SortedMovements(movements []decimal.Decimal) []decimal.Decimal {
	sorted := make([]decimal.Decimal, len(movements))
	copy(sorted, movements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})
	return sorted
}
