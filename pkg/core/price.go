package core

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Ordered returns the pair as (min, max)
func Ordered[T constraints.Ordered](a, b T) (T, T) {
	if b < a {
		return b, a
	}
	return a, b
}

// PriceRange normalizes an unordered optional price pair
func PriceRange(a, b *float64) (low, high float64, ok bool) {
	if a == nil || b == nil {
		return 0, 0, false
	}
	low, high = Ordered(*a, *b)
	return low, high, true
}

// FormatPrice prints a price for labels. Integral prices keep one decimal (100.0).
func FormatPrice(price float64) string {
	if price == math.Trunc(price) && math.Abs(price) < 1e15 {
		return strconv.FormatFloat(price, 'f', 1, 64)
	}
	return strconv.FormatFloat(price, 'f', -1, 64)
}
