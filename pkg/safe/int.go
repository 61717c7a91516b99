// Package safe provides helpers for arithmetic with overflow checks.
package safe

import (
	"fmt"
	"math"
)

// Add returns a+b, failing when the result does not fit into int64.
func Add[T ~int64](a, b T) (T, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("sum of %d and %d out of int64 range", a, b)
	}
	return a + b, nil
}

// Sum adds all values with overflow checks.
func Sum[T ~int64](values ...T) (T, error) {
	var total T
	for _, v := range values {
		next, err := Add(total, v)
		if err != nil {
			return 0, err
		}
		total = next
	}
	return total, nil
}

// Abs returns the absolute value, rejecting math.MinInt64 which has no positive counterpart.
func Abs[T ~int64](v T) (T, error) {
	if v == math.MinInt64 {
		return 0, fmt.Errorf("value %d has no absolute value in int64 range", v)
	}
	if v < 0 {
		return -v, nil
	}
	return v, nil
}
