package entity

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrNotFinite = errors.New("value must be finite")

// Clamp limits v to [lo, hi], the way a bounded drag field does.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// ParseFloat parses a user-entered number. Inf and NaN are rejected since no
// form field can hold them.
func ParseFloat(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", text, err)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%q: %w", text, ErrNotFinite)
	}
	return v, nil
}

// ParseInt parses a user-entered integer. A fractional value is truncated
// toward zero.
func ParseInt(text string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err == nil {
		return v, nil
	}
	f, ferr := ParseFloat(text)
	if ferr != nil {
		return 0, ferr
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64, nil
	}
	if f <= math.MinInt64 {
		return math.MinInt64, nil
	}
	return int64(f), nil
}
