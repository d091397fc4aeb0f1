package model

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Series is a time series of values, oldest first.
// Indicator outputs use Series[float64] with NaN marking a null position.
type Series[T constraints.Ordered] []T

// LastValues returns the last size values of the series.
func (s Series[T]) LastValues(size int) []T {
	if l := len(s); l > size {
		return s[l-size:]
	}
	return s
}

// NaNs returns a float series of the given size with every position null.
func NaNs(size int) Series[float64] {
	values := make(Series[float64], size)
	for i := range values {
		values[i] = math.NaN()
	}
	return values
}
