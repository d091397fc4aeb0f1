// Package series holds the null-aware helpers shared by every indicator:
// validation, shifting, fill policies, elementwise arithmetic and labels.
//
// A null position is represented by NaN.
package series

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"github.com/ninjaquant/ninjata/model"
)

// Series is the float series every helper works on.
type Series = model.Series[float64]

// IsNull reports whether v marks a missing value.
func IsNull(v float64) bool {
	return math.IsNaN(v)
}

// Verify returns s when it holds at least minLength values, nil otherwise.
// A minLength <= 0 only requires a non-empty series.
func Verify(s Series, minLength int) Series {
	if minLength <= 0 {
		minLength = 1
	}
	if len(s) < minLength {
		return nil
	}
	return s
}

// Clone returns a copy of s.
func Clone(s Series) Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// Shift moves every value k positions forward (k > 0) or backward (k < 0).
// Vacated positions are null.
func Shift(s Series, k int) Series {
	out := model.NaNs(len(s))
	switch {
	case k >= len(s) || -k >= len(s):
	case k >= 0:
		copy(out[k:], s[:len(s)-k])
	default:
		copy(out, s[-k:])
	}
	return out
}

// CountNaN returns the number of null positions in s.
func CountNaN(s Series) int {
	return lo.CountBy(s, math.IsNaN)
}

// FirstValid returns the index of the first non-null value, or -1.
func FirstValid(s Series) int {
	_, index, _ := lo.FindIndexOf(s, func(v float64) bool {
		return !math.IsNaN(v)
	})
	return index
}

// HasNaN reports whether any value of s is null.
func HasNaN(s Series) bool {
	return floats.HasNaN(s)
}
