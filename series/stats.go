package series

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Pairs returns the values of a and b at the positions where both are
// finite.
func Pairs(a, b Series) (x, y []float64) {
	size := len(a)
	if len(b) < size {
		size = len(b)
	}
	x = make([]float64, 0, size)
	y = make([]float64, 0, size)
	for i := 0; i < size; i++ {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) || math.IsInf(a[i], 0) || math.IsInf(b[i], 0) {
			continue
		}
		x = append(x, a[i])
		y = append(y, b[i])
	}
	return x, y
}

// Correlation returns the Pearson correlation of a and b over the positions
// where both hold a value. Fewer than two pairs yield NaN.
func Correlation(a, b Series) float64 {
	x, y := Pairs(a, b)
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

// RelativeErrors returns |a-b|/|b| over the positions where both hold a value
// and b is not zero.
func RelativeErrors(a, b Series) []float64 {
	x, y := Pairs(a, b)
	errs := make([]float64, 0, len(x))
	for i := range x {
		if y[i] == 0 {
			continue
		}
		errs = append(errs, math.Abs(x[i]-y[i])/math.Abs(y[i]))
	}
	return errs
}
