// Package window implements the trailing-window and exponential transforms
// the indicators are composed from.
package window

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ninjaquant/ninjata/model"
)

type Series = model.Series[float64]

// Rolling applies f to every trailing window of n values. Positions with
// fewer than n observations, or whose window holds a null, are null.
func Rolling(s Series, n int, f func(window []float64) float64) Series {
	out := model.NaNs(len(s))
	if n <= 0 {
		return out
	}
	for i := n - 1; i < len(s); i++ {
		w := s[i-n+1 : i+1]
		if floats.HasNaN(w) {
			continue
		}
		out[i] = f(w)
	}
	return out
}

// Sum is the rolling sum over n values.
func Sum(s Series, n int) Series {
	return Rolling(s, n, floats.Sum)
}

// Mean is the rolling mean over n values.
func Mean(s Series, n int) Series {
	return Rolling(s, n, func(w []float64) float64 {
		return stat.Mean(w, nil)
	})
}

// Max is the rolling maximum over n values.
func Max(s Series, n int) Series {
	return Rolling(s, n, floats.Max)
}

// Min is the rolling minimum over n values.
func Min(s Series, n int) Series {
	return Rolling(s, n, floats.Min)
}

// Std is the rolling standard deviation over n values with ddof delta
// degrees of freedom (0 population, 1 sample).
func Std(s Series, n, ddof int) Series {
	return Rolling(s, n, func(w []float64) float64 {
		size := len(w)
		if size-ddof <= 0 {
			return math.NaN()
		}
		var squares float64
		if size > 1 {
			squares = stat.Variance(w, nil) * float64(size-1)
		}
		return math.Sqrt(squares / float64(size-ddof))
	})
}
