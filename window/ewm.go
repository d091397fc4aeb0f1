package window

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
)

// EWM is exponential smoothing with factor alpha that starts at the first
// non-null input. Positions before the n-th observation are null. With presma
// the state is seeded at the n-th observation by the mean of the first n
// values, otherwise by the first observation. With adjust every output is the
// bias-corrected weighted mean of all observations seen so far.
func EWM(s Series, alpha float64, n int, presma, adjust bool) Series {
	size := len(s)
	first := series.FirstValid(s)
	if first < 0 || n <= 0 || first+n > size || alpha <= 0 || alpha > 1 {
		return model.NaNs(size)
	}

	seedAt := first + n - 1
	start := first
	if presma {
		start = seedAt
	}
	decay := 1 - alpha

	var num, den float64
	rec := Recurrence{
		Start: start,
		Step: func(i int, prev float64) (float64, bool) {
			x := s[i]
			if i == start {
				if presma {
					x = seedMean(s[first : seedAt+1])
				}
				num, den = x, 1
				return x, true
			}
			if math.IsNaN(x) {
				num *= decay
				den *= decay
				return 0, false
			}
			if adjust {
				num = x + decay*num
				den = 1 + decay*den
				return num / den, true
			}
			return alpha*x + decay*prev, true
		},
	}

	out := rec.Values(size)
	for i := first; i < seedAt; i++ {
		out[i] = math.NaN()
	}
	return out
}

// EMA smooths with alpha 2/(n+1).
func EMA(s Series, n int, presma, adjust bool) Series {
	return EWM(s, 2/float64(n+1), n, presma, adjust)
}

// RMA is Wilder's smoothing: alpha 1/n seeded by the simple mean.
func RMA(s Series, n int) Series {
	return EWM(s, 1/float64(n), n, true, false)
}

// seedMean is the mean of the non-null values of w, null when there are none.
func seedMean(w []float64) float64 {
	values := lo.Filter(w, func(v float64, _ int) bool {
		return !math.IsNaN(v)
	})
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}
