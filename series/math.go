package series

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"github.com/ninjaquant/ninjata/model"
)

// binary applies an elementwise gonum kernel over the common prefix of a and
// b. The result has the length of a; positions missing from b are null.
func binary(a, b Series, kernel func(dst, s, t []float64) []float64) Series {
	out := model.NaNs(len(a))
	n := min(len(a), len(b))
	kernel(out[:n], a[:n], b[:n])
	return out
}

// Map applies f to every value of s.
func Map(s Series, f func(v float64) float64) Series {
	return lo.Map(s, func(v float64, _ int) float64 {
		return f(v)
	})
}

func Add(a, b Series) Series {
	return binary(a, b, floats.AddTo)
}

func Sub(a, b Series) Series {
	return binary(a, b, floats.SubTo)
}

func Mul(a, b Series) Series {
	return binary(a, b, floats.MulTo)
}

// Div divides a by b. 0/0 yields null, x/0 yields an infinity.
func Div(a, b Series) Series {
	return binary(a, b, floats.DivTo)
}

// Max2 returns the larger value at each position, null if either is null.
func Max2(a, b Series) Series {
	return binary(a, b, func(dst, s, t []float64) []float64 {
		for i := range dst {
			if math.IsNaN(s[i]) || math.IsNaN(t[i]) {
				dst[i] = math.NaN()
				continue
			}
			dst[i] = math.Max(s[i], t[i])
		}
		return dst
	})
}

// Scale multiplies every value of s by k.
func Scale(s Series, k float64) Series {
	out := make(Series, len(s))
	floats.ScaleTo(out, k, s)
	return out
}

// AddScalar adds k to every value of s.
func AddScalar(s Series, k float64) Series {
	out := Clone(s)
	floats.AddConst(k, out)
	return out
}

func Abs(s Series) Series {
	return Map(s, math.Abs)
}

func Sqrt(s Series) Series {
	return Map(s, math.Sqrt)
}

// ClipLower raises every value below lower to lower. Nulls stay null.
func ClipLower(s Series, lower float64) Series {
	return Map(s, func(v float64) float64 {
		if v < lower {
			return lower
		}
		return v
	})
}

// ClipUpper lowers every value above upper to upper. Nulls stay null.
func ClipUpper(s Series, upper float64) Series {
	return Map(s, func(v float64) float64 {
		if v > upper {
			return upper
		}
		return v
	})
}

// Diff returns s[i] - s[i-drift]; the first drift positions are null.
func Diff(s Series, drift int) Series {
	out := model.NaNs(len(s))
	if drift < 0 || drift >= len(s) {
		return out
	}
	floats.SubTo(out[drift:], s[drift:], s[:len(s)-drift])
	return out
}
