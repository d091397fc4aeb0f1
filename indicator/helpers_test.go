package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninjaquant/ninjata/series"
)

type ohlcv struct {
	open, high, low, close, volume series.Series
}

// sample builds a deterministic wavy OHLCV set of n bars.
func sample(n int) ohlcv {
	var d ohlcv
	d.open = make(series.Series, n)
	d.high = make(series.Series, n)
	d.low = make(series.Series, n)
	d.close = make(series.Series, n)
	d.volume = make(series.Series, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		d.close[i] = 100 + 10*math.Sin(x/7) + 0.1*x + 2*math.Cos(x/3)
		if i == 0 {
			d.open[i] = d.close[i] - 0.5
		} else {
			d.open[i] = d.close[i-1]
		}
		d.high[i] = math.Max(d.open[i], d.close[i]) + 1 + 0.5*math.Abs(math.Sin(x/2))
		d.low[i] = math.Min(d.open[i], d.close[i]) - 1 - 0.5*math.Abs(math.Cos(x/5))
		d.volume[i] = 1000 + 300*math.Sin(x/4) + 10*x
	}
	return d
}

func assertSeries(t *testing.T, expected, actual series.Series) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		if math.IsNaN(expected[i]) {
			assert.True(t, math.IsNaN(actual[i]), "position %d: expected null, got %v", i, actual[i])
			continue
		}
		assert.InDelta(t, expected[i], actual[i], 1e-9, "position %d", i)
	}
}

// assertClose checks that a and b agree wherever both hold a value and that
// they hold values at the same positions from the later first valid index.
func assertClose(t *testing.T, a, b series.Series, delta float64) {
	t.Helper()
	require.Len(t, b, len(a))
	x, y := series.Pairs(a, b)
	require.NotEmpty(t, x)
	for i := range x {
		assert.InDelta(t, x[i], y[i], delta, "pair %d", i)
	}
}

// assertCorrelated checks the two series move together.
func assertCorrelated(t *testing.T, a, b series.Series) {
	t.Helper()
	corr := series.Correlation(a, b)
	assert.Greater(t, corr, 0.99, "correlation %v", corr)
}

// assertWarmup checks the length of the output and that exactly the first
// warmup positions are null.
func assertWarmup(t *testing.T, values series.Series, size, warmup int) {
	t.Helper()
	require.Len(t, values, size)
	for i, v := range values {
		if i < warmup {
			assert.True(t, math.IsNaN(v), "position %d should be null", i)
		} else {
			assert.False(t, math.IsNaN(v), "position %d should hold a value", i)
		}
	}
}
