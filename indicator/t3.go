package indicator

import (
	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
)

// T3 is Tim Tillson's six-times smoothed moving average, default length 10
// and volume factor a 0.7. An a outside (0, 1) falls back to 0.7. The first
// 6*(length-1) positions are null.
func T3(close series.Series, length int, a float64, opts ...Option) *model.Metric {
	length = positive(length, 10)
	if a <= 0 || a >= 1 {
		a = 0.7
	}
	if !verify(length, close) {
		return nil
	}
	o := NewOptions(opts...)

	var values series.Series
	if o.useTalib("t3", t3Lookback(length), length >= 2, close) {
		values = talibT3(close, length, a)
	} else {
		values = o.t3(close, length, a)
	}

	return o.metric(series.Label("T3", length, a), model.CategoryOverlap, values)
}

func (o *Options) t3(close series.Series, n int, a float64) series.Series {
	a2, a3 := a*a, a*a*a
	c1 := -a3
	c2 := 3*a2 + 3*a3
	c3 := -6*a2 - 3*a - 3*a3
	c4 := a3 + 3*a2 + 3*a + 1

	bundled := o.bundled()
	chain := make([]series.Series, 6)
	in := close
	for i := range chain {
		chain[i] = bundled.ema(in, n)
		in = chain[i]
	}
	e3, e4, e5, e6 := chain[2], chain[3], chain[4], chain[5]

	return series.Add(
		series.Add(series.Scale(e6, c1), series.Scale(e5, c2)),
		series.Add(series.Scale(e4, c3), series.Scale(e3, c4)),
	)
}
