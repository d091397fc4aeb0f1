package indicator

import (
	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
	"github.com/ninjaquant/ninjata/window"
)

// VIDYA is Chande's Variable Index Dynamic Average, default length 14. Its
// smoothing factor 2/(length+1) is scaled by |CMO| over the same length, so
// the average follows price faster in volatile stretches.
//
// The first value is computed at index length+drift-1 from a zero carry;
// earlier positions are null. A 0/0 in the CMO (a flat window) yields a null
// that is carried to every later position.
func VIDYA(close series.Series, length int, opts ...Option) *model.Metric {
	length = positive(length, 14)
	if !verify(length, close) {
		return nil
	}
	o := NewOptions(opts...)
	drift := o.drift()

	alpha := 2 / float64(length+1)
	absCMO := series.Abs(rollingCMO(close, length, drift))

	rec := window.Recurrence{
		Start: length + drift - 1,
		Seed:  0,
		Step: func(i int, prev float64) (float64, bool) {
			k := alpha * absCMO[i]
			return k*close[i] + (1-k)*prev, true
		},
	}

	return o.metric(series.Label("VIDYA", length), model.CategoryOverlap, rec.Values(len(close)))
}

// rollingCMO is the ratio (up-down)/(up+down) of the rolling sums of gains
// and losses over n bars of the drift-differenced series.
func rollingCMO(s series.Series, n, drift int) series.Series {
	mom := series.Diff(s, drift)
	up := window.Sum(series.ClipLower(mom, 0), n)
	down := window.Sum(series.Abs(series.ClipUpper(mom, 0)), n)
	return series.Div(series.Sub(up, down), series.Add(up, down))
}
