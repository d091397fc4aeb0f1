package indicator

import (
	"math"

	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
	"github.com/ninjaquant/ninjata/window"
)

// Holt-Winters smoothing factors of HWC.
const (
	hwcPrice        = 0.2
	hwcVelocity     = 0.1
	hwcAcceleration = 0.1
	hwcVariance     = 0.1
)

// HWC is the Holt-Winters Channel: a triple exponential forecast of close
// (HWM) with bands scalar (default 1) smoothed deviations away (HWU, HWL).
// WithChannelEval adds the channel width (HWW) and the position of close in
// it (HWPCT).
func HWC(close series.Series, opts ...Option) *model.MetricFrame {
	if !verify(1, close) {
		return nil
	}
	o := NewOptions(opts...)
	scalar := o.scalar(1)
	size := len(close)

	upper := model.NaNs(size)
	lower := model.NaNs(size)
	var lastA, lastV, lastVar float64
	lastF, lastPrice, lastResult := close[0], close[0], close[0]

	rec := window.Recurrence{
		Step: func(i int, _ float64) (float64, bool) {
			f := (1-hwcPrice)*(lastF+lastV+0.5*lastA) + hwcPrice*close[i]
			v := (1-hwcVelocity)*(lastV+lastA) + hwcVelocity*(f-lastF)
			a := (1-hwcAcceleration)*lastA + hwcAcceleration*(v-lastV)
			result := f + v + 0.5*a

			miss := lastPrice - lastResult
			variance := (1-hwcVariance)*lastVar + hwcVariance*miss*miss
			deviation := math.Sqrt(lastVar)
			upper[i] = result + scalar*deviation
			lower[i] = result - scalar*deviation

			lastPrice, lastA, lastF, lastV, lastVar, lastResult = close[i], a, f, v, variance, result
			return result, true
		},
	}
	mid := rec.Values(size)

	category := model.CategoryVolatility
	metrics := []model.Metric{
		o.column("HWM", category, mid),
		o.column("HWU", category, upper),
		o.column("HWL", category, lower),
	}
	if o.ChannelEval.TakeOr(false) {
		width := series.Sub(upper, lower)
		metrics = append(metrics,
			o.column("HWW", category, width),
			o.column("HWPCT", category, series.Div(series.Sub(close, lower), width)),
		)
	}

	return frame(series.Label("HWC", series.Compact(scalar)), category, metrics...)
}
