package indicator

import (
	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
	"github.com/ninjaquant/ninjata/window"
)

// SuperTrend follows price with a band placed multiplier ATRs away from the
// bar midpoint. Defaults: length 7, multiplier 3.0.
//
// While the trend is long the lower band may only rise; while short the
// upper band may only fall. A close through the previous opposite band flips
// the direction. Columns: SUPERT (active band), SUPERTd (direction 1/-1),
// SUPERTl (band while long) and SUPERTs (band while short).
func SuperTrend(high, low, close series.Series, length int, multiplier float64, opts ...Option) *model.MetricFrame {
	length = positive(length, 7)
	multiplier = positive(multiplier, 3.0)
	if !verify(length+1, high, low, close) || !sameLength(high, low, close) {
		return nil
	}
	o := NewOptions(opts...)
	size := len(close)

	mid := series.Scale(series.Add(high, low), 0.5)
	band := series.Scale(o.atr(high, low, close, length, o.mamode(ModeRMA)), multiplier)
	upper := series.Add(mid, band)
	lower := series.Sub(mid, band)

	first := series.FirstValid(band)
	if first < 0 {
		first = size
	}

	trend := model.NaNs(size)
	long := model.NaNs(size)
	short := model.NaNs(size)

	rec := window.Recurrence{
		Start: first,
		Seed:  1,
		Step: func(i int, dir float64) (float64, bool) {
			if i > first {
				switch {
				case close[i] > upper[i-1]:
					dir = 1
				case close[i] < lower[i-1]:
					dir = -1
				default:
					if dir > 0 && lower[i] < lower[i-1] {
						lower[i] = lower[i-1]
					}
					if dir < 0 && upper[i] > upper[i-1] {
						upper[i] = upper[i-1]
					}
				}
			}
			if dir > 0 {
				trend[i], long[i] = lower[i], lower[i]
			} else {
				trend[i], short[i] = upper[i], upper[i]
			}
			return dir, true
		},
	}
	direction := rec.Values(size)

	props := series.Label("", length, multiplier)
	category := model.CategoryOverlap
	return frame("SUPERT"+props, category,
		o.column("SUPERT"+props, category, trend),
		o.column("SUPERTd"+props, category, direction),
		o.column("SUPERTl"+props, category, long),
		o.column("SUPERTs"+props, category, short),
	)
}
