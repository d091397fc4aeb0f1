package indicator

import (
	"math"

	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
	"github.com/ninjaquant/ninjata/window"
)

// epsilon replaces a zero range so ratios over it stay finite.
var epsilon = math.Nextafter(1, 2) - 1

// nonZeroRange is a-b with exact zeros nudged to epsilon.
func nonZeroRange(a, b series.Series) series.Series {
	return series.Map(series.Sub(a, b), func(v float64) float64 {
		if v == 0 {
			return epsilon
		}
		return v
	})
}

// BBands are Bollinger Bands, default length 5 and std 2.0: a moving average
// (sma unless WithMamode) with bands std standard deviations (ddof 0 unless
// WithDdof) away. Columns BBL, BBM, BBU, BBB (bandwidth in percent of the
// middle band) and BBP (position of close inside the bands).
func BBands(close series.Series, length int, std float64, opts ...Option) *model.MetricFrame {
	length = positive(length, 5)
	std = positive(std, 2.0)
	if !verify(length, close) {
		return nil
	}
	o := NewOptions(opts...)
	mode := o.mamode(ModeSMA)
	ddof := o.ddof(0)

	var lower, mid, upper series.Series
	maType, supported := talibMaType(mode)
	if supported && ddof == 0 && o.useTalib("bbands", bbandsLookback(length), length >= 2, close) {
		lower, mid, upper = talibBBands(close, length, std, maType)
	} else {
		deviations := series.Scale(window.Std(close, length, ddof), std)
		mid = o.ma(mode, close, length)
		lower = series.Sub(mid, deviations)
		upper = series.Add(mid, deviations)
	}

	width := nonZeroRange(upper, lower)
	bandwidth := series.Div(series.Scale(width, 100), mid)
	percent := series.Div(nonZeroRange(close, lower), width)

	props := series.Label("", length, std)
	category := model.CategoryVolatility
	return frame("BBANDS"+props, category,
		o.column("BBL"+props, category, lower),
		o.column("BBM"+props, category, mid),
		o.column("BBU"+props, category, upper),
		o.column("BBB"+props, category, bandwidth),
		o.column("BBP"+props, category, percent),
	)
}
