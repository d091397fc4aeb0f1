package indicator

import (
	"strings"

	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
	"github.com/ninjaquant/ninjata/window"
)

// Donchian channels: the lowest low over lower bars, the highest high over
// upper bars and their midpoint. Defaults 20 and 20.
func Donchian(high, low series.Series, lower, upper int, opts ...Option) *model.MetricFrame {
	lower = positive(lower, 20)
	upper = positive(upper, 20)
	if !verify(max(lower, upper), high, low) || !sameLength(high, low) {
		return nil
	}
	o := NewOptions(opts...)

	dcl := window.Min(low, lower)
	dcu := window.Max(high, upper)
	dcm := series.Scale(series.Add(dcl, dcu), 0.5)

	props := series.Label("", lower, upper)
	category := model.CategoryVolatility
	return frame("DC"+props, category,
		o.column("DCL"+props, category, dcl),
		o.column("DCM"+props, category, dcm),
		o.column("DCU"+props, category, dcu),
	)
}

// KC are Keltner Channels, default length 20 and scalar 2: a moving average
// of close (ema unless WithMamode) with bands scalar times the averaged
// range away. The range is the true range unless WithTrueRange(false), which
// uses high-low.
func KC(high, low, close series.Series, length int, scalar float64, opts ...Option) *model.MetricFrame {
	length = positive(length, 20)
	scalar = positive(scalar, 2)
	if !verify(length, high, low, close) || !sameLength(high, low, close) {
		return nil
	}
	o := NewOptions(opts...)
	mode := strings.ToLower(o.mamode(ModeEMA))

	var ranges series.Series
	if o.TrueRange.TakeOr(true) {
		ranges = o.trueRange(high, low, close)
	} else {
		ranges = nonZeroRange(high, low)
	}

	basis := o.ma(mode, close, length)
	band := series.Scale(o.bundled().ma(mode, ranges, length), scalar)

	props := mode[:1] + series.Label("", length, series.Compact(scalar))
	category := model.CategoryVolatility
	return frame("KC"+props, category,
		o.column("KCL"+props, category, series.Sub(basis, band)),
		o.column("KCB"+props, category, basis),
		o.column("KCU"+props, category, series.Add(basis, band)),
	)
}

// AccBands are Acceleration Bands, default length 20 and width factor c 4.
// Each bar's range relative to high+low widens the high and the low, which
// are then averaged (sma unless WithMamode) like close.
func AccBands(high, low, close series.Series, length int, c float64, opts ...Option) *model.MetricFrame {
	length = positive(length, 20)
	c = positive(c, 4)
	if !verify(length, high, low, close) || !sameLength(high, low, close) {
		return nil
	}
	o := NewOptions(opts...)
	mode := o.mamode(ModeSMA)

	ratio := series.Scale(series.Div(nonZeroRange(high, low), series.Add(high, low)), c)
	rawLower := series.Mul(low, series.Map(ratio, func(v float64) float64 { return 1 - v }))
	rawUpper := series.Mul(high, series.AddScalar(ratio, 1))

	props := series.Label("", length)
	category := model.CategoryVolatility
	return frame("ACCBANDS"+props, category,
		o.column("ACCBL"+props, category, o.ma(mode, rawLower, length)),
		o.column("ACCBM"+props, category, o.ma(mode, close, length)),
		o.column("ACCBU"+props, category, o.ma(mode, rawUpper, length)),
	)
}

// Aberration bands, default length 5 and atrLength 15: the SMA of the
// typical price (ZG) with bands one ATR above (SG) and below (XG).
func Aberration(high, low, close series.Series, length, atrLength int, opts ...Option) *model.MetricFrame {
	length = positive(length, 5)
	atrLength = positive(atrLength, 15)
	if !verify(atrLength, high, low, close) || !sameLength(high, low, close) {
		return nil
	}
	o := NewOptions(opts...)

	atr := o.atr(high, low, close, atrLength, o.mamode(ModeRMA))
	zg := o.sma(o.hlc3(high, low, close), length)
	sg := series.Add(zg, atr)
	xg := series.Sub(zg, atr)

	props := series.Label("", length, atrLength)
	category := model.CategoryVolatility
	return frame("ABER"+props, category,
		o.column("ABER_ZG"+props, category, zg),
		o.column("ABER_SG"+props, category, sg),
		o.column("ABER_XG"+props, category, xg),
		o.column("ABER_ATR"+props, category, atr),
	)
}
