package indicator

import (
	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
)

// DPO is the Detrended Price Oscillator, default length 20. With t =
// length/2 + 1 the centered form (default) compares close t bars back with
// the SMA and moves the result t bars forward, so it reads future closes.
// WithCentered(false) or WithLookahead(false) compares close with the SMA
// from t bars ago instead.
func DPO(close series.Series, length int, opts ...Option) *model.Metric {
	length = positive(length, 20)
	if !verify(length, close) {
		return nil
	}
	o := NewOptions(opts...)
	centered := o.Centered.TakeOr(true)
	if !o.Lookahead.TakeOr(true) {
		centered = false
	}

	t := int(0.5*float64(length)) + 1
	ma := o.sma(close, length)

	var values series.Series
	if centered {
		values = series.Shift(series.Sub(series.Shift(close, t), ma), -t)
	} else {
		values = series.Sub(close, series.Shift(ma, t))
	}

	return o.metric(series.Label("DPO", length), model.CategoryTrend, values)
}
