package indicator

import (
	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
)

// PGO is the Pretty Good Oscillator, default length 14: the distance of close
// from its SMA measured in units of the EMA-smoothed ATR.
func PGO(high, low, close series.Series, length int, opts ...Option) *model.Metric {
	length = positive(length, 14)
	if !verify(length, high, low, close) || !sameLength(high, low, close) {
		return nil
	}
	o := NewOptions(opts...)

	distance := series.Sub(close, o.sma(close, length))
	atr := o.atr(high, low, close, length, ModeRMA)
	values := series.Div(distance, o.bundled().ema(atr, length))

	return o.metric(series.Label("PGO", length), model.CategoryMomentum, values)
}
