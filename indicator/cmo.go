package indicator

import (
	"strings"

	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
	"github.com/ninjaquant/ninjata/window"
)

// CMO is the Chande Momentum Oscillator, default length 14 and scalar 100:
// scalar * (up - down) / (up + down) over the gains and losses of the
// drift-differenced close.
//
// WithMamode("rma") smooths the gains and losses with rma, which is TA-Lib's
// formula. The same smoothing serves a TA-Lib request the capability check
// refuses. Otherwise they are summed over a plain rolling window.
func CMO(close series.Series, length int, opts ...Option) *model.Metric {
	length = positive(length, 14)
	if !verify(length, close) {
		return nil
	}
	o := NewOptions(opts...)
	scalar := o.scalar(100)
	drift := o.drift()

	var values series.Series
	switch {
	case drift == 1 && o.useTalib("cmo", cmoLookback(length), length >= 2, close):
		values = series.Scale(talibCMO(close, length), scalar/100)
	case o.talib() || strings.ToLower(o.Mamode) == ModeRMA:
		mom := series.Diff(close, drift)
		up := window.RMA(series.ClipLower(mom, 0), length)
		down := window.RMA(series.Abs(series.ClipUpper(mom, 0)), length)
		values = series.Scale(series.Div(series.Sub(up, down), series.Add(up, down)), scalar)
	default:
		values = series.Scale(rollingCMO(close, length, drift), scalar)
	}

	return o.metric(series.Label("CMO", length), model.CategoryMomentum, values)
}
