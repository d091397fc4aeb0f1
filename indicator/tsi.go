package indicator

import (
	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
)

// tsi returns the True Strength Index and its signal line.
func (o *Options) tsi(close series.Series, fast, slow, signal int, scalar float64) (tsi, sig series.Series) {
	b := o.bundled()
	diff := series.Diff(close, o.drift())
	num := b.ema(b.ema(diff, slow), fast)
	den := b.ema(b.ema(series.Abs(diff), slow), fast)
	tsi = series.Scale(series.Div(num, den), scalar)
	sig = b.ma(o.mamode(ModeEMA), tsi, signal)
	return tsi, sig
}

func orderFastSlow(fast, slow int) (int, int) {
	if slow < fast {
		return slow, fast
	}
	return fast, slow
}

// TSI is the True Strength Index: the double smoothed momentum over the
// double smoothed absolute momentum. Defaults: fast 13, slow 25, signal 13,
// scalar 100. Columns TSI and TSIs (signal line).
func TSI(close series.Series, fast, slow, signal int, opts ...Option) *model.MetricFrame {
	fast, slow = orderFastSlow(positive(fast, 13), positive(slow, 25))
	signal = positive(signal, 13)
	if !verify(max(fast, slow, signal), close) {
		return nil
	}
	o := NewOptions(opts...)
	scalar := o.scalar(100)

	tsi, sig := o.tsi(close, fast, slow, signal, scalar)
	props := series.Label("", fast, slow, signal)
	category := model.CategoryMomentum
	return frame("TSI"+props, category,
		o.column("TSI"+props, category, tsi),
		o.column("TSIs"+props, category, sig),
	)
}

// SMI is the SMI Ergodic indicator: the TSI, its signal line and their
// difference as oscillator. Defaults: fast 5, slow 20, signal 5, scalar 1.
// A scalar other than 1 is appended to the label.
func SMI(close series.Series, fast, slow, signal int, opts ...Option) *model.MetricFrame {
	fast, slow = orderFastSlow(positive(fast, 5), positive(slow, 20))
	signal = positive(signal, 5)
	if !verify(max(fast, slow, signal), close) {
		return nil
	}
	o := NewOptions(opts...)
	scalar := o.scalar(1)

	smi, sig := o.tsi(close, fast, slow, signal, scalar)
	osc := series.Sub(smi, sig)

	props := series.Label("", fast, slow, signal)
	if scalar != 1 {
		props = series.Label(props, scalar)
	}
	category := model.CategoryMomentum
	return frame("SMI"+props, category,
		o.column("SMI"+props, category, smi),
		o.column("SMIs"+props, category, sig),
		o.column("SMIo"+props, category, osc),
	)
}
