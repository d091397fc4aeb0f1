package indicator

import (
	"strings"

	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
)

func (o *Options) trueRange(high, low, close series.Series) series.Series {
	drift := o.drift()
	if drift == 1 && o.useTalib("truerange", trangeLookback(), true, high, low, close) {
		return talibTrueRange(high, low, close)
	}
	prev := series.Shift(close, drift)
	ranges := series.Max2(
		series.Sub(high, low),
		series.Max2(series.Abs(series.Sub(high, prev)), series.Abs(series.Sub(low, prev))),
	)
	return ranges
}

func (o *Options) atr(high, low, close series.Series, n int, mode string) series.Series {
	if mode == ModeRMA && o.drift() == 1 && o.useTalib("atr", atrLookback(n), n >= 1, high, low, close) {
		return talibATR(high, low, close, n)
	}
	return o.ma(mode, o.trueRange(high, low, close), n)
}

// TrueRange is the largest of high-low, |high-prevClose| and
// |low-prevClose|. The first drift positions are null.
func TrueRange(high, low, close series.Series, opts ...Option) *model.Metric {
	if !verify(2, high, low, close) || !sameLength(high, low, close) {
		return nil
	}
	o := NewOptions(opts...)
	return o.metric(series.Label("TRUERANGE", o.drift()), model.CategoryVolatility, o.trueRange(high, low, close))
}

// ATR is the moving average of the true range, default length 14 smoothed
// with rma. The label carries the first letter of the mamode (ATRr_14) and a
// trailing p with WithPercent, which expresses the ATR in percent of close.
func ATR(high, low, close series.Series, length int, opts ...Option) *model.Metric {
	length = positive(length, 14)
	if !verify(length, high, low, close) || !sameLength(high, low, close) {
		return nil
	}
	o := NewOptions(opts...)
	mode := strings.ToLower(o.mamode(ModeRMA))

	values := o.atr(high, low, close, length, mode)
	suffix := ""
	if o.Percent {
		values = series.Div(series.Scale(values, 100), close)
		suffix = "p"
	}

	name := series.Label("ATR"+mode[:1], length) + suffix
	return o.metric(name, model.CategoryVolatility, values)
}

// NATR is the ATR normalized by close and scaled by 100, default length 14
// smoothed with ema.
func NATR(high, low, close series.Series, length int, opts ...Option) *model.Metric {
	length = positive(length, 14)
	if !verify(length, high, low, close) || !sameLength(high, low, close) {
		return nil
	}
	o := NewOptions(opts...)
	scalar := o.scalar(100)

	var values series.Series
	if scalar == 100 && o.drift() == 1 && o.useTalib("natr", atrLookback(length), true, high, low, close) {
		values = talibNATR(high, low, close, length)
	} else {
		atr := o.atr(high, low, close, length, o.mamode(ModeEMA))
		values = series.Div(series.Scale(atr, scalar), close)
	}

	return o.metric(series.Label("NATR", length), model.CategoryVolatility, values)
}
