package indicator

import (
	"math"

	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
	"github.com/ninjaquant/ninjata/window"
)

// MASSI is the Mass Index, defaults fast 9 and slow 25: the slow-bar sum of
// the ratio between the single and double fast EMA of the high-low range.
func MASSI(high, low series.Series, fast, slow int, opts ...Option) *model.Metric {
	fast, slow = orderFastSlow(positive(fast, 9), positive(slow, 25))
	if !verify(max(fast, slow), high, low) || !sameLength(high, low) {
		return nil
	}
	o := NewOptions(opts...)
	b := o.bundled()

	single := b.ema(nonZeroRange(high, low), fast)
	double := b.ema(single, fast)
	values := window.Sum(series.Div(single, double), slow)

	return o.metric(series.Label("MASSI", fast, slow), model.CategoryVolatility, values)
}

// PDIST is the Price Distance: 2*(high-low) - |close-open| + |open-prevClose|.
func PDIST(open, high, low, close series.Series, opts ...Option) *model.Metric {
	if !verify(1, open, high, low, close) || !sameLength(open, high, low, close) {
		return nil
	}
	o := NewOptions(opts...)

	values := series.Scale(nonZeroRange(high, low), 2)
	values = series.Add(values, series.Abs(nonZeroRange(open, series.Shift(close, o.drift()))))
	values = series.Sub(values, series.Abs(nonZeroRange(close, open)))

	return o.metric("PDIST", model.CategoryVolatility, values)
}

// Thermo is Elder's Thermometer, defaults length 20, long 2 and short 0.5:
// the larger bar-to-bar move of high or low, its moving average (ema unless
// WithMamode) and two 1/0 flags, long when the move is below long times the
// average and short when it is above short times the average. The flags are
// null while the average is.
func Thermo(high, low series.Series, length int, long, short float64, opts ...Option) *model.MetricFrame {
	length = positive(length, 20)
	long = positive(long, 2)
	short = positive(short, 0.5)
	if !verify(length, high, low) || !sameLength(high, low) {
		return nil
	}
	o := NewOptions(opts...)
	drift := o.drift()

	lowMove := series.Abs(series.Sub(series.Shift(low, drift), low))
	highMove := series.Abs(series.Sub(high, series.Shift(high, drift)))
	thermo := series.Max2(lowMove, highMove)
	ma := o.bundled().ma(o.mamode(ModeEMA), thermo, length)

	longs := flags(thermo, series.Scale(ma, long), func(x, y float64) bool { return x < y })
	shorts := flags(thermo, series.Scale(ma, short), func(x, y float64) bool { return x > y })

	props := series.Label("", length, series.Compact(long), series.Compact(short))
	category := model.CategoryVolatility
	return frame("THERMO"+props, category,
		o.column("THERMO"+props, category, thermo),
		o.column("THERMOma"+props, category, ma),
		o.column("THERMOl"+props, category, longs),
		o.column("THERMOs"+props, category, shorts),
	)
}

// flags is 1 where cond(a, b) holds, 0 where it does not and null where b is.
func flags(a, b series.Series, cond func(x, y float64) bool) series.Series {
	out := model.NaNs(len(a))
	for i := range a {
		if math.IsNaN(b[i]) {
			continue
		}
		if cond(a[i], b[i]) {
			out[i] = 1
		} else {
			out[i] = 0
		}
	}
	return out
}

// UI is the Ulcer Index, default length 14 and scalar 100: the root mean
// square of the percentage drawdown from the rolling highest close.
// WithEverget uses Everget's SMA-based variant, labelled UIe.
func UI(close series.Series, length int, opts ...Option) *model.Metric {
	length = positive(length, 14)
	if !verify(length, close) {
		return nil
	}
	o := NewOptions(opts...)
	scalar := o.scalar(100)

	highest := window.Max(close, length)
	downside := series.Scale(series.Div(series.Sub(close, highest), highest), scalar)
	squared := series.Mul(downside, downside)

	var mean series.Series
	prefix := "UI"
	if o.Everget {
		mean = o.bundled().sma(squared, length)
		prefix = "UIe"
	} else {
		mean = window.Sum(squared, length)
	}
	values := series.Sqrt(series.Scale(mean, 1/float64(length)))

	return o.metric(series.Label(prefix, length), model.CategoryVolatility, values)
}

// RVI is the Relative Volatility Index, default length 14 and scalar 100:
// the share of the standard deviation that falls on up moves, smoothed with
// ema unless WithMamode. WithRefined averages the RVI of high and low
// (RVIr), WithThirds averages those of high, low and close (RVIt).
func RVI(close, high, low series.Series, length int, opts ...Option) *model.Metric {
	length = positive(length, 14)
	if !verify(length, close) {
		return nil
	}
	o := NewOptions(opts...)
	scalar := o.scalar(100)

	hasRange := verify(length, high, low) && sameLength(close, high, low)
	var values series.Series
	prefix := "RVI"
	switch {
	case o.Refined && hasRange:
		values = series.Scale(series.Add(o.rvi(high, length, scalar), o.rvi(low, length, scalar)), 0.5)
		prefix = "RVIr"
	case o.Thirds && hasRange:
		sum := series.Add(series.Add(o.rvi(high, length, scalar), o.rvi(low, length, scalar)), o.rvi(close, length, scalar))
		values = series.Scale(sum, 1.0/3)
		prefix = "RVIt"
	default:
		values = o.rvi(close, length, scalar)
	}

	return o.metric(series.Label(prefix, length), model.CategoryVolatility, values)
}

func (o *Options) rvi(source series.Series, n int, scalar float64) series.Series {
	b := o.bundled()
	mode := o.mamode(ModeEMA)
	std := window.Std(source, n, o.ddof(1))
	diff := series.Diff(source, o.drift())

	up := series.Map(diff, func(v float64) float64 { return boolFloat(v > 0) })
	down := series.Map(diff, func(v float64) float64 { return boolFloat(v < 0) })

	upAvg := b.ma(mode, series.Mul(up, std), n)
	downAvg := b.ma(mode, series.Mul(down, std), n)
	return series.Scale(series.Div(upAvg, series.Add(upAvg, downAvg)), scalar)
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
