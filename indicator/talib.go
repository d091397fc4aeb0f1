// Package indicator computes technical-analysis indicators over OHLCV series.
//
// Every indicator validates its inputs, falls back to documented defaults for
// absent parameters, computes its outputs, then applies the offset and fill
// options before naming the result. Indicators that TA-Lib also implements
// delegate to go-talib when the call is within TA-Lib's capabilities.
package indicator

import (
	"math"

	"github.com/markcheno/go-talib"

	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
)

// MaType mirrors the TA-Lib moving average selector.
type MaType = talib.MaType

const (
	TypeSMA = talib.SMA
	TypeEMA = talib.EMA
	TypeWMA = talib.WMA
)

// talibMaType maps a mamode name onto the TA-Lib selector.
func talibMaType(mode string) (MaType, bool) {
	switch mode {
	case "sma":
		return TypeSMA, true
	case "ema":
		return TypeEMA, true
	case "wma":
		return TypeWMA, true
	}
	return 0, false
}

// Lookback periods of the TA-Lib functions, i.e. the number of leading
// positions TA-Lib leaves at zero.
func smaLookback(n int) int { return n - 1 }
func emaLookback(n int) int { return n - 1 }
func wmaLookback(n int) int { return n - 1 }
func t3Lookback(n int) int { return 6 * (n - 1) }
func cmoLookback(n int) int { return n }
func rocLookback(n int) int { return n }
func atrLookback(n int) int { return n }
func trangeLookback() int { return 1 }
func bbandsLookback(n int) int { return n - 1 }

// useTalib reports whether the reference path may serve the call: it must be
// requested, the parameters must be in TA-Lib's accepted range, every input
// must be longer than the lookback and free of nulls. A refused request is
// logged at debug level.
func (o *Options) useTalib(name string, lookback int, inRange bool, inputs ...series.Series) bool {
	if !o.talib() {
		return false
	}
	if !inRange {
		o.fallback(name, "parameters out of range")
		return false
	}
	for _, in := range inputs {
		if len(in) <= lookback {
			o.fallback(name, "input shorter than lookback")
			return false
		}
		if series.HasNaN(in) {
			o.fallback(name, "input holds nulls")
			return false
		}
	}
	return true
}

// fromTalib copies a TA-Lib output and turns its zero-filled warmup into
// nulls.
func fromTalib(values []float64, lookback int) series.Series {
	out := make(series.Series, len(values))
	copy(out, values)
	for i := 0; i < lookback && i < len(out); i++ {
		out[i] = math.NaN()
	}
	return out
}

func talibSMA(s series.Series, n int) series.Series {
	return fromTalib(talib.Sma(s, n), smaLookback(n))
}

func talibEMA(s series.Series, n int) series.Series {
	return fromTalib(talib.Ema(s, n), emaLookback(n))
}

func talibWMA(s series.Series, n int) series.Series {
	return fromTalib(talib.Wma(s, n), wmaLookback(n))
}

func talibT3(s series.Series, n int, a float64) series.Series {
	return fromTalib(talib.T3(s, n, a), t3Lookback(n))
}

func talibCMO(s series.Series, n int) series.Series {
	return fromTalib(talib.Cmo(s, n), cmoLookback(n))
}

func talibROC(s series.Series, n int) series.Series {
	return fromTalib(talib.Roc(s, n), rocLookback(n))
}

func talibTrueRange(high, low, close series.Series) series.Series {
	return fromTalib(talib.TRange(high, low, close), trangeLookback())
}

func talibATR(high, low, close series.Series, n int) series.Series {
	return fromTalib(talib.Atr(high, low, close, n), atrLookback(n))
}

func talibNATR(high, low, close series.Series, n int) series.Series {
	return fromTalib(talib.Natr(high, low, close, n), atrLookback(n))
}

func talibHL2(high, low series.Series) series.Series {
	return fromTalib(talib.MedPrice(high, low), 0)
}

func talibHLC3(high, low, close series.Series) series.Series {
	return fromTalib(talib.TypPrice(high, low, close), 0)
}

// talibBBands returns the lower, middle and upper bands.
func talibBBands(s series.Series, n int, std float64, maType MaType) (lower, middle, upper series.Series) {
	up, mid, dn := talib.BBands(s, n, std, std, maType)
	lookback := bbandsLookback(n)
	return fromTalib(dn, lookback), fromTalib(mid, lookback), fromTalib(up, lookback)
}

// verify returns false when any input is shorter than minLength.
func verify(minLength int, inputs ...series.Series) bool {
	for _, in := range inputs {
		if series.Verify(in, minLength) == nil {
			return false
		}
	}
	return true
}

// sameLength reports whether every input has the length of the first.
func sameLength(inputs ...series.Series) bool {
	for _, in := range inputs[1:] {
		if len(in) != len(inputs[0]) {
			return false
		}
	}
	return true
}

func frame(name string, category model.Category, metrics ...model.Metric) *model.MetricFrame {
	return &model.MetricFrame{
		Name:     name,
		Category: category,
		Metrics:  metrics,
	}
}
