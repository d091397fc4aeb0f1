package indicator

import (
	"strings"

	"github.com/samber/lo"

	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
	"github.com/ninjaquant/ninjata/window"
)

// Modes accepted by MA and by every mamode option.
const (
	ModeSMA  = "sma"
	ModeEMA  = "ema"
	ModeRMA  = "rma"
	ModeWMA  = "wma"
	ModeFWMA = "fwma"
)

func (o *Options) sma(s series.Series, n int) series.Series {
	if o.useTalib("sma", smaLookback(n), n >= 2, s) {
		return talibSMA(s, n)
	}
	return window.Mean(s, n)
}

func (o *Options) ema(s series.Series, n int) series.Series {
	presma := o.presma()
	if presma && !o.Adjust && o.useTalib("ema", emaLookback(n), n >= 2, s) {
		return talibEMA(s, n)
	}
	return window.EMA(s, n, presma, o.Adjust)
}

func (o *Options) rma(s series.Series, n int) series.Series {
	return window.RMA(s, n)
}

func (o *Options) wma(s series.Series, n int) series.Series {
	ascending := o.Ascending.TakeOr(true)
	if ascending && o.useTalib("wma", wmaLookback(n), n >= 2, s) {
		return talibWMA(s, n)
	}
	weights := window.Linear(n)
	if !ascending {
		weights = lo.Reverse(weights)
	}
	return window.Weighted(s, weights)
}

func (o *Options) fwma(s series.Series, n int) series.Series {
	return window.Weighted(s, window.Fibonacci(n, o.Ascending.TakeOr(true)))
}

// ma dispatches on mode. Unknown modes smooth exponentially.
func (o *Options) ma(mode string, s series.Series, n int) series.Series {
	switch strings.ToLower(mode) {
	case ModeSMA:
		return o.sma(s, n)
	case ModeRMA:
		return o.rma(s, n)
	case ModeWMA:
		return o.wma(s, n)
	case ModeFWMA:
		return o.fwma(s, n)
	default:
		return o.ema(s, n)
	}
}

// SMA is the simple moving average, default length 10.
func SMA(close series.Series, length int, opts ...Option) *model.Metric {
	length = positive(length, 10)
	if !verify(length, close) {
		return nil
	}
	o := NewOptions(opts...)
	return o.metric(series.Label("SMA", length), model.CategoryOverlap, o.sma(close, length))
}

// EMA is the exponential moving average with alpha 2/(length+1), default
// length 10. It is seeded by the SMA of the first window unless
// WithPresma(false).
func EMA(close series.Series, length int, opts ...Option) *model.Metric {
	length = positive(length, 10)
	if !verify(length, close) {
		return nil
	}
	o := NewOptions(opts...)
	return o.metric(series.Label("EMA", length), model.CategoryOverlap, o.ema(close, length))
}

// RMA is Wilder's moving average, default length 10.
func RMA(close series.Series, length int, opts ...Option) *model.Metric {
	length = positive(length, 10)
	if !verify(length, close) {
		return nil
	}
	o := NewOptions(opts...)
	return o.metric(series.Label("RMA", length), model.CategoryOverlap, o.rma(close, length))
}

// WMA is the linearly weighted moving average, default length 10.
func WMA(close series.Series, length int, opts ...Option) *model.Metric {
	length = positive(length, 10)
	if !verify(length, close) {
		return nil
	}
	o := NewOptions(opts...)
	return o.metric(series.Label("WMA", length), model.CategoryOverlap, o.wma(close, length))
}

// FWMA weights the window with Fibonacci numbers, default length 10. Recent
// values weigh more unless WithAscending(false).
func FWMA(close series.Series, length int, opts ...Option) *model.Metric {
	length = positive(length, 10)
	if !verify(length, close) {
		return nil
	}
	o := NewOptions(opts...)
	return o.metric(series.Label("FWMA", length), model.CategoryOverlap, o.fwma(close, length))
}

// MA computes the moving average named by mode.
func MA(mode string, close series.Series, length int, opts ...Option) *model.Metric {
	switch strings.ToLower(mode) {
	case ModeSMA:
		return SMA(close, length, opts...)
	case ModeRMA:
		return RMA(close, length, opts...)
	case ModeWMA:
		return WMA(close, length, opts...)
	case ModeFWMA:
		return FWMA(close, length, opts...)
	default:
		return EMA(close, length, opts...)
	}
}

// HL2 is the bar midpoint (high+low)/2.
func HL2(high, low series.Series, opts ...Option) *model.Metric {
	if !verify(1, high, low) || !sameLength(high, low) {
		return nil
	}
	o := NewOptions(opts...)
	var values series.Series
	if o.useTalib("hl2", 0, true, high, low) {
		values = talibHL2(high, low)
	} else {
		values = series.Scale(series.Add(high, low), 0.5)
	}
	return o.metric("HL2", model.CategoryOverlap, values)
}

// HLC3 is the typical price (high+low+close)/3.
func HLC3(high, low, close series.Series, opts ...Option) *model.Metric {
	if !verify(1, high, low, close) || !sameLength(high, low, close) {
		return nil
	}
	o := NewOptions(opts...)
	return o.metric("HLC3", model.CategoryOverlap, o.hlc3(high, low, close))
}

func (o *Options) hlc3(high, low, close series.Series) series.Series {
	if o.useTalib("hlc3", 0, true, high, low, close) {
		return talibHLC3(high, low, close)
	}
	return series.Scale(series.Add(series.Add(high, low), close), 1.0/3)
}
