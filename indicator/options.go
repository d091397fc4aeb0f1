package indicator

import (
	"github.com/moznion/go-optional"

	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
	"github.com/ninjaquant/ninjata/tools/log"
)

// Option adjusts how an indicator is computed or post-processed.
type Option func(*Options)

// Options is the resolved option bag of a single indicator call. Unset
// fields fall back to the indicator's own default.
type Options struct {
	Offset     int
	Fillna     optional.Option[float64]
	FillMethod series.FillMethod

	Talib  optional.Option[bool]
	Presma optional.Option[bool]
	Adjust bool
	Mamode string
	Drift  int
	Scalar optional.Option[float64]
	Ddof   optional.Option[int]

	Ascending   optional.Option[bool]
	Centered    optional.Option[bool]
	Lookahead   optional.Option[bool]
	Percent     bool
	Everget     bool
	Refined     bool
	Thirds      bool
	TrueRange   optional.Option[bool]
	ChannelEval optional.Option[bool]
}

// NewOptions applies opts in order.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithOffset shifts every output by k positions.
func WithOffset(k int) Option {
	return func(o *Options) {
		o.Offset = k
	}
}

// WithFillna replaces nulls by value. It overrides an earlier WithFillMethod.
func WithFillna(value float64) Option {
	return func(o *Options) {
		o.Fillna = optional.Some(value)
		o.FillMethod = series.FillNone
	}
}

// WithFillMethod propagates values into nulls. It overrides an earlier
// WithFillna.
func WithFillMethod(method series.FillMethod) Option {
	return func(o *Options) {
		o.FillMethod = method
		o.Fillna = optional.None[float64]()
	}
}

// WithTalib selects the TA-Lib reference path where one is offered.
func WithTalib(enabled bool) Option {
	return func(o *Options) {
		o.Talib = optional.Some(enabled)
	}
}

// WithPresma seeds exponential averages with the simple mean of the first
// window.
func WithPresma(enabled bool) Option {
	return func(o *Options) {
		o.Presma = optional.Some(enabled)
	}
}

// WithAdjust enables the bias-adjusted exponential weighting.
func WithAdjust(enabled bool) Option {
	return func(o *Options) {
		o.Adjust = enabled
	}
}

// WithMamode picks the moving average used inside composite indicators.
func WithMamode(mode string) Option {
	return func(o *Options) {
		o.Mamode = mode
	}
}

// WithDrift sets the differencing lag.
func WithDrift(drift int) Option {
	return func(o *Options) {
		o.Drift = drift
	}
}

// WithScalar sets the magnification factor.
func WithScalar(scalar float64) Option {
	return func(o *Options) {
		o.Scalar = optional.Some(scalar)
	}
}

// WithDdof sets the delta degrees of freedom of standard deviations.
func WithDdof(ddof int) Option {
	return func(o *Options) {
		o.Ddof = optional.Some(ddof)
	}
}

// WithAscending weighs newer values more in weighted averages (WMA, FWMA).
func WithAscending(enabled bool) Option {
	return func(o *Options) {
		o.Ascending = optional.Some(enabled)
	}
}

// WithCentered centers the DPO window on each bar.
func WithCentered(enabled bool) Option {
	return func(o *Options) {
		o.Centered = optional.Some(enabled)
	}
}

// WithLookahead lets DPO read future bars. Disabling it keeps every row
// causal.
func WithLookahead(enabled bool) Option {
	return func(o *Options) {
		o.Lookahead = optional.Some(enabled)
	}
}

// WithPercent reports the true range as a percentage of close.
func WithPercent(enabled bool) Option {
	return func(o *Options) {
		o.Percent = enabled
	}
}

// WithEverget selects the SMA-based Ulcer Index variant (UIe).
func WithEverget(enabled bool) Option {
	return func(o *Options) {
		o.Everget = enabled
	}
}

// WithRefined averages the RVI of high and low (RVIr).
func WithRefined(enabled bool) Option {
	return func(o *Options) {
		o.Refined = enabled
	}
}

// WithThirds averages the RVI of high, low and close (RVIt).
func WithThirds(enabled bool) Option {
	return func(o *Options) {
		o.Thirds = enabled
	}
}

// WithTrueRange picks the true range over high minus low for Keltner
// channels.
func WithTrueRange(enabled bool) Option {
	return func(o *Options) {
		o.TrueRange = optional.Some(enabled)
	}
}

// WithChannelEval adds the HWC width and close position columns.
func WithChannelEval(enabled bool) Option {
	return func(o *Options) {
		o.ChannelEval = optional.Some(enabled)
	}
}

func (o *Options) talib() bool {
	return o.Talib.TakeOr(true)
}

// bundled returns a copy of o that never takes the TA-Lib path. Used for
// chained smoothing whose inner stages start with a null warmup.
func (o *Options) bundled() *Options {
	c := *o
	c.Talib = optional.Some(false)
	return &c
}

func (o *Options) presma() bool {
	return o.Presma.TakeOr(true)
}

func (o *Options) drift() int {
	if o.Drift <= 0 {
		return 1
	}
	return o.Drift
}

// scalar returns the configured scalar, or fallback when it is unset or not
// positive.
func (o *Options) scalar(fallback float64) float64 {
	return positive(o.Scalar.TakeOr(fallback), fallback)
}

func (o *Options) mamode(fallback string) string {
	if o.Mamode == "" {
		return fallback
	}
	return o.Mamode
}

func (o *Options) ddof(fallback int) int {
	return o.Ddof.TakeOr(fallback)
}

// apply runs the post-processing shared by every indicator: offset first,
// then fill.
func (o *Options) apply(s series.Series) series.Series {
	if o.Offset != 0 {
		s = series.Shift(s, o.Offset)
	}
	if o.Fillna.IsSome() {
		s = series.Fillna(s, o.Fillna.Unwrap())
	}
	if o.FillMethod != series.FillNone {
		s = series.Fill(s, o.FillMethod)
	}
	return s
}

// metric post-processes values and wraps them into a named metric.
func (o *Options) metric(name string, category model.Category, values series.Series) *model.Metric {
	return &model.Metric{
		Name:     name,
		Category: category,
		Values:   o.apply(values),
	}
}

// column is metric for the members of a frame.
func (o *Options) column(name string, category model.Category, values series.Series) model.Metric {
	return *o.metric(name, category, values)
}

func (o *Options) fallback(name, reason string) {
	if !log.IsDebug() {
		return
	}
	log.WithField("indicator", name).Debugf("talib path unavailable (%s), using bundled path", reason)
}

// positive returns value when it is > 0 and fallback otherwise.
func positive[T int | float64](value, fallback T) T {
	if value <= 0 {
		return fallback
	}
	return value
}
