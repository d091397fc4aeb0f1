package indicator

import (
	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
)

func (o *Options) roc(close series.Series, n int, scalar float64) series.Series {
	if o.useTalib("roc", rocLookback(n), n >= 1, close) {
		return series.Scale(talibROC(close, n), scalar/100)
	}
	prev := series.Shift(close, n)
	return series.Scale(series.Div(series.Sub(close, prev), prev), scalar)
}

// ROC is the rate of change over length bars, default length 10, expressed
// in percent (scalar 100).
func ROC(close series.Series, length int, opts ...Option) *model.Metric {
	length = positive(length, 10)
	if !verify(length, close) {
		return nil
	}
	o := NewOptions(opts...)
	scalar := o.scalar(100)
	return o.metric(series.Label("ROC", length), model.CategoryMomentum, o.roc(close, length, scalar))
}
