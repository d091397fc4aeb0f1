package indicator

import (
	"math"

	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
	"github.com/ninjaquant/ninjata/window"
)

// PVI is the Positive Volume Index, default length 1 and initial 1000. It
// starts at initial and accumulates the ROC of close on the bars where
// volume rose; the other bars add nothing.
func PVI(close, volume series.Series, length int, initial float64, opts ...Option) *model.Metric {
	length = positive(length, 1)
	initial = positive(initial, 1000)
	if !verify(length, close, volume) || !sameLength(close, volume) {
		return nil
	}
	o := NewOptions(opts...)
	roc := o.roc(close, length, 100)

	rec := window.Recurrence{
		Start: 0,
		Step: func(i int, prev float64) (float64, bool) {
			if i == 0 {
				return initial, true
			}
			if volume[i] > volume[i-1] && !math.IsNaN(roc[i]) {
				return prev + roc[i], true
			}
			return prev, true
		},
	}

	return o.metric(series.Label("PVI", length), model.CategoryVolume, rec.Values(len(close)))
}
