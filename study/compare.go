package study

import (
	"fmt"

	"github.com/ninjaquant/ninjata/feed"
	"github.com/ninjaquant/ninjata/indicator"
	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/series"
	"github.com/ninjaquant/ninjata/tools/metrics"
)

const bootstrapSamples = 1000

// Comparison measures how close the TA-Lib and bundled computations of one
// output column are.
type Comparison struct {
	Indicator   string
	Column      string
	Correlation float64
	// RelativeError is the bootstrapped mean of |bundled-talib|/|talib|.
	RelativeError metrics.BootstrapInterval
	Points        int
}

// Compare evaluates name with and without TA-Lib and compares every output
// column. The bundled run uses the entry's Bundled options so both sides
// follow the same formula. Indicators without a TA-Lib computation are
// rejected.
func Compare(df *model.Dataframe, name string, params Params) ([]Comparison, error) {
	entry, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if !entry.Reference {
		return nil, fmt.Errorf("%s: no talib computation to compare with", entry.Name)
	}

	reference := entry.Run(df, params, indicator.WithTalib(true))
	opts := append([]indicator.Option{}, entry.Bundled...)
	bundled := entry.Run(df, params, append(opts, indicator.WithTalib(false))...)
	if reference == nil || bundled == nil {
		return nil, fmt.Errorf("%s: %w (%d rows)", entry.Name, feed.ErrInsufficientData, df.Len())
	}

	comparisons := make([]Comparison, 0, len(reference.Metrics))
	for _, expected := range reference.Metrics {
		actual, ok := bundled.Column(expected.Name)
		if !ok {
			continue
		}
		errs := series.RelativeErrors(actual.Values, expected.Values)
		comparisons = append(comparisons, Comparison{
			Indicator:     entry.Name,
			Column:        expected.Name,
			Correlation:   series.Correlation(actual.Values, expected.Values),
			RelativeError: metrics.Bootstrap(errs, metrics.Mean, bootstrapSamples, 0.95),
			Points:        len(errs),
		})
	}
	return comparisons, nil
}
