// Package metrics holds resampling statistics used to summarize how far two
// computations of the same indicator are apart.
package metrics

import (
	"math"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// BootstrapInterval is the confidence interval of a bootstrapped statistic.
type BootstrapInterval struct {
	Lower  float64
	Upper  float64
	StdDev float64
	Mean   float64
}

// Bootstrap resamples values with replacement sampleSize times, applies
// measure to each resample and returns the interval holding confidence of
// the measured statistics. An empty input yields a NaN interval.
func Bootstrap(values []float64, measure func([]float64) float64, sampleSize int,
	confidence float64) BootstrapInterval {
	if len(values) == 0 || sampleSize <= 0 {
		return BootstrapInterval{Lower: math.NaN(), Upper: math.NaN(), StdDev: math.NaN(), Mean: math.NaN()}
	}

	data := make([]float64, 0, sampleSize)
	for i := 0; i < sampleSize; i++ {
		samples := make([]float64, len(values))
		for j := range samples {
			samples[j] = lo.Sample(values)
		}
		data = append(data, measure(samples))
	}

	tail := 1 - confidence
	sort.Float64s(data)
	mean, stdDev := stat.MeanStdDev(data, nil)
	upper := stat.Quantile(1-tail/2, stat.LinInterp, data, nil)
	lower := stat.Quantile(tail/2, stat.LinInterp, data, nil)

	return BootstrapInterval{
		Lower:  lower,
		Upper:  upper,
		StdDev: stdDev,
		Mean:   mean,
	}
}

// Mean is the arithmetic mean, for use as a Bootstrap measure.
func Mean(values []float64) float64 {
	return stat.Mean(values, nil)
}
