// Package ninjata re-exports the data types shared by the indicator, feed
// and study packages.
package ninjata

import (
	"github.com/ninjaquant/ninjata/model"
)

type (
	Dataframe   = model.Dataframe
	Series      = model.Series[float64]
	Candle      = model.Candle
	Category    = model.Category
	Metric      = model.Metric
	MetricFrame = model.MetricFrame
)

var (
	CategoryMomentum   = model.CategoryMomentum
	CategoryOverlap    = model.CategoryOverlap
	CategoryTrend      = model.CategoryTrend
	CategoryVolume     = model.CategoryVolume
	CategoryVolatility = model.CategoryVolatility
)
