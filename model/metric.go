package model

// Category groups indicators by what they measure.
type Category string

const (
	CategoryMomentum   Category = "momentum"
	CategoryOverlap    Category = "overlap"
	CategoryTrend      Category = "trend"
	CategoryVolume     Category = "volume"
	CategoryVolatility Category = "volatility"
)

// Metric is a named indicator output aligned with its input series.
type Metric struct {
	Name     string
	Category Category
	Values   Series[float64]
}

// Len returns the number of values of the metric.
func (m Metric) Len() int {
	return len(m.Values)
}

// MetricFrame groups the outputs of a multi-series indicator.
type MetricFrame struct {
	Name     string
	Category Category
	Metrics  []Metric
}

// Frame wraps a single metric into a frame with the same name and category.
func (m *Metric) Frame() *MetricFrame {
	if m == nil {
		return nil
	}
	return &MetricFrame{
		Name:     m.Name,
		Category: m.Category,
		Metrics:  []Metric{*m},
	}
}

// Column returns the metric with the given name.
func (f *MetricFrame) Column(name string) (Metric, bool) {
	if f == nil {
		return Metric{}, false
	}
	for _, metric := range f.Metrics {
		if metric.Name == name {
			return metric, true
		}
	}
	return Metric{}, false
}

// Names returns the metric names in column order.
func (f *MetricFrame) Names() []string {
	if f == nil {
		return nil
	}
	names := make([]string, 0, len(f.Metrics))
	for _, metric := range f.Metrics {
		names = append(names, metric.Name)
	}
	return names
}
