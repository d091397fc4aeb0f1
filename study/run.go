package study

import (
	"fmt"

	"github.com/StudioSol/set"
	"github.com/schollz/progressbar/v3"

	"github.com/ninjaquant/ninjata/feed"
	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/tools/log"
)

// Result holds the frames of a study run in definition order and the
// distinct column names across them.
type Result struct {
	Frames  []*model.MetricFrame
	Columns []string

	columns map[string]model.Metric
}

// Column returns the values of the named column.
func (r *Result) Column(name string) (model.Metric, bool) {
	metric, ok := r.columns[name]
	return metric, ok
}

// Evaluate runs a single definition over df.
func Evaluate(df *model.Dataframe, definition Definition) (*model.MetricFrame, error) {
	entry, err := Lookup(definition.Name)
	if err != nil {
		return nil, err
	}

	opts, err := definition.Options()
	if err != nil {
		return nil, err
	}

	frame := entry.Run(df, definition.Params, opts...)
	if frame == nil {
		return nil, fmt.Errorf("%s: %w (%d rows)", entry.Name, feed.ErrInsufficientData, df.Len())
	}
	return frame, nil
}

// Run evaluates every definition of cfg over df sequentially. A column
// produced twice keeps its first position and its latest values.
func Run(df *model.Dataframe, cfg *Config) (*Result, error) {
	var bar *progressbar.ProgressBar
	if cfg.Progress {
		bar = progressbar.Default(int64(len(cfg.Studies)))
	}

	names := set.NewLinkedHashSetString()
	result := &Result{columns: make(map[string]model.Metric)}
	for _, definition := range cfg.Studies {
		frame, err := Evaluate(df, definition)
		if err != nil {
			return nil, err
		}

		log.WithFields(log.Fields{
			"indicator": definition.Name,
			"frame":     frame.Name,
			"columns":   len(frame.Metrics),
		}).Debug("study evaluated")

		result.Frames = append(result.Frames, frame)
		for _, metric := range frame.Metrics {
			names.Add(metric.Name)
			result.columns[metric.Name] = metric
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				log.Warnf("update progressbar fail: %v", err)
			}
		}
	}

	for name := range names.Iter() {
		result.Columns = append(result.Columns, name)
	}
	return result, nil
}
