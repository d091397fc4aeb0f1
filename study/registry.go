// Package study runs named indicators over a dataframe from declarative
// definitions and compares their TA-Lib and bundled computations.
package study

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ninjaquant/ninjata/indicator"
	"github.com/ninjaquant/ninjata/model"
)

var ErrUnknownIndicator = errors.New("unknown indicator")

// Params holds the numeric parameters of a definition. Absent entries are
// zero, which every indicator treats as "use the default".
type Params map[string]float64

func (p Params) Int(name string) int {
	return int(p[name])
}

func (p Params) Float(name string) float64 {
	return p[name]
}

// Runner evaluates one indicator over a dataframe.
type Runner func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.MetricFrame

// Entry describes a registered indicator.
type Entry struct {
	Name     string
	Category model.Category
	// Params lists the accepted parameter names in call order.
	Params []string
	// Reference is set when a TA-Lib computation exists.
	Reference bool
	// Bundled holds the options under which the bundled computation follows
	// TA-Lib's formula, for indicators whose default differs from it.
	Bundled []indicator.Option
	Run     Runner
}

var registry = map[string]Entry{}

func register(entry Entry) {
	registry[entry.Name] = entry
}

func single(f func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.Metric) Runner {
	return func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.MetricFrame {
		return f(df, p, opts...).Frame()
	}
}

// Lookup returns the entry registered under name, case-insensitively.
func Lookup(name string) (Entry, error) {
	entry, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownIndicator, name)
	}
	return entry, nil
}

// Entries returns every registered indicator sorted by category and name.
func Entries() []Entry {
	entries := make([]Entry, 0, len(registry))
	for _, entry := range registry {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Category != entries[j].Category {
			return entries[i].Category < entries[j].Category
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

func init() {
	overlap()
	momentum()
	trend()
	volume()
	volatility()
}

func overlap() {
	for _, mode := range []string{indicator.ModeSMA, indicator.ModeEMA, indicator.ModeRMA, indicator.ModeWMA, indicator.ModeFWMA} {
		register(Entry{
			Name:      mode,
			Category:  model.CategoryOverlap,
			Params:    []string{"length"},
			Reference: mode == indicator.ModeSMA || mode == indicator.ModeEMA || mode == indicator.ModeWMA,
			Run: single(func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.Metric {
				return indicator.MA(mode, df.Close, p.Int("length"), opts...)
			}),
		})
	}
	register(Entry{
		Name:      "hl2",
		Category:  model.CategoryOverlap,
		Reference: true,
		Run: single(func(df *model.Dataframe, _ Params, opts ...indicator.Option) *model.Metric {
			return indicator.HL2(df.High, df.Low, opts...)
		}),
	})
	register(Entry{
		Name:      "hlc3",
		Category:  model.CategoryOverlap,
		Reference: true,
		Run: single(func(df *model.Dataframe, _ Params, opts ...indicator.Option) *model.Metric {
			return indicator.HLC3(df.High, df.Low, df.Close, opts...)
		}),
	})
	register(Entry{
		Name:      "t3",
		Category:  model.CategoryOverlap,
		Params:    []string{"length", "a"},
		Reference: true,
		Run: single(func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.Metric {
			return indicator.T3(df.Close, p.Int("length"), p.Float("a"), opts...)
		}),
	})
	register(Entry{
		Name:     "vidya",
		Category: model.CategoryOverlap,
		Params:   []string{"length"},
		Run: single(func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.Metric {
			return indicator.VIDYA(df.Close, p.Int("length"), opts...)
		}),
	})
	register(Entry{
		Name:     "supertrend",
		Category: model.CategoryOverlap,
		Params:   []string{"length", "multiplier"},
		Run: func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.MetricFrame {
			return indicator.SuperTrend(df.High, df.Low, df.Close, p.Int("length"), p.Float("multiplier"), opts...)
		},
	})
}

func momentum() {
	register(Entry{
		Name:      "cmo",
		Category:  model.CategoryMomentum,
		Params:    []string{"length"},
		Reference: true,
		Bundled:   []indicator.Option{indicator.WithMamode(indicator.ModeRMA)},
		Run: single(func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.Metric {
			return indicator.CMO(df.Close, p.Int("length"), opts...)
		}),
	})
	register(Entry{
		Name:      "roc",
		Category:  model.CategoryMomentum,
		Params:    []string{"length"},
		Reference: true,
		Run: single(func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.Metric {
			return indicator.ROC(df.Close, p.Int("length"), opts...)
		}),
	})
	register(Entry{
		Name:     "tsi",
		Category: model.CategoryMomentum,
		Params:   []string{"fast", "slow", "signal"},
		Run: func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.MetricFrame {
			return indicator.TSI(df.Close, p.Int("fast"), p.Int("slow"), p.Int("signal"), opts...)
		},
	})
	register(Entry{
		Name:     "smi",
		Category: model.CategoryMomentum,
		Params:   []string{"fast", "slow", "signal"},
		Run: func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.MetricFrame {
			return indicator.SMI(df.Close, p.Int("fast"), p.Int("slow"), p.Int("signal"), opts...)
		},
	})
	register(Entry{
		Name:     "pgo",
		Category: model.CategoryMomentum,
		Params:   []string{"length"},
		Run: single(func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.Metric {
			return indicator.PGO(df.High, df.Low, df.Close, p.Int("length"), opts...)
		}),
	})
}

func trend() {
	register(Entry{
		Name:     "dpo",
		Category: model.CategoryTrend,
		Params:   []string{"length"},
		Run: single(func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.Metric {
			return indicator.DPO(df.Close, p.Int("length"), opts...)
		}),
	})
}

func volume() {
	register(Entry{
		Name:     "pvi",
		Category: model.CategoryVolume,
		Params:   []string{"length", "initial"},
		Run: single(func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.Metric {
			return indicator.PVI(df.Close, df.Volume, p.Int("length"), p.Float("initial"), opts...)
		}),
	})
}

func volatility() {
	register(Entry{
		Name:      "truerange",
		Category:  model.CategoryVolatility,
		Reference: true,
		Run: single(func(df *model.Dataframe, _ Params, opts ...indicator.Option) *model.Metric {
			return indicator.TrueRange(df.High, df.Low, df.Close, opts...)
		}),
	})
	register(Entry{
		Name:      "atr",
		Category:  model.CategoryVolatility,
		Params:    []string{"length"},
		Reference: true,
		Run: single(func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.Metric {
			return indicator.ATR(df.High, df.Low, df.Close, p.Int("length"), opts...)
		}),
	})
	register(Entry{
		Name:      "natr",
		Category:  model.CategoryVolatility,
		Params:    []string{"length"},
		Reference: true,
		Bundled:   []indicator.Option{indicator.WithMamode(indicator.ModeRMA)},
		Run: single(func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.Metric {
			return indicator.NATR(df.High, df.Low, df.Close, p.Int("length"), opts...)
		}),
	})
	register(Entry{
		Name:      "bbands",
		Category:  model.CategoryVolatility,
		Params:    []string{"length", "std"},
		Reference: true,
		Run: func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.MetricFrame {
			return indicator.BBands(df.Close, p.Int("length"), p.Float("std"), opts...)
		},
	})
	register(Entry{
		Name:     "donchian",
		Category: model.CategoryVolatility,
		Params:   []string{"lower", "upper"},
		Run: func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.MetricFrame {
			return indicator.Donchian(df.High, df.Low, p.Int("lower"), p.Int("upper"), opts...)
		},
	})
	register(Entry{
		Name:     "kc",
		Category: model.CategoryVolatility,
		Params:   []string{"length", "scalar"},
		Run: func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.MetricFrame {
			return indicator.KC(df.High, df.Low, df.Close, p.Int("length"), p.Float("scalar"), opts...)
		},
	})
	register(Entry{
		Name:     "massi",
		Category: model.CategoryVolatility,
		Params:   []string{"fast", "slow"},
		Run: single(func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.Metric {
			return indicator.MASSI(df.High, df.Low, p.Int("fast"), p.Int("slow"), opts...)
		}),
	})
	register(Entry{
		Name:     "pdist",
		Category: model.CategoryVolatility,
		Run: single(func(df *model.Dataframe, _ Params, opts ...indicator.Option) *model.Metric {
			return indicator.PDIST(df.Open, df.High, df.Low, df.Close, opts...)
		}),
	})
	register(Entry{
		Name:     "aberration",
		Category: model.CategoryVolatility,
		Params:   []string{"length", "atr_length"},
		Run: func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.MetricFrame {
			return indicator.Aberration(df.High, df.Low, df.Close, p.Int("length"), p.Int("atr_length"), opts...)
		},
	})
	register(Entry{
		Name:     "accbands",
		Category: model.CategoryVolatility,
		Params:   []string{"length", "c"},
		Run: func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.MetricFrame {
			return indicator.AccBands(df.High, df.Low, df.Close, p.Int("length"), p.Float("c"), opts...)
		},
	})
	register(Entry{
		Name:     "thermo",
		Category: model.CategoryVolatility,
		Params:   []string{"length", "long", "short"},
		Run: func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.MetricFrame {
			return indicator.Thermo(df.High, df.Low, p.Int("length"), p.Float("long"), p.Float("short"), opts...)
		},
	})
	register(Entry{
		Name:     "ui",
		Category: model.CategoryVolatility,
		Params:   []string{"length"},
		Run: single(func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.Metric {
			return indicator.UI(df.Close, p.Int("length"), opts...)
		}),
	})
	register(Entry{
		Name:     "rvi",
		Category: model.CategoryVolatility,
		Params:   []string{"length"},
		Run: single(func(df *model.Dataframe, p Params, opts ...indicator.Option) *model.Metric {
			return indicator.RVI(df.Close, df.High, df.Low, p.Int("length"), opts...)
		}),
	})
	register(Entry{
		Name:     "hwc",
		Category: model.CategoryVolatility,
		Run: func(df *model.Dataframe, _ Params, opts ...indicator.Option) *model.MetricFrame {
			return indicator.HWC(df.Close, opts...)
		},
	})
}
