package study

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ninjaquant/ninjata/indicator"
	"github.com/ninjaquant/ninjata/series"
)

var ErrInvalidConfig = errors.New("invalid study config")

// Definition is one indicator evaluation of a study file.
type Definition struct {
	Name       string   `yaml:"name" validate:"required"`
	Params     Params   `yaml:"params"`
	Offset     int      `yaml:"offset"`
	Fillna     *float64 `yaml:"fillna"`
	FillMethod string   `yaml:"fill_method" validate:"omitempty,oneof=ffill pad bfill backfill"`
	Talib      *bool    `yaml:"talib"`
	Mamode     string   `yaml:"mamode" validate:"omitempty,oneof=sma ema rma wma fwma"`
	Presma     *bool    `yaml:"presma"`
	Adjust     bool     `yaml:"adjust"`
	Scalar     *float64 `yaml:"scalar"`
	Drift      int      `yaml:"drift" validate:"gte=0"`
	Ddof       *int     `yaml:"ddof" validate:"omitempty,gte=0,lte=1"`

	// Switches toggles the boolean options of single indicators, e.g.
	// percent for ATR or everget for UI.
	Switches map[string]bool `yaml:"switches" validate:"omitempty,dive,keys,oneof=ascending centered lookahead percent everget refined thirds truerange channel_eval,endkeys"`
}

// Config is a study file: the definitions to evaluate, in order.
type Config struct {
	Studies  []Definition `yaml:"studies" validate:"required,min=1,dive"`
	Progress bool         `yaml:"progress"`
}

var switches = map[string]func(bool) indicator.Option{
	"ascending":    indicator.WithAscending,
	"centered":     indicator.WithCentered,
	"lookahead":    indicator.WithLookahead,
	"percent":      indicator.WithPercent,
	"everget":      indicator.WithEverget,
	"refined":      indicator.WithRefined,
	"thirds":       indicator.WithThirds,
	"truerange":    indicator.WithTrueRange,
	"channel_eval": indicator.WithChannelEval,
}

// Options converts the definition into indicator options. Fillna wins over
// FillMethod when both are set.
func (d Definition) Options() ([]indicator.Option, error) {
	opts := []indicator.Option{
		indicator.WithOffset(d.Offset),
		indicator.WithAdjust(d.Adjust),
		indicator.WithDrift(d.Drift),
	}

	if d.FillMethod != "" {
		method, err := series.ParseFillMethod(d.FillMethod)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, d.Name, err)
		}
		opts = append(opts, indicator.WithFillMethod(method))
	}
	if d.Fillna != nil {
		opts = append(opts, indicator.WithFillna(*d.Fillna))
	}
	if d.Talib != nil {
		opts = append(opts, indicator.WithTalib(*d.Talib))
	}
	if d.Presma != nil {
		opts = append(opts, indicator.WithPresma(*d.Presma))
	}
	if d.Scalar != nil {
		opts = append(opts, indicator.WithScalar(*d.Scalar))
	}
	if d.Ddof != nil {
		opts = append(opts, indicator.WithDdof(*d.Ddof))
	}
	if d.Mamode != "" {
		opts = append(opts, indicator.WithMamode(d.Mamode))
	}

	for name, enabled := range d.Switches {
		option, ok := switches[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s: unknown switch %s", ErrInvalidConfig, d.Name, name)
		}
		opts = append(opts, option(enabled))
	}

	return opts, nil
}

// ParseConfig decodes and validates a YAML study file. Every definition must
// name a registered indicator.
func ParseConfig(r io.Reader) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for _, definition := range cfg.Studies {
		if _, err := Lookup(definition.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	return &cfg, nil
}

// LoadConfig reads a study file from disk.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseConfig(file)
}
