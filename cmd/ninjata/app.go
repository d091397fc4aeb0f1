package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ninjaquant/ninjata/feed"
	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/study"
	"github.com/ninjaquant/ninjata/tools/log"
)

var inputFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "eg. ./btc-1h.csv",
		Required: true,
	},
	&cli.StringFlag{
		Name:    "pair",
		Aliases: []string{"p"},
		Usage:   "eg. BTCUSDT",
		Value:   "BTCUSDT",
	},
	&cli.StringFlag{
		Name:    "timeframe",
		Aliases: []string{"t"},
		Usage:   "timeframe of the input, eg. 1h",
		Value:   "1h",
	},
	&cli.StringFlag{
		Name:  "resample",
		Usage: "target timeframe, eg. 4h",
	},
	&cli.StringFlag{
		Name:  "limit",
		Usage: "keep only the last window of candles, eg. 30d",
	},
	&cli.BoolFlag{
		Name:  "heikin-ashi",
		Usage: "convert candles to Heikin-Ashi",
	},
}

func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "ninjata",
		HelpName:  "ninjata",
		Usage:     "Technical indicators over OHLCV files",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "eg. debug, info, warn",
				Value: "info",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log path selection and fallbacks, same as --log-level debug",
			},
		},
		Before: func(c *cli.Context) error {
			log.SetOutput(c.App.ErrWriter)
			log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

			level, err := log.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			if c.Bool("debug") {
				level = log.DebugLevel
			}
			log.SetLevel(level)
			return nil
		},
		Commands: []*cli.Command{
			computeCommand(),
			studyCommand(),
			compareCommand(),
			listCommand(),
			exportCommand(),
		},
	}
}

func flags(extra ...cli.Flag) []cli.Flag {
	return append(append([]cli.Flag{}, inputFlags...), extra...)
}

func computeCommand() *cli.Command {
	return &cli.Command{
		Name:     "compute",
		HelpName: "compute",
		Usage:    "Compute one indicator",
		Flags: flags(
			&cli.StringFlag{
				Name:     "indicator",
				Aliases:  []string{"n"},
				Usage:    "eg. t3",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "param",
				Usage: "indicator parameter, eg. length=14",
			},
			&cli.BoolFlag{
				Name:  "talib",
				Usage: "use the TA-Lib computation when available",
				Value: true,
			},
			&cli.IntFlag{
				Name:  "offset",
				Usage: "shift the result by k bars",
			},
			&cli.Float64Flag{
				Name:  "fillna",
				Usage: "replace nulls by a constant",
			},
			&cli.StringFlag{
				Name:  "fill-method",
				Usage: "ffill or bfill",
			},
			&cli.StringFlag{
				Name:  "mamode",
				Usage: "inner moving average, eg. ema",
			},
			&cli.IntFlag{
				Name:  "tail",
				Usage: "number of rows to print",
				Value: 20,
			},
		),
		Action: func(c *cli.Context) error {
			df, err := loadDataframe(c)
			if err != nil {
				return err
			}

			params, err := parseParams(c.StringSlice("param"))
			if err != nil {
				return err
			}

			definition := study.Definition{
				Name:       c.String("indicator"),
				Params:     params,
				Offset:     c.Int("offset"),
				FillMethod: c.String("fill-method"),
				Mamode:     c.String("mamode"),
			}
			if c.IsSet("talib") {
				talib := c.Bool("talib")
				definition.Talib = &talib
			}
			if c.IsSet("fillna") {
				fillna := c.Float64("fillna")
				definition.Fillna = &fillna
			}

			frame, err := study.Evaluate(df, definition)
			if err != nil {
				return err
			}

			return printFrames(c.App.Writer, df, []*model.MetricFrame{frame}, c.Int("tail"))
		},
	}
}

func studyCommand() *cli.Command {
	return &cli.Command{
		Name:     "study",
		HelpName: "study",
		Usage:    "Run every indicator of a study file",
		Flags: flags(
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "eg. ./study.yaml",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write every row as CSV, eg. ./out.csv",
			},
			&cli.IntFlag{
				Name:  "tail",
				Usage: "number of rows to print without --output",
				Value: 20,
			},
		),
		Action: func(c *cli.Context) error {
			cfg, err := study.LoadConfig(c.String("config"))
			if err != nil {
				return err
			}

			df, err := loadDataframe(c)
			if err != nil {
				return err
			}

			result, err := study.Run(df, cfg)
			if err != nil {
				return err
			}

			output := c.String("output")
			if output == "" {
				return printFrames(c.App.Writer, df, result.Frames, c.Int("tail"))
			}

			file, err := os.Create(output)
			if err != nil {
				return err
			}
			defer func() {
				log.CheckErr(log.WarnLevel, file.Close())
			}()

			if err := study.WriteCSV(file, df, result); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			log.Infof("%d columns written to %s", len(result.Columns), output)
			return nil
		},
	}
}

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:     "compare",
		HelpName: "compare",
		Usage:    "Compare the bundled and TA-Lib computations",
		Flags: flags(
			&cli.StringSliceFlag{
				Name:    "indicator",
				Aliases: []string{"n"},
				Usage:   "indicators to compare (default every indicator with a TA-Lib computation)",
			},
		),
		Action: func(c *cli.Context) error {
			df, err := loadDataframe(c)
			if err != nil {
				return err
			}

			names := c.StringSlice("indicator")
			if len(names) == 0 {
				for _, entry := range study.Entries() {
					if entry.Reference {
						names = append(names, entry.Name)
					}
				}
			}

			var comparisons []study.Comparison
			for _, name := range names {
				result, err := study.Compare(df, name, nil)
				if err != nil {
					return err
				}
				comparisons = append(comparisons, result...)
			}

			printComparisons(c.App.Writer, comparisons)
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:     "list",
		HelpName: "list",
		Usage:    "List the available indicators",
		Action: func(c *cli.Context) error {
			printEntries(c.App.Writer, study.Entries())
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:     "export",
		HelpName: "export",
		Usage:    "Write the loaded, resampled candles as CSV",
		Flags: flags(
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "eg. ./btc-4h.csv",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "precision",
				Usage: "decimal places",
				Value: 8,
			},
		),
		Action: func(c *cli.Context) error {
			data, pair, timeframe, err := loadFeed(c)
			if err != nil {
				return err
			}

			file, err := os.Create(c.String("output"))
			if err != nil {
				return err
			}
			defer func() {
				log.CheckErr(log.WarnLevel, file.Close())
			}()

			candles := data.Candles(pair, timeframe)
			if err := feed.Write(file, candles, c.Int("precision")); err != nil {
				return err
			}
			log.Infof("%d candles written to %s", len(candles), c.String("output"))
			return nil
		},
	}
}

func loadDataframe(c *cli.Context) (*model.Dataframe, error) {
	data, pair, timeframe, err := loadFeed(c)
	if err != nil {
		return nil, err
	}
	return data.Dataframe(pair, timeframe)
}

// loadFeed reads the input flags and returns the feed with the pair and
// timeframe to read from it.
func loadFeed(c *cli.Context) (*feed.Feed, string, string, error) {
	source := feed.Source{
		Pair:       c.String("pair"),
		File:       c.String("input"),
		Timeframe:  c.String("timeframe"),
		HeikinAshi: c.Bool("heikin-ashi"),
	}

	target := c.String("resample")
	data, err := feed.New(target, source)
	if err != nil {
		return nil, "", "", err
	}

	if limit := c.String("limit"); limit != "" {
		data, err = data.LimitString(limit)
		if err != nil {
			return nil, "", "", err
		}
	}

	if target == "" {
		target = source.Timeframe
	}
	return data, source.Pair, target, nil
}

// parseParams reads key=value pairs into indicator parameters.
func parseParams(values []string) (study.Params, error) {
	params := make(study.Params, len(values))
	for _, value := range values {
		name, raw, ok := strings.Cut(value, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid param %q, expected key=value", value)
		}
		number, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid param %q: %w", value, err)
		}
		params[strings.ToLower(strings.TrimSpace(name))] = number
	}
	return params, nil
}
