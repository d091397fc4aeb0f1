// Package feed loads OHLCV candles from CSV files and turns them into
// dataframes the indicators can run on.
package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/ninjaquant/ninjata/model"
)

var ErrInsufficientData = errors.New("insufficient data")

// Source describes one CSV file of candles.
type Source struct {
	Pair       string
	File       string
	Timeframe  string
	HeikinAshi bool
}

// Feed keeps the candles of every loaded source keyed by pair and timeframe.
type Feed struct {
	Sources map[string]Source
	candles map[string][]model.Candle
}

func key(pair, timeframe string) string {
	return fmt.Sprintf("%s--%s", pair, timeframe)
}

// New loads every source and resamples it to targetTimeframe.
func New(targetTimeframe string, sources ...Source) (*Feed, error) {
	feed := &Feed{
		Sources: make(map[string]Source),
		candles: make(map[string][]model.Candle),
	}

	for _, source := range sources {
		candles, err := Load(source)
		if err != nil {
			return nil, err
		}

		feed.Sources[source.Pair] = source
		feed.candles[key(source.Pair, source.Timeframe)] = candles

		if targetTimeframe == "" || targetTimeframe == source.Timeframe {
			continue
		}
		if err := feed.resample(source.Pair, source.Timeframe, targetTimeframe); err != nil {
			return nil, fmt.Errorf("resample %s: %w", source.Pair, err)
		}
	}

	return feed, nil
}

// Load reads the candles of a single source.
func Load(source Source) ([]model.Candle, error) {
	file, err := os.Open(source.File)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	candles, err := Read(file, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source.File, err)
	}
	return candles, nil
}

// Read parses CSV rows of time, open, close, low, high, volume. A header row
// may reorder the columns; unknown header columns are kept as metadata.
func Read(r io.Reader, source Source) ([]model.Candle, error) {
	lines, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrInsufficientData
	}

	index, additional, hasHeaders := parseHeaders(lines[0])
	if hasHeaders {
		lines = lines[1:]
	}

	ha := model.NewHeikinAshi()
	candles := make([]model.Candle, 0, len(lines))
	for row, line := range lines {
		candle, err := parseLine(line, index, additional)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		candle.Pair = source.Pair
		if source.HeikinAshi {
			candle = candle.ToHeikinAshi(ha)
		}
		candles = append(candles, candle)
	}

	if len(candles) == 0 {
		return nil, ErrInsufficientData
	}
	return candles, nil
}

func parseHeaders(headers []string) (index map[string]int, additional []string, ok bool) {
	index = map[string]int{
		"time": 0, "open": 1, "close": 2, "low": 3, "high": 4, "volume": 5,
	}

	if _, err := parseTime(headers[0]); err == nil {
		return index, additional, false
	}

	for i, h := range headers {
		if _, ok := index[h]; !ok {
			additional = append(additional, h)
		}
		index[h] = i
	}

	return index, additional, true
}

func parseLine(line []string, index map[string]int, additional []string) (model.Candle, error) {
	for _, column := range []string{"time", "open", "close", "low", "high", "volume"} {
		if index[column] >= len(line) {
			return model.Candle{}, fmt.Errorf("missing column %s", column)
		}
	}

	ts, err := parseTime(line[index["time"]])
	if err != nil {
		return model.Candle{}, err
	}

	candle := model.Candle{
		Time:     ts,
		Complete: true,
	}

	fields := []struct {
		column string
		target *float64
	}{
		{"open", &candle.Open},
		{"close", &candle.Close},
		{"low", &candle.Low},
		{"high", &candle.High},
		{"volume", &candle.Volume},
	}
	for _, field := range fields {
		*field.target, err = strconv.ParseFloat(line[index[field.column]], 64)
		if err != nil {
			return model.Candle{}, fmt.Errorf("%s: %w", field.column, err)
		}
	}

	if len(additional) > 0 {
		candle.Metadata = make(map[string]float64, len(additional))
		for _, header := range additional {
			candle.Metadata[header], err = strconv.ParseFloat(line[index[header]], 64)
			if err != nil {
				return model.Candle{}, fmt.Errorf("%s: %w", header, err)
			}
		}
	}

	return candle, nil
}

// parseTime accepts unix seconds or RFC 3339.
func parseTime(value string) (time.Time, error) {
	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(seconds, 0).UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q", value)
	}
	return ts.UTC(), nil
}

// Candles returns the candles of pair at timeframe.
func (f *Feed) Candles(pair, timeframe string) []model.Candle {
	return f.candles[key(pair, timeframe)]
}

// Dataframe returns the candles of pair at timeframe as a dataframe.
func (f *Feed) Dataframe(pair, timeframe string) (*model.Dataframe, error) {
	candles := f.Candles(pair, timeframe)
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrInsufficientData, pair, timeframe)
	}
	return model.NewDataframe(pair, candles), nil
}

// Limit keeps only the candles within duration of each series' last candle.
func (f *Feed) Limit(duration time.Duration) *Feed {
	for k, candles := range f.candles {
		if len(candles) == 0 {
			continue
		}
		start := candles[len(candles)-1].Time.Add(-duration)

		f.candles[k] = lo.Filter(candles, func(candle model.Candle, _ int) bool {
			return candle.Time.After(start)
		})
	}
	return f
}

// Between keeps only the candles inside [start, end].
func (f *Feed) Between(start, end time.Time) *Feed {
	for k, candles := range f.candles {
		f.candles[k] = lo.Filter(candles, func(candle model.Candle, _ int) bool {
			return !candle.Time.Before(start) && !candle.Time.After(end)
		})
	}
	return f
}
