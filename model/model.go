package model

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Dataframe holds aligned OHLCV series for a single pair.
type Dataframe struct {
	Pair string

	Close  Series[float64]
	Open   Series[float64]
	High   Series[float64]
	Low    Series[float64]
	Volume Series[float64]

	Time []time.Time

	// Metadata keeps extra numeric columns found in the source.
	Metadata map[string]Series[float64]
}

// Len returns the number of rows in the dataframe.
func (df Dataframe) Len() int {
	return len(df.Close)
}

// Sample returns the last positions rows of the dataframe.
func (df Dataframe) Sample(positions int) Dataframe {
	size := len(df.Time)
	start := size - positions
	if start <= 0 {
		return df
	}

	sample := Dataframe{
		Pair:     df.Pair,
		Close:    df.Close.LastValues(positions),
		Open:     df.Open.LastValues(positions),
		High:     df.High.LastValues(positions),
		Low:      df.Low.LastValues(positions),
		Volume:   df.Volume.LastValues(positions),
		Time:     df.Time[start:],
		Metadata: make(map[string]Series[float64]),
	}

	for key := range df.Metadata {
		sample.Metadata[key] = df.Metadata[key].LastValues(positions)
	}

	return sample
}

// Append adds a candle as the newest row of the dataframe.
func (df *Dataframe) Append(candle Candle) {
	df.Close = append(df.Close, candle.Close)
	df.Open = append(df.Open, candle.Open)
	df.High = append(df.High, candle.High)
	df.Low = append(df.Low, candle.Low)
	df.Volume = append(df.Volume, candle.Volume)
	df.Time = append(df.Time, candle.Time)

	for key, value := range candle.Metadata {
		if df.Metadata == nil {
			df.Metadata = make(map[string]Series[float64])
		}
		df.Metadata[key] = append(df.Metadata[key], value)
	}
}

// NewDataframe builds a dataframe from candles ordered oldest first.
func NewDataframe(pair string, candles []Candle) *Dataframe {
	df := &Dataframe{
		Pair:     pair,
		Close:    make(Series[float64], 0, len(candles)),
		Open:     make(Series[float64], 0, len(candles)),
		High:     make(Series[float64], 0, len(candles)),
		Low:      make(Series[float64], 0, len(candles)),
		Volume:   make(Series[float64], 0, len(candles)),
		Time:     make([]time.Time, 0, len(candles)),
		Metadata: make(map[string]Series[float64]),
	}
	for _, candle := range candles {
		df.Append(candle)
	}
	return df
}

// Candle is a single OHLCV bar.
type Candle struct {
	Pair     string
	Time     time.Time
	Open     float64
	Close    float64
	Low      float64
	High     float64
	Volume   float64
	Complete bool

	Metadata map[string]float64
}

// Empty reports whether the candle carries no data.
func (c Candle) Empty() bool {
	return c.Pair == "" && c.Close == 0 && c.Open == 0 && c.Volume == 0
}

// ToSlice renders the candle as a CSV row: time, open, close, low, high, volume.
func (c Candle) ToSlice(precision int) []string {
	return []string{
		fmt.Sprintf("%d", c.Time.Unix()),
		strconv.FormatFloat(c.Open, 'f', precision, 64),
		strconv.FormatFloat(c.Close, 'f', precision, 64),
		strconv.FormatFloat(c.Low, 'f', precision, 64),
		strconv.FormatFloat(c.High, 'f', precision, 64),
		strconv.FormatFloat(c.Volume, 'f', precision, 64),
	}
}

// ToHeikinAshi converts the candle using the running Heikin-Ashi state.
func (c Candle) ToHeikinAshi(ha *HeikinAshi) Candle {
	haCandle := ha.CalculateHeikinAshi(c)

	return Candle{
		Pair:     c.Pair,
		Open:     haCandle.Open,
		High:     haCandle.High,
		Low:      haCandle.Low,
		Close:    haCandle.Close,
		Volume:   c.Volume,
		Complete: c.Complete,
		Time:     c.Time,
		Metadata: c.Metadata,
	}
}

// HeikinAshi carries the previous smoothed candle between conversions.
type HeikinAshi struct {
	PreviousHACandle Candle
}

func NewHeikinAshi() *HeikinAshi {
	return &HeikinAshi{}
}

// CalculateHeikinAshi returns the Heikin-Ashi candle for c and stores it as
// the previous candle for the next call.
func (ha *HeikinAshi) CalculateHeikinAshi(c Candle) Candle {
	var hkCandle Candle

	openValue := ha.PreviousHACandle.Open
	closeValue := ha.PreviousHACandle.Close

	// first candle
	if ha.PreviousHACandle.Empty() {
		openValue = c.Open
		closeValue = c.Close
	}

	hkCandle.Open = (openValue + closeValue) / 2
	hkCandle.Close = (c.Open + c.High + c.Low + c.Close) / 4
	hkCandle.High = math.Max(c.High, math.Max(hkCandle.Open, hkCandle.Close))
	hkCandle.Low = math.Min(c.Low, math.Min(hkCandle.Open, hkCandle.Close))
	ha.PreviousHACandle = hkCandle

	return hkCandle
}
