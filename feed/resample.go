package feed

import (
	"fmt"
	"math"
	"time"

	"github.com/xhit/go-str2duration/v2"

	"github.com/ninjaquant/ninjata/model"
)

// ParseWindow parses durations such as "30d", "12h" or "1w2d".
func ParseWindow(value string) (time.Duration, error) {
	duration, err := str2duration.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid window %q: %w", value, err)
	}
	return duration, nil
}

// LimitString is Limit with the duration given as text.
func (f *Feed) LimitString(value string) (*Feed, error) {
	duration, err := ParseWindow(value)
	if err != nil {
		return nil, err
	}
	return f.Limit(duration), nil
}

func isFirstCandlePeriod(t time.Time, fromTimeframe, targetTimeframe string) (bool, error) {
	fromDuration, err := str2duration.ParseDuration(fromTimeframe)
	if err != nil {
		return false, err
	}

	prev := t.Add(-fromDuration).UTC()

	return isLastCandlePeriod(prev, fromTimeframe, targetTimeframe)
}

func isLastCandlePeriod(t time.Time, fromTimeframe, targetTimeframe string) (bool, error) {
	if fromTimeframe == targetTimeframe {
		return true, nil
	}

	fromDuration, err := str2duration.ParseDuration(fromTimeframe)
	if err != nil {
		return false, err
	}

	next := t.Add(fromDuration).UTC()

	switch targetTimeframe {
	case "1m":
		return next.Second()%60 == 0, nil
	case "5m":
		return next.Minute()%5 == 0, nil
	case "10m":
		return next.Minute()%10 == 0, nil
	case "15m":
		return next.Minute()%15 == 0, nil
	case "30m":
		return next.Minute()%30 == 0, nil
	case "1h":
		return next.Minute()%60 == 0, nil
	case "2h":
		return next.Minute() == 0 && next.Hour()%2 == 0, nil
	case "4h":
		return next.Minute() == 0 && next.Hour()%4 == 0, nil
	case "12h":
		return next.Minute() == 0 && next.Hour()%12 == 0, nil
	case "1d":
		return next.Minute() == 0 && next.Hour()%24 == 0, nil
	case "1w":
		return next.Minute() == 0 && next.Hour()%24 == 0 && next.Weekday() == time.Sunday, nil
	}

	return false, fmt.Errorf("invalid timeframe: %s", targetTimeframe)
}

// resample merges the source candles of pair into targetTimeframe candles.
// Leading candles before the first full period and a trailing incomplete
// period are dropped.
func (f *Feed) resample(pair, sourceTimeframe, targetTimeframe string) error {
	source := f.candles[key(pair, sourceTimeframe)]

	var i int
	for ; i < len(source); i++ {
		ok, err := isFirstCandlePeriod(source[i].Time, sourceTimeframe, targetTimeframe)
		if err != nil {
			return err
		}
		if ok {
			break
		}
	}

	candles := make([]model.Candle, 0)
	for ; i < len(source); i++ {
		candle := source[i]
		last, err := isLastCandlePeriod(candle.Time, sourceTimeframe, targetTimeframe)
		if err != nil {
			return err
		}
		candle.Complete = last

		lastIndex := len(candles) - 1
		if lastIndex >= 0 && !candles[lastIndex].Complete {
			candle.Time = candles[lastIndex].Time
			candle.Open = candles[lastIndex].Open
			candle.High = math.Max(candles[lastIndex].High, candle.High)
			candle.Low = math.Min(candles[lastIndex].Low, candle.Low)
			candle.Volume += candles[lastIndex].Volume
			candles[lastIndex] = candle
			continue
		}
		candles = append(candles, candle)
	}

	if len(candles) > 0 && !candles[len(candles)-1].Complete {
		candles = candles[:len(candles)-1]
	}
	if len(candles) == 0 {
		return ErrInsufficientData
	}

	f.candles[key(pair, targetTimeframe)] = candles
	return nil
}
