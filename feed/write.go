package feed

import (
	"encoding/csv"
	"io"

	"github.com/ninjaquant/ninjata/model"
)

var header = []string{"time", "open", "close", "low", "high", "volume"}

// Write stores candles in the positional layout Read expects, with a header
// row and values rounded to precision decimals. Metadata is not written.
func Write(w io.Writer, candles []model.Candle, precision int) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, candle := range candles {
		if err := writer.Write(candle.ToSlice(precision)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
