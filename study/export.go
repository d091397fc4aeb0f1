package study

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/ninjaquant/ninjata/model"
)

// WriteCSV writes the dataframe time and close followed by every result
// column, one row per bar. Null values are written as empty cells.
func WriteCSV(w io.Writer, df *model.Dataframe, result *Result) error {
	writer := csv.NewWriter(w)

	header := append([]string{"time", "close"}, result.Columns...)
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := 0; i < df.Len(); i++ {
		row := make([]string, 0, len(header))
		if i < len(df.Time) {
			row = append(row, df.Time[i].UTC().Format(time.RFC3339))
		} else {
			row = append(row, strconv.Itoa(i))
		}
		row = append(row, formatValue(df.Close[i]))

		for _, name := range result.Columns {
			metric, ok := result.Column(name)
			if !ok || i >= len(metric.Values) {
				return fmt.Errorf("column %s: missing row %d", name, i)
			}
			row = append(row, formatValue(metric.Values[i]))
		}

		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
