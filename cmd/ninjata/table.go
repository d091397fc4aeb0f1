package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/ninjaquant/ninjata/model"
	"github.com/ninjaquant/ninjata/study"
)

func format(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// printFrames renders the last tail rows of every frame column next to the
// bar time and close. A tail <= 0 prints every row.
func printFrames(w io.Writer, df *model.Dataframe, frames []*model.MetricFrame, tail int) error {
	rows := *df
	if tail > 0 {
		rows = df.Sample(tail)
	}

	header := []string{"Time", "Close"}
	var columns [][]float64
	for _, frame := range frames {
		for _, metric := range frame.Metrics {
			if len(metric.Values) != df.Len() {
				return fmt.Errorf("%s: %d rows, expected %d", metric.Name, len(metric.Values), df.Len())
			}
			header = append(header, metric.Name)
			columns = append(columns, metric.Values.LastValues(rows.Len()))
		}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i := 0; i < rows.Len(); i++ {
		row := make([]string, 0, len(header))
		row = append(row, rows.Time[i].UTC().Format(time.DateTime), format(rows.Close[i]))
		for _, values := range columns {
			row = append(row, format(values[i]))
		}
		table.Append(row)
	}
	table.Render()
	return nil
}

func printComparisons(w io.Writer, comparisons []study.Comparison) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Indicator", "Column", "Points", "Correlation", "Rel. Error", "CI Lower", "CI Upper"})
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})
	for _, c := range comparisons {
		table.Append([]string{
			c.Indicator,
			c.Column,
			strconv.Itoa(c.Points),
			fmt.Sprintf("%.6f", c.Correlation),
			fmt.Sprintf("%.2e", c.RelativeError.Mean),
			fmt.Sprintf("%.2e", c.RelativeError.Lower),
			fmt.Sprintf("%.2e", c.RelativeError.Upper),
		})
	}
	table.Render()
}

func printEntries(w io.Writer, entries []study.Entry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Category", "Params", "TA-Lib"})
	table.SetAutoFormatHeaders(false)
	for _, entry := range entries {
		talib := ""
		if entry.Reference {
			talib = "yes"
		}
		table.Append([]string{entry.Name, string(entry.Category), strings.Join(entry.Params, ", "), talib})
	}
	table.SetFooter([]string{"TOTAL", strconv.Itoa(len(entries)), "", ""})
	table.Render()
}
