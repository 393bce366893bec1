// Package export serializes calculation results and vehicle definitions
// for download: CSV and JSON of the flat result rows, an Excel workbook
// of the result table, and the procurement rates JSON file.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/vantagesec/laborcalc/internal/labor"
)

var csvHeader = []string{
	"Category", "Device", "Hours", "Rate/Hr", "Labor", "Travel",
	"Overhead", "True Cost", "Markup", "Sell Price", "Margin %", "Vehicle",
}

// ResultCSV renders the result table as CSV: one row per device line, a
// trailing totals row, every numeric field present and the vehicle name
// on each row.
func ResultCSV(vehicleName string, result labor.Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, line := range result.Lines {
		record := []string{
			line.Category,
			line.Type,
			formatFloat(line.Hours),
			formatFloat(line.HourlyRate),
			formatFloat(line.LaborCost),
			formatFloat(line.TravelCost),
			formatFloat(line.Overhead),
			formatFloat(line.TrueCost),
			formatFloat(line.MarkupAmount),
			formatFloat(line.SellPrice),
			formatFloat(line.ActualMargin),
			vehicleName,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv line: %w", err)
		}
	}

	totals := []string{
		"TOTALS", "", "", "", "", "", "",
		formatFloat(result.Totals.TrueCost),
		formatFloat(result.Totals.Markup),
		formatFloat(result.Totals.SellPrice),
		"",
		vehicleName,
	}
	if err := w.Write(totals); err != nil {
		return nil, fmt.Errorf("write csv totals: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
