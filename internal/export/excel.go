package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vantagesec/laborcalc/internal/labor"
)

// ResultExcel renders the result table as an xlsx workbook: header row,
// one row per device line, and a bold totals row.
func ResultExcel(vehicleName string, result labor.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Labor Analysis"
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	widths := []float64{12, 24, 8, 10, 12, 10, 12, 12, 12, 12, 10, 20}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name %d: %w", i+1, err)
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	totalsStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create totals style: %w", err)
	}

	header := make([]any, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "L1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header row: %w", err)
	}

	row := 2
	for _, line := range result.Lines {
		cell := fmt.Sprintf("A%d", row)
		values := []any{
			line.Category, line.Type, line.Hours, line.HourlyRate,
			line.LaborCost, line.TravelCost, line.Overhead, line.TrueCost,
			line.MarkupAmount, line.SellPrice, line.ActualMargin, vehicleName,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	totalsCell := fmt.Sprintf("A%d", row)
	totals := []any{
		"TOTALS", nil, nil, nil, nil, nil, nil,
		result.Totals.TrueCost, result.Totals.Markup, result.Totals.SellPrice,
		nil, vehicleName,
	}
	if err := f.SetSheetRow(sheetName, totalsCell, &totals); err != nil {
		return nil, fmt.Errorf("write totals row: %w", err)
	}
	if err := f.SetCellStyle(sheetName, totalsCell, fmt.Sprintf("L%d", row), totalsStyle); err != nil {
		return nil, fmt.Errorf("style totals row: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
