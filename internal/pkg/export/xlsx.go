package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Table is a single worksheet: an optional title row, a bold header row and
// the data rows beneath it.
type Table struct {
	Sheet   string
	Title   string
	Headers []string
	Rows    [][]interface{}
}

// XLSX renders the tables into one workbook, one sheet per table.
func XLSX(tables ...Table) ([]byte, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("at least one table is required")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.Sheet); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(t.Sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", t.Sheet, err)
		}

		if err := writeTable(f, t, headerStyle, titleStyle); err != nil {
			return nil, fmt.Errorf("failed to write sheet %s: %w", t.Sheet, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, t Table, headerStyle, titleStyle int) error {
	row := 1
	if t.Title != "" {
		if err := f.SetCellValue(t.Sheet, "A1", t.Title); err != nil {
			return err
		}
		if err := f.SetCellStyle(t.Sheet, "A1", "A1", titleStyle); err != nil {
			return err
		}
		row = 3
	}

	headerCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	headers := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(t.Sheet, headerCell, &headers); err != nil {
		return err
	}
	if len(t.Headers) > 0 {
		lastHeader, err := excelize.CoordinatesToCellName(len(t.Headers), row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(t.Sheet, headerCell, lastHeader, headerStyle); err != nil {
			return err
		}
		lastCol, err := excelize.ColumnNumberToName(len(t.Headers))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.Sheet, "A", lastCol, 18); err != nil {
			return err
		}
	}

	for i, values := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, row+1+i)
		if err != nil {
			return err
		}
		rowValues := values
		if err := f.SetSheetRow(t.Sheet, cell, &rowValues); err != nil {
			return err
		}
	}
	return nil
}
