// Package excel renders query results as XLSX workbooks.
package excel

import (
	"encoding/json"
	"fmt"
	"io"

	"smartsheetsvc/domain/records"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the produced workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const maxSheetNameLen = 31

// WriteRecords writes one worksheet named sheetName: a bold header row of
// column aliases, then one row per record in order.
func WriteRecords[T any](w io.Writer, sheetName string, recs []T) error {
	headers, err := records.Aliases[T]()
	if err != nil {
		return err
	}
	rows := make([][]any, 0, len(recs))
	for _, rec := range recs {
		values, err := records.Values(rec)
		if err != nil {
			return err
		}
		rows = append(rows, values)
	}
	return WriteTable(w, sheetName, headers, rows)
}

// WriteTable writes an arbitrary header plus rows worksheet.
func WriteTable(w io.Writer, sheetName string, headers []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sanitizeSheetName(sheetName)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	// Header row
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	if len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return err
		}
	}

	// Data rows
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// cellValue keeps numbers numeric and renders dates as YYYY-MM-DD text.
func cellValue(v any) any {
	switch x := v.(type) {
	case records.Decimal:
		return x.Float64()
	case records.Date:
		return x.String()
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case string, bool, float64, int, int64:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func sanitizeSheetName(name string) string {
	if name == "" {
		return "Sheet1"
	}
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			r = '_'
		}
		out = append(out, r)
	}
	if len(out) > maxSheetNameLen {
		out = out[:maxSheetNameLen]
	}
	return string(out)
}
