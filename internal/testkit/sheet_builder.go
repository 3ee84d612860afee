package testkit

import (
	"encoding/json"
	"fmt"
)

const (
	baseColumnID = int64(3981351074090884)
	baseRowID    = int64(1014082926061444)

	// Timestamp in the form the Smartsheet SDK writes it.
	sdkTimestamp = "2024-01-01T00:00:00+00:00Z"
)

// SheetBuilder assembles raw Smartsheet payloads for tests. Row values are
// positional; nil produces an empty cell.
type SheetBuilder struct {
	id      int64
	name    string
	columns []string
	rows    [][]any
}

// NewSheetBuilder starts a sheet with the given id and name.
func NewSheetBuilder(id int64, name string) *SheetBuilder {
	return &SheetBuilder{id: id, name: name}
}

// WithColumns appends columns in order.
func (b *SheetBuilder) WithColumns(titles ...string) *SheetBuilder {
	b.columns = append(b.columns, titles...)
	return b
}

// AddRow appends a row. It panics if the value count does not match the
// column count, which is always a mistake in the test itself.
func (b *SheetBuilder) AddRow(values ...any) *SheetBuilder {
	if len(values) != len(b.columns) {
		panic(fmt.Sprintf("testkit: row has %d values for %d columns", len(values), len(b.columns)))
	}
	b.rows = append(b.rows, values)
	return b
}

// ColumnID returns the id assigned to a column title, or 0.
func (b *SheetBuilder) ColumnID(title string) int64 {
	for i, t := range b.columns {
		if t == title {
			return columnID(i)
		}
	}
	return 0
}

// Build renders the payload.
func (b *SheetBuilder) Build() []byte {
	columns := make([]map[string]any, len(b.columns))
	for i, title := range b.columns {
		columns[i] = map[string]any{
			"id":         columnID(i),
			"index":      i,
			"title":      title,
			"type":       "TEXT_NUMBER",
			"validation": false,
			"version":    0,
			"width":      150,
			"primary":    i == 0,
		}
	}

	rows := make([]map[string]any, len(b.rows))
	for i, values := range b.rows {
		cells := make([]map[string]any, len(values))
		for j, v := range values {
			cell := map[string]any{"columnId": columnID(j)}
			if v != nil {
				cell["value"] = v
				cell["displayValue"] = fmt.Sprint(v)
			}
			cells[j] = cell
		}
		row := map[string]any{
			"id":         baseRowID + int64(i)*4503599627370,
			"rowNumber":  i + 1,
			"expanded":   true,
			"createdAt":  sdkTimestamp,
			"modifiedAt": sdkTimestamp,
			"cells":      cells,
		}
		if i > 0 {
			row["siblingId"] = baseRowID + int64(i-1)*4503599627370
		}
		rows[i] = row
	}

	payload := map[string]any{
		"id":                         b.id,
		"name":                       b.name,
		"permalink":                  fmt.Sprintf("https://app.smartsheet.com/sheets/%d", b.id),
		"accessLevel":                "VIEWER",
		"version":                    3,
		"totalRowCount":              len(rows),
		"readOnly":                   true,
		"dependenciesEnabled":        false,
		"ganttEnabled":               false,
		"hasSummaryFields":           false,
		"resourceManagementEnabled":  false,
		"effectiveAttachmentOptions": []string{"FILE", "LINK"},
		"userPermissions":            map[string]any{"summaryPermissions": "READ_ONLY"},
		"userSettings":               map[string]any{"criticalPathEnabled": false},
		"createdAt":                  sdkTimestamp,
		"modifiedAt":                 sdkTimestamp,
		"columns":                    columns,
		"rows":                       rows,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		panic(fmt.Sprintf("testkit: marshal sheet: %v", err))
	}
	return raw
}

func columnID(i int) int64 {
	return baseColumnID + int64(i)*1125899906842
}
