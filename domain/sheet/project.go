package sheet

// ColumnIDMap maps a column id to the column title.
type ColumnIDMap map[int64]string

// ProjectedRow maps a column title to the raw cell value of one row.
type ProjectedRow map[string]any

// NewColumnIDMap builds the id to title lookup for one payload. When two
// columns share an id the later one wins.
func NewColumnIDMap(columns []Column) ColumnIDMap {
	ids := make(ColumnIDMap, len(columns))
	for _, c := range columns {
		ids[c.ID] = c.Title
	}
	return ids
}

// ProjectRow keys a row's cell values by column title. Columns without a cell
// are absent from the result; if two columns share a title the later cell
// wins.
func ProjectRow(row Row, ids ColumnIDMap) (ProjectedRow, error) {
	out := make(ProjectedRow, len(row.Cells))
	for _, cell := range row.Cells {
		title, ok := ids[cell.ColumnID]
		if !ok {
			return nil, &RowLookupError{RowID: row.ID, RowNumber: row.RowNumber, ColumnID: cell.ColumnID}
		}
		out[title] = cell.Value
	}
	return out, nil
}

// Project projects every row of the sheet, in sheet order.
func Project(fields *Fields) ([]ProjectedRow, error) {
	ids := NewColumnIDMap(fields.Columns)
	rows := make([]ProjectedRow, 0, len(fields.Rows))
	for _, row := range fields.Rows {
		projected, err := ProjectRow(row, ids)
		if err != nil {
			return nil, err
		}
		rows = append(rows, projected)
	}
	return rows, nil
}
