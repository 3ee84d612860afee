package sheet

import "fmt"

// SchemaValidationError reports a payload that does not match the sheet
// schema: invalid JSON, a missing required key, or a mistyped value.
type SchemaValidationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SchemaValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sheet schema: %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("sheet schema: %s: %s", e.Path, e.Reason)
}

func (e *SchemaValidationError) Unwrap() error {
	return e.Err
}

// RowLookupError reports a cell whose column id is not among the sheet's
// columns. It means the payload is corrupt.
type RowLookupError struct {
	RowID     int64
	RowNumber int
	ColumnID  int64
}

func (e *RowLookupError) Error() string {
	return fmt.Sprintf("row %d (id %d): cell references unknown column id %d", e.RowNumber, e.RowID, e.ColumnID)
}
