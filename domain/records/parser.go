package records

import (
	"fmt"
	"reflect"

	"smartsheetsvc/domain/sheet"
)

// RecordValidationError identifies the row and field that failed to bind.
type RecordValidationError struct {
	Row       int // position in the sheet's row sequence, from 0
	RowNumber int // Smartsheet row number, 0 when unknown
	Field     string
	Alias     string
	Value     any
	Err       error
}

func (e *RecordValidationError) Error() string {
	row := fmt.Sprintf("row %d", e.Row)
	if e.RowNumber > 0 {
		row = fmt.Sprintf("row %d (sheet row %d)", e.Row, e.RowNumber)
	}
	return fmt.Sprintf("%s: field %s (%q): %v", row, e.Field, e.Alias, e.Err)
}

func (e *RecordValidationError) Unwrap() error {
	return e.Err
}

// Outcome is the result of binding one row. Degraded is nil when the record
// validated; otherwise the record was built from raw values by lenient
// parsing and Degraded explains why validation failed.
type Outcome[T any] struct {
	Record   T
	Degraded *RecordValidationError
}

// Checked reports whether the record passed validation.
func (o Outcome[T]) Checked() bool {
	return o.Degraded == nil
}

// Parse binds projected rows onto record type T, preserving row order. In
// strict mode the first row that fails validation aborts the parse. In
// lenient mode such a row is admitted as an unchecked record.
func Parse[T any](rows []sheet.ProjectedRow, strict bool) ([]Outcome[T], error) {
	s, err := schemaOf[T]()
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome[T], 0, len(rows))
	for i, row := range rows {
		rec, verr := bindRow[T](s, row)
		if verr == nil {
			outcomes = append(outcomes, Outcome[T]{Record: rec})
			continue
		}
		verr.Row = i
		if strict {
			return nil, verr
		}
		outcomes = append(outcomes, Outcome[T]{Record: constructUnchecked[T](s, row), Degraded: verr})
	}
	return outcomes, nil
}

// ParseSheet decodes a raw sheet payload and binds every row onto T.
func ParseSheet[T any](raw []byte, strict bool) ([]Outcome[T], error) {
	fields, err := sheet.Decode(raw)
	if err != nil {
		return nil, err
	}
	rows, err := sheet.Project(fields)
	if err != nil {
		return nil, err
	}

	outcomes, err := Parse[T](rows, strict)
	if err != nil {
		if verr, ok := err.(*RecordValidationError); ok {
			verr.RowNumber = fields.Rows[verr.Row].RowNumber
		}
		return nil, err
	}
	for i := range outcomes {
		if outcomes[i].Degraded != nil {
			outcomes[i].Degraded.RowNumber = fields.Rows[i].RowNumber
		}
	}
	return outcomes, nil
}

// Records unwraps outcomes into records, in order.
func Records[T any](outcomes []Outcome[T]) []T {
	out := make([]T, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.Record
	}
	return out
}

// Degraded returns the outcomes that did not validate.
func Degraded[T any](outcomes []Outcome[T]) []*RecordValidationError {
	var out []*RecordValidationError
	for _, o := range outcomes {
		if o.Degraded != nil {
			out = append(out, o.Degraded)
		}
	}
	return out
}

func bindRow[T any](s *schema, row sheet.ProjectedRow) (T, *RecordValidationError) {
	var rec T
	v := reflect.ValueOf(&rec).Elem()
	for _, f := range s.fields {
		raw, ok := row[f.alias]
		if !ok {
			continue
		}
		b := v.Field(f.index).Addr().Interface().(binder)
		if err := b.bind(raw); err != nil {
			return rec, &RecordValidationError{Field: f.name, Alias: f.alias, Value: raw, Err: err}
		}
	}
	return rec, nil
}

func constructUnchecked[T any](s *schema, row sheet.ProjectedRow) T {
	var rec T
	v := reflect.ValueOf(&rec).Elem()
	for _, f := range s.fields {
		if raw, ok := row[f.alias]; ok {
			v.Field(f.index).Addr().Interface().(binder).bindUnchecked(raw)
		}
	}
	return rec
}
