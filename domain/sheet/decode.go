package sheet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Decode parses a raw sheet payload. Numbers in cell values keep their
// literal text as json.Number.
func Decode(raw []byte) (*Fields, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &SchemaValidationError{Path: "$", Reason: "invalid JSON"}
	}

	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, &SchemaValidationError{Path: "$", Reason: "expected an object"}
	}
	if err := checkRequired(root); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields Fields
	if err := dec.Decode(&fields); err != nil {
		return nil, decodeError(err)
	}
	return &fields, nil
}

func checkRequired(root gjson.Result) error {
	if err := requireKeys(root, "$", requiredSheetKeys); err != nil {
		return err
	}

	var err error
	if columns := root.Get("columns"); columns.IsArray() {
		columns.ForEach(func(i, col gjson.Result) bool {
			err = requireKeys(col, fmt.Sprintf("$.columns[%d]", i.Int()), requiredColumnKeys)
			return err == nil
		})
		if err != nil {
			return err
		}
	}

	if rows := root.Get("rows"); rows.IsArray() {
		rows.ForEach(func(i, row gjson.Result) bool {
			rowPath := fmt.Sprintf("$.rows[%d]", i.Int())
			if err = requireKeys(row, rowPath, requiredRowKeys); err != nil {
				return false
			}
			if cells := row.Get("cells"); cells.IsArray() {
				cells.ForEach(func(j, cell gjson.Result) bool {
					err = requireKeys(cell, fmt.Sprintf("%s.cells[%d]", rowPath, j.Int()), requiredCellKeys)
					return err == nil
				})
			}
			return err == nil
		})
	}
	return err
}

func requireKeys(obj gjson.Result, path string, keys []string) error {
	if !obj.IsObject() {
		return &SchemaValidationError{Path: path, Reason: "expected an object"}
	}
	for _, key := range keys {
		v := obj.Get(key)
		switch {
		case !v.Exists():
			return &SchemaValidationError{Path: path + "." + key, Reason: "field required"}
		case v.Type == gjson.Null:
			return &SchemaValidationError{Path: path + "." + key, Reason: "must not be null"}
		}
	}
	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &SchemaValidationError{
			Path:   "$." + typeErr.Field,
			Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			Err:    err,
		}
	}
	return &SchemaValidationError{Path: "$", Reason: "cannot decode sheet", Err: err}
}
