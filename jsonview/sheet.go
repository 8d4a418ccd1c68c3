package jsonview

import (
	"fmt"
	"strings"
)

// DefaultSheetName is the synthetic name of a single unnamed sheet.
const DefaultSheetName = "default"

const (
	dataKey       = "data"
	namesKey      = ":names"
	metaKeyPrefix = ":"
)

// Sheet is one table extracted from a payload.
type Sheet struct {
	Name    string
	Named   bool // false for a single unnamed sheet; no heading is rendered
	Columns []string
	Rows    []Row
}

// Row is an ordered mapping from column key to raw value.
type Row struct {
	keys   []string
	values map[string]Value
}

// NewRow builds a row from fields. A repeated key keeps its first position and its last value.
func NewRow(fields ...Field) Row {
	r := Row{values: make(map[string]Value, len(fields))}
	for _, f := range fields {
		if _, seen := r.values[f.Key]; !seen {
			r.keys = append(r.keys, f.Key)
		}
		r.values[f.Key] = f.Value
	}
	return r
}

// Keys returns the row's keys in source order.
func (r Row) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Get returns the value stored under key.
func (r Row) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of keys in the row.
func (r Row) Len() int {
	return len(r.keys)
}

// Extract normalizes a raw JSON payload into sheets.
//
// Accepted shapes, in order: a top-level row array; an object with a "data"
// row array; an object listing sheet names under ":names"; an object mapping
// sheet names to row arrays or {"data": [...]} objects. Anything else fails
// with an error matching ErrMalformedPayload.
func Extract(payload []byte) ([]Sheet, error) {
	root, err := ParseValue(payload)
	if err != nil {
		return nil, &PayloadError{Path: "$", Reason: "payload is not valid JSON", Err: err}
	}
	return ExtractValue(root)
}

// ExtractValue is Extract for an already decoded payload.
func ExtractValue(root Value) ([]Sheet, error) {
	switch root.Type {
	case ArrayValue:
		sheet, err := newSheet(DefaultSheetName, false, root, "$")
		if err != nil {
			return nil, err
		}
		return []Sheet{sheet}, nil

	case ObjectValue:
		if data, ok := root.Get(dataKey); ok {
			if data.Type != ArrayValue {
				return nil, newPayloadError("$.data", fmt.Sprintf("expected an array, got %s", data.Type))
			}
			sheet, err := newSheet(DefaultSheetName, false, data, "$.data")
			if err != nil {
				return nil, err
			}
			return []Sheet{sheet}, nil
		}
		if names, ok := root.Get(namesKey); ok {
			return extractListedSheets(root, names)
		}
		return extractKeyedSheets(root)

	default:
		return nil, newPayloadError("$", fmt.Sprintf("expected an array or object, got %s", root.Type))
	}
}

// extractListedSheets follows the ":names" declaration order.
func extractListedSheets(root, names Value) ([]Sheet, error) {
	if names.Type != ArrayValue || len(names.Items) == 0 {
		return nil, newPayloadError("$."+namesKey, "expected a non-empty array of sheet names")
	}

	sheets := make([]Sheet, 0, len(names.Items))
	for i, nameValue := range names.Items {
		if nameValue.Type != StringValue {
			return nil, newPayloadError(fmt.Sprintf("$.%s[%d]", namesKey, i), "sheet name is not a string")
		}
		name := nameValue.Str
		entry, ok := root.Get(name)
		if !ok {
			return nil, newPayloadError(sheetPath(name), "listed sheet is missing")
		}
		rows, path, ok := sheetRows(entry, sheetPath(name))
		if !ok {
			return nil, newPayloadError(sheetPath(name), "sheet has no row data")
		}
		sheet, err := newSheet(name, true, rows, path)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// extractKeyedSheets treats every non-meta member holding row data as a sheet.
func extractKeyedSheets(root Value) ([]Sheet, error) {
	var sheets []Sheet
	for _, f := range root.Fields {
		if strings.HasPrefix(f.Key, metaKeyPrefix) {
			continue
		}
		rows, path, ok := sheetRows(f.Value, sheetPath(f.Key))
		if !ok {
			continue
		}
		sheet, err := newSheet(f.Key, true, rows, path)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}

	if len(sheets) == 0 {
		return nil, newPayloadError("$", "no row data found")
	}
	return sheets, nil
}

// sheetRows accepts a bare row array or an object carrying one under "data".
func sheetRows(v Value, path string) (Value, string, bool) {
	switch v.Type {
	case ArrayValue:
		return v, path, true
	case ObjectValue:
		if data, ok := v.Get(dataKey); ok && data.Type == ArrayValue {
			return data, path + "." + dataKey, true
		}
	}
	return Value{}, "", false
}

func newSheet(name string, named bool, rows Value, path string) (Sheet, error) {
	sheet := Sheet{
		Name:  name,
		Named: named,
		Rows:  make([]Row, 0, len(rows.Items)),
	}

	seen := make(map[string]struct{})
	for i, item := range rows.Items {
		if item.Type != ObjectValue {
			return Sheet{}, newPayloadError(fmt.Sprintf("%s[%d]", path, i), fmt.Sprintf("row is a %s, not an object", item.Type))
		}
		row := NewRow(item.Fields...)
		// The first row fixes the order; later rows can only append new columns.
		for _, key := range row.keys {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			sheet.Columns = append(sheet.Columns, key)
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet, nil
}

func sheetPath(name string) string {
	if name == "" || strings.ContainsAny(name, ".[]\" ") {
		return fmt.Sprintf("$[%q]", name)
	}
	return "$." + name
}
