package backend

import (
	"errors"

	"github.com/ohler55/ojg/jp"
)

// Extraction errors.
var (
	ErrNoRows   = errors.New("response contains no array of rows")
	ErrNoRecord = errors.New("response contains no record")
)

// rowPaths are the wrapper fields searched, in order, for an array of rows.
//
//nolint:gochecknoglobals // Compiled once; read-only.
var rowPaths = []jp.Expr{
	jp.MustParseString("$.data"),
	jp.MustParseString("$.items"),
	jp.MustParseString("$.results"),
	jp.MustParseString("$.rows"),
	jp.MustParseString("$.records"),
}

// Rows finds the array of rows in a decoded document: the document itself
// when it is an array, else the first array under data, items, results, rows
// or records, else any other top-level array field (lexical key order), else
// an array nested one level inside data.
func Rows(doc any) ([]any, bool) {
	switch v := doc.(type) {
	case []any:
		return v, true
	case map[string]any:
		for _, x := range rowPaths {
			for _, found := range x.Get(v) {
				if arr, ok := found.([]any); ok {
					return arr, true
				}
			}
		}
		for _, k := range sortedKeys(v) {
			if arr, ok := v[k].([]any); ok {
				return arr, true
			}
		}
		if data, ok := v["data"].(map[string]any); ok {
			for _, k := range sortedKeys(data) {
				if arr, isArr := data[k].([]any); isArr {
					return arr, true
				}
			}
		}
	}
	return nil, false
}

// Record finds the single record in a decoded document: an object (unwrapping
// a data field that holds an object or array), or the first object in an array.
// Empty objects are not records.
func Record(doc any) (map[string]any, bool) {
	switch v := doc.(type) {
	case map[string]any:
		if inner, ok := v["data"]; ok {
			switch d := inner.(type) {
			case map[string]any:
				return nonEmpty(d)
			case []any:
				return Record(d)
			}
		}
		return nonEmpty(v)
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				return nonEmpty(m)
			}
		}
	}
	return nil, false
}

func nonEmpty(m map[string]any) (map[string]any, bool) {
	if len(m) == 0 {
		return nil, false
	}
	return m, true
}

// RowsAccept converts a 2xx response into its row array.
func RowsAccept(resp *Response) ([]any, error) {
	rows, ok := Rows(resp.Body)
	if !ok {
		return nil, ErrNoRows
	}
	return rows, nil
}

// RecordAccept converts a 2xx response into its single record.
func RecordAccept(resp *Response) (map[string]any, error) {
	rec, ok := Record(resp.Body)
	if !ok {
		return nil, ErrNoRecord
	}
	return rec, nil
}

// Objects keeps the elements of rows that are JSON objects.
func Objects(rows []any) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		if m, ok := r.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
