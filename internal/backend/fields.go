package backend

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Stringify renders a JSON scalar as text. Objects, arrays and null render as "".
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// String returns the first key of row whose value stringifies to a non-empty
// string.
func String(row map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := Stringify(row[k]); s != "" {
			return s
		}
	}
	return ""
}

// ToNumber coerces a JSON value the way a numeric form field does: numbers
// pass through, numeric strings parse, everything else is absent.
func ToNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t)
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Number returns the first key of row holding a numeric value.
func Number(row map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if f, ok := ToNumber(row[k]); ok {
			return f, true
		}
	}
	return 0, false
}

// NumberOrZero is Number with 0 for absent values.
func NumberOrZero(row map[string]any, keys ...string) float64 {
	f, _ := Number(row, keys...)
	return f
}

// Int returns the first numeric key of row rounded to an int, or nil.
func Int(row map[string]any, keys ...string) *int {
	f, ok := Number(row, keys...)
	if !ok {
		return nil
	}
	n := int(math.Round(f))
	return &n
}

// ToBool coerces a JSON value to a boolean. Strings accept the usual
// true/false spellings plus yes/no and on/off; numbers are true when non-zero.
func ToBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "on":
			return true, true
		case "no", "off":
			return false, true
		}
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return b, err == nil
	default:
		if f, ok := ToNumber(v); ok {
			return f != 0, true
		}
		return false, false
	}
}

// Bool returns the first key of row holding a boolean-like value.
func Bool(row map[string]any, keys ...string) (bool, bool) {
	for _, k := range keys {
		if b, ok := ToBool(row[k]); ok {
			return b, true
		}
	}
	return false, false
}
