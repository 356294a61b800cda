package pages

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ionenergy/ionctl/internal/backend"
)

// Field errors.
var (
	ErrFieldValue   = errors.New("invalid field value")
	ErrUnknownField = errors.New("unknown field")
)

// Field is one editable value of a page's draft.
type Field struct {
	Key   string
	Label string
	Get   func() string
	Set   func(s string) error
}

// SetField assigns value to the field named key.
func SetField(fields []Field, key, value string) error {
	for _, f := range fields {
		if f.Key == key {
			return f.Set(value)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownField, key)
}

// FieldValue returns the value of the field named key, or "".
func FieldValue(fields []Field, key string) string {
	for _, f := range fields {
		if f.Key == key {
			return f.Get()
		}
	}
	return ""
}

func textField(key, label string, p *string) Field {
	return Field{
		Key:   key,
		Label: label,
		Get:   func() string { return *p },
		Set: func(s string) error {
			*p = s
			return nil
		},
	}
}

// intField edits an optional integer; blank clears it.
func intField(key, label string, p **int) Field {
	return Field{
		Key:   key,
		Label: label,
		Get: func() string {
			if *p == nil {
				return ""
			}
			return strconv.Itoa(**p)
		},
		Set: func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" {
				*p = nil
				return nil
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("%w: %s: %q is not a whole number", ErrFieldValue, key, s)
			}
			*p = &n
			return nil
		},
	}
}

// amountField edits a rate or percentage; blank reads as 0.
func amountField(key, label string, p *float64) Field {
	return Field{
		Key:   key,
		Label: label,
		Get: func() string {
			if *p == 0 {
				return ""
			}
			return decimal.NewFromFloat(*p).String()
		},
		Set: func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" {
				*p = 0
				return nil
			}
			d, err := decimal.NewFromString(s)
			if err != nil {
				return fmt.Errorf("%w: %s: %q is not a number", ErrFieldValue, key, s)
			}
			*p = d.InexactFloat64()
			return nil
		},
	}
}

func boolField(key, label string, p *bool) Field {
	return Field{
		Key:   key,
		Label: label,
		Get:   func() string { return strconv.FormatBool(*p) },
		Set: func(s string) error {
			b, ok := backend.ToBool(s)
			if !ok {
				return fmt.Errorf("%w: %s: %q is not true or false", ErrFieldValue, key, s)
			}
			*p = b
			return nil
		},
	}
}
