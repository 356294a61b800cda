// Package forms checks the required fields of each entity form before a
// save is attempted. A failure names the localized message to show; no
// request may be sent for a form that fails.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ionenergy/ionctl/internal/intl"
	"github.com/ionenergy/ionctl/internal/options"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("form is incomplete")

// Error is the first failing field of a form.
type Error struct {
	// MessageID is the intl message pair to show.
	MessageID string
	// Field is the Go field name that failed.
	Field string
	// Tag is the validation rule that failed.
	Tag string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s failed %q (%s)", ErrInvalid, e.Field, e.Tag, e.MessageID)
}

// Unwrap returns ErrInvalid.
func (e *Error) Unwrap() error { return ErrInvalid }

// ChargerInput holds the fields a charger save requires.
type ChargerInput struct {
	OrganizationID string `validate:"required"          msg:"Validation.OrganizationRequired"`
	LocationID     string `validate:"required"          msg:"Validation.LocationRequired"`
	Name           string `validate:"notblank"          msg:"Validation.ChargerNameRequired"`
}

// ConnectorInput holds the fields a connector save requires.
type ConnectorInput struct {
	ChargerID     string `validate:"required,existing" msg:"Validation.ChargerRequired"`
	ConnectorType string `validate:"notblank"          msg:"Validation.ConnectorTypeRequired"`
}

// TariffInput holds the fields a tariff save requires. Zero rates count as
// missing.
type TariffInput struct {
	ConnectorID string  `validate:"required,existing" msg:"Validation.ConnectorRequired"`
	Type        string  `validate:"notblank"          msg:"Validation.TariffFieldsRequired"`
	BuyRate     float64 `validate:"required"          msg:"Validation.TariffFieldsRequired"`
	SellRate    float64 `validate:"required"          msg:"Validation.TariffFieldsRequired"`
}

// OrganizationInput holds the fields an organization save requires.
type OrganizationInput struct {
	Name string `validate:"notblank" msg:"Validation.OrganizationNameRequired"`
}

// PartnerUserInput holds the fields a partner user requires.
type PartnerUserInput struct {
	OrganizationID string `validate:"required"       msg:"Validation.PartnerFieldsRequired"`
	FirstName      string `validate:"notblank"       msg:"Validation.PartnerFieldsRequired"`
	LastName       string `validate:"notblank"       msg:"Validation.PartnerFieldsRequired"`
	Mobile         string `validate:"notblank"       msg:"Validation.PartnerFieldsRequired"`
	Email          string `validate:"required,email" msg:"Validation.PartnerFieldsRequired"`
}

//nolint:gochecknoglobals // validator caches struct metadata; one instance is shared.
var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("existing", func(fl validator.FieldLevel) bool {
			return !options.IsSentinel(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// Validate checks input and returns the first failure as *Error, or nil.
func Validate(input any) error {
	err := instance().Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	first := verrs[0]
	return &Error{
		MessageID: messageID(input, first),
		Field:     first.StructField(),
		Tag:       first.Tag(),
	}
}

func messageID(input any, fe validator.FieldError) string {
	if fe.Tag() == "email" {
		return intl.EmailInvalid
	}
	t := reflect.TypeOf(input)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(fe.StructField()); ok {
		if id := f.Tag.Get("msg"); id != "" {
			return id
		}
	}
	return intl.PartnerFieldsRequired
}

// MessageID returns the message of a validation error, or "" when err is
// not one.
func MessageID(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.MessageID
	}
	return ""
}
