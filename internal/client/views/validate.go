package views

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their json names, like the API does
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError is a form that failed local validation. It matches
// client.ErrValidation.
type ValidationError struct {
	Fields client.FieldErrors
}

func (e *ValidationError) Error() string { return firstFieldMessage(e.Fields) }

func (e *ValidationError) Unwrap() error { return client.ErrValidation }

// validateForm checks v's validate tags and returns the failures in field
// declaration order, or nil.
func validateForm(v any) client.FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return client.FieldErrors{{Field: "", Messages: []string{err.Error()}}}
	}

	var out client.FieldErrors
	for _, e := range verrs {
		out = append(out, client.FieldError{Field: e.Field(), Messages: []string{validationMessage(e)}})
	}
	return out
}

// firstFieldMessage formats the first failure as "field: message".
func firstFieldMessage(fe client.FieldErrors) string {
	for _, f := range fe {
		if len(f.Messages) == 0 {
			continue
		}
		if f.Field == "" {
			return f.Messages[0]
		}
		return f.Field + ": " + f.Messages[0]
	}
	return ""
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "eqfield":
		return "does not match " + strings.ToLower(e.Param())
	default:
		return "invalid value"
	}
}
