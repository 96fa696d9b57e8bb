package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violations maps a form field name to an i18n message code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records code for field unless the field already has a violation.
func (v Violations) Add(field, code string) {
	if _, ok := v[field]; !ok {
		v[field] = code
	}
}

// Basic validators
func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v.Add(field, "must_be_positive")
	}
}

func MaxFloat(field string, val, maxVal float64, v Violations) {
	if val > maxVal {
		v.Add(field, "too_large")
	}
}

func RangeInt(field string, val, minVal, maxVal int, v Violations) {
	if val < minVal || val > maxVal {
		v.Add(field, "out_of_range")
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their form name so violations line up with the inputs.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct checks s against its `validate` tags. Field names come from the `form` tag.
func Struct(s any) Violations {
	v := make(Violations)
	err := validate.Struct(s)
	if err == nil {
		return v
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v["_"] = "invalid"
		return v
	}
	for _, fe := range fieldErrs {
		v.Add(fe.Field(), codeFor(fe))
	}
	return v
}

func codeFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "max":
		return "too_long"
	case "email":
		return "invalid_email"
	case "numeric", "number":
		return "invalid_number"
	case "len":
		return "invalid_length"
	case "alphanum":
		return "invalid_format"
	default:
		return "invalid"
	}
}
