// Package validation wraps go-playground/validator with the field-level rules
// and messages the registration flow exposes to clients. Validation is pure
// and synchronous; callers receive only the first failure, in struct
// declaration order.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	dErrors "smarthire/pkg/domain-errors"
	s "smarthire/pkg/string"
)

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so error attribution matches the wire
	// contract (fullName, confirmPassword, ...).
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' {
				return false
			}
		}
		return true
	})
	// The character classes mirror the client-side checks: plain ASCII
	// ranges, with "special" meaning anything outside [A-Za-z0-9].
	_ = v.RegisterValidation("has_upper", containsClass(func(r rune) bool {
		return r >= 'A' && r <= 'Z'
	}))
	_ = v.RegisterValidation("has_lower", containsClass(func(r rune) bool {
		return r >= 'a' && r <= 'z'
	}))
	_ = v.RegisterValidation("has_digit", containsClass(func(r rune) bool {
		return r >= '0' && r <= '9'
	}))
	_ = v.RegisterValidation("has_special", containsClass(func(r rune) bool {
		return !isASCIIAlnum(r)
	}))
	return v
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func containsClass(match func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if match(r) {
				return true
			}
		}
		return false
	}
}

// Validate validates a struct and returns a domain error carrying the first
// failing field and its user-facing message.
func Validate(req any) error {
	if err := defaultValidator.Struct(req); err != nil {
		msg, field := FirstError(err)
		return &dErrors.Error{Code: dErrors.CodeValidation, Message: msg, Field: field}
	}
	return nil
}

// FirstError converts a validator error into the message and field of its
// first failure.
func FirstError(err error) (msg, field string) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "invalid request body", ""
	}

	fe := validationErrs[0]
	field = fe.Field()
	if field == "" {
		field = fe.StructField()
	}
	return messageFor(field, fe), field
}

// fieldMessages carries the exact user-facing copy per field and tag, kept in
// sync with the client-side form validation.
var fieldMessages = map[string]map[string]string{
	"fullName": {
		"min":         "Full name must be at least 2 characters",
		"max":         "Full name must not exceed 100 characters",
		"person_name": "Full name can only contain letters, spaces, hyphens, and apostrophes",
	},
	"email": {
		"email": "Please enter a valid email address",
		"min":   "Email must be at least 5 characters",
		"max":   "Email must not exceed 320 characters",
	},
	"companyName": {
		"min": "Company name must be at least 2 characters",
		"max": "Company name must not exceed 100 characters",
	},
	"password": {
		"min":         "Password must be at least 8 characters",
		"max":         "Password must not exceed 128 characters",
		"has_upper":   "Password must contain at least one uppercase letter",
		"has_lower":   "Password must contain at least one lowercase letter",
		"has_digit":   "Password must contain at least one number",
		"has_special": "Password must contain at least one special character",
	},
	"confirmPassword": {
		"eqfield": "Passwords do not match",
	},
	"companySize": {
		"oneof": "Please select a valid company size",
	},
	"acceptTerms": {
		"eq": "You must accept the terms of service",
	},
}

func messageFor(field string, fe validator.FieldError) string {
	if byTag, ok := fieldMessages[field]; ok {
		if msg, ok := byTag[fe.ActualTag()]; ok {
			return msg
		}
	}
	return genericMessage(field, fe)
}

// genericMessage is the fallback wording for fields without bespoke copy.
func genericMessage(field string, fe validator.FieldError) string {
	name := s.ToSnakeCase(field)
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email", name)
	case "uuid":
		return fmt.Sprintf("%s must be a valid uuid", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", name, fe.Param())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", name)
	default:
		if name == "" {
			return "invalid request body"
		}
		return fmt.Sprintf("%s is invalid", name)
	}
}
