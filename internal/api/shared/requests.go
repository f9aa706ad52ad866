package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance. Field names in validation
// errors come from the json tag so they match the wire format.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into the given struct.
// Unknown JSON members are ignored.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	// Otherwise, use the struct validator
	return Validate.Struct(v)
}

// FieldErrors maps field names to human-readable validation messages.
// It is the body of every 400 validation response:
// {"errors": {"<field>": "<message>"}}.
type FieldErrors map[string]string

// NewFieldError creates a FieldErrors with a single entry.
func NewFieldError(field, message string) FieldErrors {
	return FieldErrors{field: message}
}

// FieldErrorsFromValidator flattens validator.ValidationErrors into
// per-field messages. Returns nil if err is not a validation error.
func FieldErrorsFromValidator(err error) FieldErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := FieldErrors{}
	for _, fe := range verrs {
		name := fe.Field()
		if name == "" {
			name = strings.ToLower(fe.StructField())
		}
		fields[name] = validationTagMessage(fe)
	}
	return fields
}

// validationTagMessage maps validation tags to user-facing messages.
func validationTagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email address"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "oneof":
		return "Invalid value"
	case "uuid":
		return "Invalid identifier"
	default:
		return "Invalid value"
	}
}
