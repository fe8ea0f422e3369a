// Package validator adapts go-playground/validator to echo.
package validator

import (
	"reflect"
	"regexp"
	"strings"

	"solar/internal/errors"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds a validator that reports fields by their JSON names and knows
// the "slug" tag.
func New() *CustomValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	return &CustomValidator{validate: validate}
}

// Validate validates a bound request struct.
func (cv *CustomValidator) Validate(i any) error {
	return cv.validate.Struct(i)
}

// FieldError is the client view of one failed rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Describe converts validation errors into field errors. ok is false for
// any other error.
func Describe(err error) (fields []FieldError, ok bool) {
	validationErrs, ok := errors.AsType[validator.ValidationErrors](err)
	if !ok {
		return nil, false
	}

	fields = make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, FieldError{
			Field: trimRoot(fe.Namespace()),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}

	return fields, true
}

// trimRoot drops the struct type name from "LoginInput.email".
func trimRoot(namespace string) string {
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}

	return namespace
}
