package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/shopbill-api/pkg/apperror"
)

// RegisterValidators adds the custom binding tags used by request DTOs to
// gin's validator. The "phone" tag accepts empty values; combine it with
// "required" where a number is mandatory.
func RegisterValidators(phoneRegion string) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return ValidatePhoneNumber(value, phoneRegion) == nil
	})
}

// ProcessValidationErrors converts binding errors into field errors.
// It returns nil when err is not a validation error.
func ProcessValidationErrors(err error) []apperror.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fieldErrors := make([]apperror.FieldError, 0, len(validationErrors))
	for _, ve := range validationErrors {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   toSnakeCase(ve.Field()),
			Message: validationMessage(ve),
		})
	}
	return fieldErrors
}

func validationMessage(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + ve.Param()
	case "max", "lte":
		return "must be at most " + ve.Param()
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "oneof":
		return "must be one of: " + ve.Param()
	case "dive":
		return "is invalid"
	}
	return "failed on the '" + ve.Tag() + "' rule"
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
