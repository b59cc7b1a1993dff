package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	field := e.Field()
	param := e.Param()

	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s: is required", field)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s: must be at least %s", field, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s: must be at most %s", field, param)

	case "maxbytes":
		return fmt.Sprintf("%s: must be at most %s bytes", field, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))

	case "email":
		return fmt.Sprintf("%s: must be a valid email address", field)

	default:
		return fmt.Sprintf("%s: failed %s validation", field, e.Tag())
	}
}
