package usecase

import (
	"talent-workflow-api/pkg/apperror"
	"talent-workflow-api/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// validateInput runs struct validation and maps failures onto a 400.
func validateInput(v *validator.Validate, in interface{}) error {
	if err := v.Struct(in); err != nil {
		return apperror.Validation("Validation failed", validation.FormatValidationErrors(err))
	}
	return nil
}
