package utils

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ProcessValidationErrors flattens binding failures into a field -> failed-tag
// map for the response body. Non-validator errors yield nil so the caller can
// fall back to a generic message.
func ProcessValidationErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	errorResponse := make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}
	return errorResponse
}
