package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError maps each failing field to a readable message. Errors
// that are not validator.ValidationErrors yield an empty map.
func FormatValidationError(err error) map[string]string {
	errs := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			errs[field] = fmt.Sprintf("%s is required", field)
		case "min":
			errs[field] = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		case "max":
			errs[field] = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		case "gt":
			errs[field] = fmt.Sprintf("%s must be greater than %s", field, fe.Param())
		case "gte":
			errs[field] = fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
		case "lte":
			errs[field] = fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
		default:
			errs[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return errs
}
