package serverutils

import (
	"fmt"
	"strings"

	"ai-mathteach-be/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation on a request DTO and converts
// the first failure into a ValidationError the error middleware understands.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}

	first := validationErrors[0]
	field := strings.ToLower(first.Field()[:1]) + first.Field()[1:]

	var message string
	switch first.Tag() {
	case "required":
		message = "is required"
	case "min":
		message = fmt.Sprintf("must be at least %s", first.Param())
	case "max":
		message = fmt.Sprintf("must be at most %s", first.Param())
	case "oneof":
		message = fmt.Sprintf("must be one of: %s", first.Param())
	default:
		message = fmt.Sprintf("failed on '%s' validation", first.Tag())
	}

	return apperrors.NewValidationError(field, message)
}
