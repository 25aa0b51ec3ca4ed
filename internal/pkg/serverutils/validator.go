package serverutils

import (
	"fmt"
	"strings"

	"checkinly-be/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a DTO and converts failures
// into a single ValidationError listing the offending fields.
func ValidateRequest(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validation("invalid request body")
	}

	var fields []string
	for _, fe := range validationErrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return apperr.Validation("validation failed on: %s", strings.Join(fields, ", "))
}
