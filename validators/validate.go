package validators

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance used by every route validator.
var Validate = validator.New()

// CheckStruct runs tag validation and flattens the result into a
// field -> message map suitable for ValidationErrorResponse.
func CheckStruct(s interface{}) map[string]string {
	errors := make(map[string]string)
	if err := Validate.Struct(s); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			field := strings.ToLower(fe.Field())
			errors[field] = messageFor(fe)
		}
	}
	return errors
}

func messageFor(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", field)
	case "email":
		return "Invalid email!"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters long!", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s!", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters long!", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s!", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s!", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s!", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s!", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters!", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid!", field)
	}
}
