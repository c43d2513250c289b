// Package validation holds the custom binding rules of the request DTOs
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NotBlank is the tag of the rule rejecting whitespace-only strings
const NotBlank = "notblank"

// notBlank fails strings that are empty once trimmed. Other kinds pass.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

// Register adds the custom rules to v
func Register(v *validator.Validate) error {
	return v.RegisterValidation(NotBlank, notBlank)
}
