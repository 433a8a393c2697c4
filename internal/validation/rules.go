// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"
	"unicode/utf8"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/demands/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// SingleRune validates that a string holds exactly one character, as required for
// field delimiters.
var SingleRune = validation.NewStringRuleWithError(
	func(s string) bool {
		return utf8.RuneCountInString(s) == 1
	},
	validation.NewError("validation_single_rune", "must be a single character"),
)

// Parses validates that a non-blank string is accepted by parse. The parse error text
// becomes the validation message. Nil pointers and blank strings are left to Required.
func Parses(code string, parse func(string) error) validation.Rule {
	return validation.By(func(value interface{}) error {
		v, isNil := validation.Indirect(value)
		if isNil {
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return validation.NewError(code+"_type", "must be a string")
		}
		if strings.TrimSpace(s) == "" {
			return nil
		}
		if err := parse(s); err != nil {
			return validation.NewError(code, err.Error())
		}
		return nil
	})
}
