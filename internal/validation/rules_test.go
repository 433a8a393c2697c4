package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/demands/internal/errors"
)

func TestSingleRune(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "comma",
			input:     ",",
			shouldErr: false,
		},
		{
			name:      "multibyte character",
			input:     "§",
			shouldErr: false,
		},
		{
			name:      "two characters",
			input:     ";;",
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SingleRune.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParses(t *testing.T) {
	rule := Parses("validation_even", func(s string) error {
		if len(s)%2 != 0 {
			return errors.New("must have an even length")
		}
		return nil
	})

	odd := "abc"
	even := "ab"
	blank := "  "
	var missing *string

	tests := []struct {
		name   string
		value  interface{}
		errMsg string
	}{
		{name: "accepted string", value: even},
		{name: "accepted pointer", value: &even},
		{name: "rejected string", value: odd, errMsg: "must have an even length"},
		{name: "rejected pointer", value: &odd, errMsg: "must have an even length"},
		{name: "blank left to required", value: blank},
		{name: "nil pointer left to required", value: missing},
		{name: "not a string", value: 42, errMsg: "must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.value)
			if tt.errMsg != "" {
				assert.EqualError(t, err, tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNoWhitespace(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "no whitespace",
			input:     "validstring",
			shouldErr: false,
		},
		{
			name:      "leading whitespace",
			input:     " validstring",
			shouldErr: true,
		},
		{
			name:      "trailing whitespace",
			input:     "validstring ",
			shouldErr: true,
		},
		{
			name:      "both leading and trailing",
			input:     " validstring ",
			shouldErr: true,
		},
		{
			name:      "internal spaces allowed",
			input:     "valid string",
			shouldErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NoWhitespace.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "valid string",
			input:     "validstring",
			shouldErr: false,
		},
		{
			name:      "only spaces",
			input:     "   ",
			shouldErr: true,
		},
		{
			name:      "only tabs",
			input:     "\t\t",
			shouldErr: true,
		},
		{
			name:      "only newlines",
			input:     "\n\n",
			shouldErr: true,
		},
		{
			name:      "mixed whitespace",
			input:     " \t\n ",
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotBlank.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWrapValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error returns nil",
			err:      nil,
			expected: false,
		},
		{
			name:     "wraps validation error",
			err:      assert.AnError,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapValidationError(tt.err)
			if tt.expected {
				assert.Error(t, result)
				assert.ErrorIs(t, result, apperrors.ErrInvalidInput)
				assert.Contains(t, result.Error(), "invalid input")
			} else {
				assert.NoError(t, result)
			}
		})
	}
}
