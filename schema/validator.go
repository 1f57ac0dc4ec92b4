package schema

import (
	"fmt"
	"regexp"
)

// Validator checks the canonical text of a leaf before it is decoded.
type Validator interface {
	// Validate returns nil if text is acceptable for the leaf at path.
	Validate(path string, text string) error
}

// ValidationError reports a leaf rejected by a Validator.
type ValidationError struct {
	Path    string // Location of the leaf
	Text    string // Canonical text that failed validation
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %q at %s: %s", e.Text, e.Path, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(path, text, message string) *ValidationError {
	return &ValidationError{Path: path, Text: text, Message: message}
}

// RegexValidator validates text against a regular expression.
type RegexValidator struct {
	Pattern     *regexp.Regexp
	Description string // Human-readable description of what the pattern expects
}

// NewRegexValidator compiles pattern into a RegexValidator.
func NewRegexValidator(pattern, description string) (*RegexValidator, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}
	if description == "" {
		description = "must match " + pattern
	}
	return &RegexValidator{Pattern: re, Description: description}, nil
}

// Validate implements the Validator interface.
func (v *RegexValidator) Validate(path string, text string) error {
	if !v.Pattern.MatchString(text) {
		return NewValidationError(path, text, v.Description)
	}
	return nil
}

// FuncValidator uses a custom function to validate text.
type FuncValidator struct {
	ValidateFunc func(path string, text string) error
}

// Validate implements the Validator interface.
func (v *FuncValidator) Validate(path string, text string) error {
	return v.ValidateFunc(path, text)
}

func validate(validators []Validator, path, text string) error {
	for _, v := range validators {
		if err := v.Validate(path, text); err != nil {
			return err
		}
	}
	return nil
}
