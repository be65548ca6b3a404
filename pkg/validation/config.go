package validation

import (
	"errors"
	"fmt"
)

// ConfigValidator collects every failed rule for a config section instead of
// stopping at the first one. It covers the cross-field rules that struct tags
// cannot express.
type ConfigValidator struct {
	errors []error
	name   string
}

// NewConfigValidator creates a validator; name prefixes every message
func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{name: configName}
}

// Required validates that a string field is not empty
func (cv *ConfigValidator) Required(field, value string) *ConfigValidator {
	if value == "" {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: required field is empty", cv.name, field))
	}
	return cv
}

// RangeFloat validates lo < value <= hi
func (cv *ConfigValidator) RangeFloat(field string, value, lo, hi float64) *ConfigValidator {
	if value <= lo || value > hi {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %g is outside range (%g, %g]", cv.name, field, value, lo, hi))
	}
	return cv
}

// OneOf validates that a string field is one of the allowed values
func (cv *ConfigValidator) OneOf(field, value string, allowed []string) *ConfigValidator {
	for _, a := range allowed {
		if value == a {
			return cv
		}
	}
	cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %q must be one of %v", cv.name, field, value, allowed))
	return cv
}

// Custom applies a custom validation function
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: %w", cv.name, field, err))
	}
	return cv
}

// When applies validations only if condition holds
func (cv *ConfigValidator) When(condition bool, validations func(*ConfigValidator)) *ConfigValidator {
	if condition {
		validations(cv)
	}
	return cv
}

// Errors returns all validation errors
func (cv *ConfigValidator) Errors() []error {
	return cv.errors
}

// Validate joins all collected errors, or returns nil
func (cv *ConfigValidator) Validate() error {
	return errors.Join(cv.errors...)
}
