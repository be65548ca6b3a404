package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// report yaml names so messages match the config file
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}

// Struct validates v against its `validate` struct tags and returns the first
// failure as a "Field: reason" error
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Var validates a single value against a tag expression
func Var(name string, v any, tag string) error {
	if err := validate.Var(v, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return describe(name, verrs[0])
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return describe(verrs[0].Namespace(), verrs[0])
}

func describe(field string, e validator.FieldError) error {
	// drop the root struct name from namespaces like "Options.cutoff"
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	param := e.Param()
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required", field)
	case "min", "gte":
		return fmt.Errorf("%s: must be at least %s", field, param)
	case "max", "lte":
		return fmt.Errorf("%s: must not exceed %s", field, param)
	case "gt":
		return fmt.Errorf("%s: must be greater than %s, got %v", field, param, e.Value())
	case "lt":
		return fmt.Errorf("%s: must be less than %s, got %v", field, param, e.Value())
	case "oneof":
		return fmt.Errorf("%s: must be one of [%s], got %v", field, param, e.Value())
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
	}
}
