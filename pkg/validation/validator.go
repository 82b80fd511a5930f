// Package validation centralizes input checking: struct-tag validation of
// ingest records and a fluent validator for engine configuration.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Node identifiers are a kind prefix plus a hex digest or an upstream
	// register identifier. Jurisdictions are two-letter ISO 3166-1 codes.
	nodeIDPattern       = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
	jurisdictionPattern = regexp.MustCompile(`^[A-Z]{2}$`)
)

func init() {
	validate = validator.New()
}

// Struct validates a record against its struct tags
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// NodeID checks that an identifier is usable as a graph node key
func NodeID(id string) error {
	if id == "" {
		return errors.New("node ID cannot be empty")
	}
	if !nodeIDPattern.MatchString(id) {
		return fmt.Errorf("node ID %q contains invalid characters", id)
	}
	return nil
}

// Jurisdiction checks that a code is a two-letter upper-case country code
func Jurisdiction(code string) error {
	if !jurisdictionPattern.MatchString(code) {
		return fmt.Errorf("jurisdiction %q is not a two-letter ISO code", code)
	}
	return nil
}

// Jurisdictions validates a list of country codes, collecting nothing:
// the first bad code fails the whole list.
func Jurisdictions(codes []string) error {
	for _, c := range codes {
		if err := Jurisdiction(c); err != nil {
			return err
		}
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
