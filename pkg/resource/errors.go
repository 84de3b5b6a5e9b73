package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingValue is returned by a rule when its path is absent from the payload.
	ErrMissingValue = errors.New("missing value")

	// ErrInvalidValue is returned by a rule when the value cannot be converted.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNotObject is returned when the payload is not a JSON object.
	ErrNotObject = errors.New("payload is not a JSON object")
)

// ConfigurationError reports a resource type that is used without a bound
// path or without a mapping for the requested context.
type ConfigurationError struct {
	Type    Type
	Context Context
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("resource: configuration error for %q (%s): %s", e.Type, e.Context, e.Message)
	}
	return fmt.Sprintf("resource: configuration error for %q: %s", e.Type, e.Message)
}

// ShapeError reports a payload that does not have the shape declared by the
// mapping of a resource type.
type ShapeError struct {
	Type    Type
	Context Context
	// Field is the mapped field whose rule failed (empty for payload-level errors).
	Field string
	Err   error
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("resource: unexpected %s payload for %q: field %q: %v", e.Context, e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("resource: unexpected %s payload for %q: %v", e.Context, e.Type, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ShapeError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is or wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

// IsShapeError reports whether err is or wraps a *ShapeError.
func IsShapeError(err error) bool {
	var e *ShapeError
	return errors.As(err, &e)
}
