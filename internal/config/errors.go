// Package config resolves the scaffold Configuration from command-line
// flags, wizard answers, environment overrides and the user's defaults file,
// and validates it before it reaches the composition engine.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for configuration operations.
var (
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrEmptyProjectName indicates no layer supplied a usable project name.
	ErrEmptyProjectName = errors.New("config: project name is empty")

	// ErrInvalidProjectName indicates the project name contains text the
	// generator cannot emit safely.
	ErrInvalidProjectName = errors.New("config: invalid project name")

	// ErrInvalidPackageManager indicates an unsupported package manager value.
	ErrInvalidPackageManager = errors.New("config: invalid package_manager, must be one of: npm, yarn")

	// ErrInvalidModuleSystem indicates an unsupported module system value.
	ErrInvalidModuleSystem = errors.New("config: invalid module_system, must be one of: commonjs, esm")

	// ErrUnknownKey indicates a defaults key that expressjet does not recognize.
	ErrUnknownKey = errors.New("config: unknown key")

	// ErrInvalidYAML indicates invalid YAML syntax in the defaults file.
	ErrInvalidYAML = errors.New("config: invalid YAML syntax")
)

// ValidationError represents a single validation error with field context.
type ValidationError struct {
	Field   string
	Message string
	Value   any
	Wrapped error // underlying sentinel error for errors.Is support
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error: field %q: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error: field %q: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation: no errors"
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("validation failed with %d error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Is supports errors.Is by checking contained validation errors against the target.
func (e *ValidationErrors) Is(target error) bool {
	if target == ErrInvalidConfig {
		return true
	}
	for _, ve := range e.Errors {
		if ve.Wrapped != nil && errors.Is(ve.Wrapped, target) {
			return true
		}
	}
	return false
}
