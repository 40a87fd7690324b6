package config

import (
	"strings"

	"github.com/expressjet/expressjet/pkg/models"
)

// Validate checks a resolved Configuration. All problems are returned
// together in a *ValidationErrors.
func Validate(cfg models.Configuration) error {
	var errs []ValidationError

	errs = append(errs, validateProjectName(cfg.ProjectName)...)

	if !cfg.PackageManager.IsValid() {
		errs = append(errs, ValidationError{
			Field:   KeyPackageManager,
			Message: "must be one of: npm, yarn",
			Value:   string(cfg.PackageManager),
			Wrapped: ErrInvalidPackageManager,
		})
	}

	if !cfg.ModuleSystem.IsValid() {
		errs = append(errs, ValidationError{
			Field:   KeyModuleSystem,
			Message: "must be one of: commonjs, esm",
			Value:   string(cfg.ModuleSystem),
			Wrapped: ErrInvalidModuleSystem,
		})
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validateProjectName(name string) []ValidationError {
	if strings.TrimSpace(name) == "" {
		return []ValidationError{{
			Field:   "project_name",
			Message: "required field is empty; pass --name or answer the project name prompt",
			Wrapped: ErrEmptyProjectName,
		}}
	}

	if strings.ContainsFunc(name, isControl) {
		return []ValidationError{{
			Field:   "project_name",
			Message: "must not contain control characters",
			Value:   name,
			Wrapped: ErrInvalidProjectName,
		}}
	}
	return nil
}

// isControl reports control characters other than tab, which name
// derivation collapses like any other whitespace.
func isControl(r rune) bool {
	return (r < 0x20 && r != '\t') || r == 0x7f
}

// ValidateKey checks that key is a known defaults key and value is
// acceptable for it. It returns the normalized value to store.
func ValidateKey(key, value string) (string, error) {
	switch key {
	case KeyPackageManager:
		pm := NormalizePackageManager(value)
		if !pm.IsValid() {
			return "", &ValidationError{Field: key, Message: "must be one of: npm, yarn", Value: value, Wrapped: ErrInvalidPackageManager}
		}
		return string(pm), nil
	case KeyModuleSystem:
		ms := NormalizeModuleSystem(value)
		if !ms.IsValid() {
			return "", &ValidationError{Field: key, Message: "must be one of: commonjs, esm", Value: value, Wrapped: ErrInvalidModuleSystem}
		}
		return string(ms), nil
	case KeyIncludeAuth:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "yes", "y", "1":
			return "true", nil
		case "false", "no", "n", "0":
			return "false", nil
		}
		return "", &ValidationError{Field: key, Message: "must be true or false", Value: value, Wrapped: ErrInvalidConfig}
	default:
		return "", &ValidationError{Field: key, Message: "unknown key; valid keys: " + strings.Join(Keys(), ", "), Wrapped: ErrUnknownKey}
	}
}
