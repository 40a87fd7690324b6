package config

import (
	"strings"

	"github.com/expressjet/expressjet/pkg/models"
)

// Resolve merges layers into a validated Configuration. Layers are ordered
// from highest to lowest priority: for each field the first layer that sets
// it wins, and the built-in defaults fill whatever remains. The project name
// has no default.
//
// Values are normalized before validation, so "Yarn", "cjs" and the wizard
// labels such as "ES Modules (import/export)" are accepted.
func Resolve(layers ...Input) (models.Configuration, error) {
	var merged Input
	for _, l := range layers {
		if merged.ProjectName == "" && strings.TrimSpace(l.ProjectName) != "" {
			merged.ProjectName = l.ProjectName
		}
		if merged.PackageManager == "" && strings.TrimSpace(l.PackageManager) != "" {
			merged.PackageManager = l.PackageManager
		}
		if merged.ModuleSystem == "" && strings.TrimSpace(l.ModuleSystem) != "" {
			merged.ModuleSystem = l.ModuleSystem
		}
		if merged.IncludeAuth == nil && l.IncludeAuth != nil {
			merged.IncludeAuth = l.IncludeAuth
		}
	}

	cfg := models.Configuration{
		ProjectName:    merged.ProjectName,
		PackageManager: DefaultPackageManager,
		ModuleSystem:   DefaultModuleSystem,
		IncludeAuth:    DefaultIncludeAuth,
	}
	if merged.PackageManager != "" {
		cfg.PackageManager = NormalizePackageManager(merged.PackageManager)
	}
	if merged.ModuleSystem != "" {
		cfg.ModuleSystem = NormalizeModuleSystem(merged.ModuleSystem)
	}
	if merged.IncludeAuth != nil {
		cfg.IncludeAuth = *merged.IncludeAuth
	}

	if err := Validate(cfg); err != nil {
		return models.Configuration{}, err
	}
	return cfg, nil
}

// NormalizePackageManager maps user spellings onto a PackageManager.
// Unrecognized values are returned lowercased so validation can report them.
func NormalizePackageManager(s string) models.PackageManager {
	return models.PackageManager(label(s))
}

// NormalizeModuleSystem maps user spellings and wizard labels onto a
// ModuleSystem. Unrecognized values are returned lowercased.
func NormalizeModuleSystem(s string) models.ModuleSystem {
	switch v := label(s); v {
	case "cjs", "commonjs", "require":
		return models.ModuleSystemCommonJS
	case "esm", "es", "es modules", "es module", "module", "mjs", "import":
		return models.ModuleSystemESM
	default:
		return models.ModuleSystem(v)
	}
}

// label lowercases s and drops a trailing parenthesized hint such as
// " (require/module.exports)".
func label(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.Index(s, " ("); i > 0 {
		s = s[:i]
	}
	return s
}
