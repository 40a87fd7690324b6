package config

import "github.com/expressjet/expressjet/pkg/models"

// Keys of the user defaults file and of the EXPRESSJET_* environment overrides.
const (
	KeyPackageManager = "package_manager"
	KeyModuleSystem   = "module_system"
	KeyIncludeAuth    = "include_auth"
)

// Keys returns the defaults keys accepted by Store.Set, in display order.
func Keys() []string {
	return []string{KeyPackageManager, KeyModuleSystem, KeyIncludeAuth}
}

// Built-in defaults used when no layer supplies a value.
const (
	DefaultPackageManager = models.PackageManagerNPM
	DefaultModuleSystem   = models.ModuleSystemCommonJS
	DefaultIncludeAuth    = false
)

// Input is one layer of raw, possibly partial, user choices. Empty strings
// and a nil IncludeAuth mean "not set by this layer".
type Input struct {
	ProjectName    string `yaml:"project_name,omitempty"`
	PackageManager string `yaml:"package_manager,omitempty"`
	ModuleSystem   string `yaml:"module_system,omitempty"`
	IncludeAuth    *bool  `yaml:"include_auth,omitempty"`
}

// Bool returns a pointer to b, for populating Input.IncludeAuth.
func Bool(b bool) *bool {
	return &b
}
