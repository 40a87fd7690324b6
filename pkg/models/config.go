package models

import "slices"

// PackageManager identifies the Node.js package manager of the generated project.
type PackageManager string

const (
	// PackageManagerNPM uses npm (default).
	PackageManagerNPM PackageManager = "npm"

	// PackageManagerYarn uses Yarn classic.
	PackageManagerYarn PackageManager = "yarn"
)

// ValidPackageManagers returns all valid package manager values.
func ValidPackageManagers() []PackageManager {
	return []PackageManager{PackageManagerNPM, PackageManagerYarn}
}

// IsValid checks if the package manager is a supported value.
func (p PackageManager) IsValid() bool {
	return slices.Contains(ValidPackageManagers(), p)
}

// InstallCommand returns the argv that installs the project's dependencies.
func (p PackageManager) InstallCommand() []string {
	return []string{string(p), "install"}
}

// RunScript returns the shell command that runs a package.json script.
// npm needs the explicit "run" verb; yarn does not.
func (p PackageManager) RunScript(script string) string {
	if p == PackageManagerYarn {
		return "yarn " + script
	}
	return "npm run " + script
}

// ModuleSystem selects the import/export convention of the generated sources.
type ModuleSystem string

const (
	// ModuleSystemCommonJS uses require() and module.exports (default).
	ModuleSystemCommonJS ModuleSystem = "commonjs"

	// ModuleSystemESM uses import/export with .mjs files.
	ModuleSystemESM ModuleSystem = "esm"
)

// ValidModuleSystems returns all valid module system values.
func ValidModuleSystems() []ModuleSystem {
	return []ModuleSystem{ModuleSystemCommonJS, ModuleSystemESM}
}

// IsValid checks if the module system is a supported value.
func (m ModuleSystem) IsValid() bool {
	return slices.Contains(ValidModuleSystems(), m)
}

// Configuration is the immutable input of one scaffold run.
// It must be fully validated before it reaches the composition engine.
type Configuration struct {
	ProjectName    string         `yaml:"project_name" json:"project_name"`
	PackageManager PackageManager `yaml:"package_manager" json:"package_manager"`
	ModuleSystem   ModuleSystem   `yaml:"module_system" json:"module_system"`
	IncludeAuth    bool           `yaml:"include_auth" json:"include_auth"`
}

// Slug returns the derived, filesystem-safe project identifier.
func (c Configuration) Slug() string {
	return DeriveName(c.ProjectName)
}
