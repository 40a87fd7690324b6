// Package models provides the shared data model for expressjet.
//
// The central type is [Configuration], the immutable record that drives a
// single scaffold run. It is built once by the configuration resolver and
// handed to the composition engine unchanged.
//
// # Package Managers
//
// Two package managers are supported. They only change documentation text
// and the install command run after the files are written:
//
//	pm := models.PackageManagerYarn
//	fmt.Println(pm.RunScript("dev")) // "yarn dev"
//
// # Module Systems
//
// [ModuleSystem] selects CommonJS (require/module.exports) or ECMAScript
// modules (import/export) for every generated source file.
//
// # Name Derivation
//
// [DeriveName] turns a free-form project name into the identifier used for
// the package name and the default database name:
//
//	models.DeriveName("My Cool API") // "my-cool-api"
package models
