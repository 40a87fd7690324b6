// Package manifest models the package.json written into a scaffold.
//
// It owns the dependency catalog (which npm packages a configuration needs
// and at which version ranges), builds the manifest for a configuration,
// and validates generated manifests against an embedded JSON schema and
// against semver range syntax.
package manifest
