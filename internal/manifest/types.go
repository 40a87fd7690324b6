package manifest

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Dependency is an npm package and the version range it is declared with.
type Dependency struct {
	Name  string
	Range string
}

// Dependency catalog. Ranges follow the versions the generated sources are written against.
var (
	Express      = Dependency{Name: "express", Range: "^4.18.2"}
	Mongoose     = Dependency{Name: "mongoose", Range: "^7.6.0"}
	Dotenv       = Dependency{Name: "dotenv", Range: "^16.0.3"}
	BcryptJS     = Dependency{Name: "bcryptjs", Range: "^2.4.3"}
	JSONWebToken = Dependency{Name: "jsonwebtoken", Range: "^9.0.2"}
	Nodemon      = Dependency{Name: "nodemon", Range: "^3.0.1"}
)

// BaseDependencies returns the runtime dependencies every scaffold declares:
// web framework, database driver and env loader.
func BaseDependencies() []Dependency {
	return []Dependency{Express, Mongoose, Dotenv}
}

// AuthDependencies returns the extra runtime dependencies of the auth feature:
// password hashing and token signing.
func AuthDependencies() []Dependency {
	return []Dependency{BcryptJS, JSONWebToken}
}

// DevDependencies returns the development-only dependencies.
func DevDependencies() []Dependency {
	return []Dependency{Nodemon}
}

// RuntimeDependencies returns the runtime dependency list for a feature set.
func RuntimeDependencies(includeAuth bool) []Dependency {
	deps := BaseDependencies()
	if includeAuth {
		deps = append(deps, AuthDependencies()...)
	}
	return deps
}

// PackageJSON is the subset of npm's package.json the scaffold writes.
// Field order is the serialization order.
type PackageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Type            string            `json:"type,omitempty"`
	Main            string            `json:"main"`
	Scripts         map[string]string `json:"scripts"`
	Keywords        []string          `json:"keywords"`
	Author          string            `json:"author"`
	License         string            `json:"license"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// Options configures New.
type Options struct {
	Name        string // Derived package name.
	Entry       string // Entry point path, e.g. "src/app.js".
	Type        string // "module" for ECMAScript modules, empty for CommonJS.
	IncludeAuth bool
}

// New builds the package.json for the given options.
func New(opts Options) *PackageJSON {
	keywords := []string{"express", "mongodb", "boilerplate", "api"}
	if opts.IncludeAuth {
		keywords = append(keywords, "jwt", "auth")
	}
	return &PackageJSON{
		Name:        opts.Name,
		Version:     "1.0.0",
		Description: "A modern Express.js and MongoDB backend boilerplate.",
		Type:        opts.Type,
		Main:        opts.Entry,
		Scripts: map[string]string{
			"start": "node " + opts.Entry,
			"dev":   "nodemon " + opts.Entry,
		},
		Keywords:        keywords,
		Author:          "",
		License:         "ISC",
		Dependencies:    toMap(RuntimeDependencies(opts.IncludeAuth)),
		DevDependencies: toMap(DevDependencies()),
	}
}

// Declares reports whether pkg is a runtime or development dependency.
func (p *PackageJSON) Declares(pkg string) bool {
	if _, ok := p.Dependencies[pkg]; ok {
		return true
	}
	_, ok := p.DevDependencies[pkg]
	return ok
}

// Bytes serializes the manifest with two-space indentation and a trailing newline.
// encoding/json sorts map keys, so the output is deterministic.
func (p *PackageJSON) Bytes() []byte {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		// Only strings, slices of strings and string maps are marshaled.
		panic(fmt.Sprintf("manifest: marshal package.json: %v", err))
	}
	return append(data, '\n')
}

// Parse decodes package.json content.
func Parse(data []byte) (*PackageJSON, error) {
	var p PackageJSON
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return &p, nil
}

func toMap(deps []Dependency) map[string]string {
	m := make(map[string]string, len(deps))
	for _, d := range deps {
		m[d.Name] = d.Range
	}
	return m
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
