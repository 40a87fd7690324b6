package template

import (
	"fmt"
	"maps"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/expressjet/expressjet/internal/defs"
	"github.com/expressjet/expressjet/internal/manifest"
)

// CheckError lists every cross-file inconsistency found in a FileSet.
type CheckError struct {
	Problems []string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInconsistentBundle, strings.Join(e.Problems, "; "))
}

// Unwrap returns ErrInconsistentBundle so callers can match with errors.Is.
func (e *CheckError) Unwrap() error {
	return ErrInconsistentBundle
}

var (
	cjsImportPattern   = regexp.MustCompile(`(?m)^const (\{[^}]*\}|\w+) = require\('([^']+)'\);`)
	esmImportPattern   = regexp.MustCompile(`(?m)^import (?:(\w+)(?:, )?)?(?:\{[^}]*\})? ?from '([^']+)';`)
	esmSyntaxPattern   = regexp.MustCompile(`(?m)^(import |export )`)
	cjsSyntaxPattern   = regexp.MustCompile(`(?m)require\(|module\.exports|^exports\.`)
	mountPattern       = regexp.MustCompile(`app\.use\('([^']*)',\s*(\w+)\)`)
	appRoutePattern    = regexp.MustCompile(`app\.(get|post|put|patch|delete)\('([^']*)'`)
	routerRoutePattern = regexp.MustCompile(`router\.(get|post|put|patch|delete)\('([^']*)'`)
	readmeRoutePattern = regexp.MustCompile("`(GET|POST|PUT|PATCH|DELETE) (/[^`]*)`")
	readmeFilePattern  = regexp.MustCompile("(?m)^- `([^`]+)`$")
)

// Check verifies that the files of a bundle agree with each other:
// every source uses the module style declared in package.json, every
// relative import resolves to a file in the set, every package import is
// declared, and the README documents exactly the routes the server
// registers. All problems are reported in a single *CheckError.
func Check(files FileSet) error {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	raw, ok := files[defs.PackageJSON]
	if !ok {
		return &CheckError{Problems: []string{defs.PackageJSON + " is missing"}}
	}
	pkg, err := manifest.Parse([]byte(raw))
	if err != nil {
		return &CheckError{Problems: []string{err.Error()}}
	}

	style := CommonJS
	if pkg.Type == ESModule.PackageType() {
		style = ESModule
	}
	if _, ok := files[pkg.Main]; !ok {
		report("%s: main %q is not in the bundle", defs.PackageJSON, pkg.Main)
	}

	imports := make(map[string]map[string]string) // file -> binding -> resolved file
	for _, p := range files.Paths() {
		if !isSource(p) {
			continue
		}
		if path.Ext(p) != "."+style.Ext() {
			report("%s: extension does not match %s", p, style)
		}
		imports[p] = checkSource(p, files[p], style, files, pkg, report)
	}

	if readme, ok := files[defs.ReadmeFile]; ok {
		checkReadme(readme, files, pkg.Main, imports, report)
	}

	if len(problems) > 0 {
		return &CheckError{Problems: problems}
	}
	return nil
}

func isSource(p string) bool {
	ext := path.Ext(p)
	return ext == ".js" || ext == ".mjs"
}

// checkSource validates one source file and returns its default-import
// bindings that point into the bundle.
func checkSource(p, content string, style ModuleStyle, files FileSet, pkg *manifest.PackageJSON, report func(string, ...any)) map[string]string {
	pattern := cjsImportPattern
	if style == ESModule {
		pattern = esmImportPattern
		if cjsSyntaxPattern.MatchString(content) {
			report("%s: CommonJS syntax in an ES module", p)
		}
	} else if esmSyntaxPattern.MatchString(content) {
		report("%s: ES module syntax in a CommonJS file", p)
	}

	bindings := make(map[string]string)
	for _, m := range pattern.FindAllStringSubmatch(content, -1) {
		binding, spec := m[1], m[2]
		if !strings.HasPrefix(spec, ".") {
			if name := packageName(spec); !pkg.Declares(name) {
				report("%s: package %q is not declared in %s", p, name, defs.PackageJSON)
			}
			continue
		}

		target := path.Join(path.Dir(p), spec)
		switch {
		case style == ESModule && path.Ext(target) != ".mjs":
			report("%s: ES module import %q needs the .mjs extension", p, spec)
			continue
		case style == CommonJS && path.Ext(target) == "":
			target += ".js"
		}
		if _, ok := files[target]; !ok {
			report("%s: import %q does not resolve to a bundled file", p, spec)
			continue
		}
		if binding != "" && !strings.HasPrefix(binding, "{") {
			bindings[binding] = target
		}
	}
	return bindings
}

// packageName strips any subpath from a bare specifier.
func packageName(spec string) string {
	parts := strings.SplitN(spec, "/", 3)
	if strings.HasPrefix(spec, "@") && len(parts) > 1 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// checkReadme compares the README against the bundle's files and the
// routes registered by the entry module.
func checkReadme(readme string, files FileSet, entry string, imports map[string]map[string]string, report func(string, ...any)) {
	for _, m := range readmeFilePattern.FindAllStringSubmatch(readme, -1) {
		if _, ok := files[m[1]]; !ok {
			report("%s: lists %q which is not in the bundle", defs.ReadmeFile, m[1])
		}
	}

	registered := registeredRoutes(files, entry, imports)
	documented := make(map[string]bool)
	for _, m := range readmeRoutePattern.FindAllStringSubmatch(readme, -1) {
		documented[m[1]+" "+m[2]] = true
	}

	for _, r := range slices.Sorted(maps.Keys(documented)) {
		if !registered[r] {
			report("%s: documents %q which the server does not register", defs.ReadmeFile, r)
		}
	}
	for _, r := range slices.Sorted(maps.Keys(registered)) {
		if !documented[r] {
			report("%s: does not document %q", defs.ReadmeFile, r)
		}
	}
}

// registeredRoutes resolves app-level routes and mounted routers into
// "METHOD /path" entries.
func registeredRoutes(files FileSet, entry string, imports map[string]map[string]string) map[string]bool {
	routes := make(map[string]bool)
	app := files[entry]
	for _, m := range appRoutePattern.FindAllStringSubmatch(app, -1) {
		routes[strings.ToUpper(m[1])+" "+m[2]] = true
	}
	for _, m := range mountPattern.FindAllStringSubmatch(app, -1) {
		mount, binding := m[1], m[2]
		target, ok := imports[entry][binding]
		if !ok {
			continue
		}
		for _, r := range routerRoutePattern.FindAllStringSubmatch(files[target], -1) {
			routes[strings.ToUpper(r[1])+" "+joinRoute(mount, r[2])] = true
		}
	}
	return routes
}

func joinRoute(mount, sub string) string {
	if sub == "/" || sub == "" {
		return mount
	}
	return path.Join(mount, sub)
}
