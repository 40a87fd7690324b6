package template

import (
	"strings"

	"github.com/expressjet/expressjet/pkg/models"
)

// ModuleStyle is the import/export convention shared by every generated
// source file. It is selected once per Compose call.
type ModuleStyle int

const (
	// CommonJS emits require()/module.exports and .js files.
	CommonJS ModuleStyle = iota
	// ESModule emits import/export and .mjs files.
	ESModule
)

// StyleFor selects the ModuleStyle for a module system.
func StyleFor(ms models.ModuleSystem) ModuleStyle {
	if ms == models.ModuleSystemESM {
		return ESModule
	}
	return CommonJS
}

// String returns the module system name.
func (s ModuleStyle) String() string {
	if s == ESModule {
		return string(models.ModuleSystemESM)
	}
	return string(models.ModuleSystemCommonJS)
}

// Ext returns the source file extension without the dot.
func (s ModuleStyle) Ext() string {
	if s == ESModule {
		return "mjs"
	}
	return "js"
}

// PackageType returns the package.json "type" value, empty for CommonJS.
func (s ModuleStyle) PackageType() string {
	if s == ESModule {
		return "module"
	}
	return ""
}

// FilePath returns the FileSet path of a module ID such as "src/config/db".
func (s ModuleStyle) FilePath(module string) string {
	return module + "." + s.Ext()
}

// Specifier returns the string importer uses to load target. Both arguments
// are module IDs. ES modules need the full file name; CommonJS resolves the
// .js extension itself.
func (s ModuleStyle) Specifier(importer, target string) string {
	spec := relativeModule(dirOf(importer), target)
	if s == ESModule {
		return spec + "." + s.Ext()
	}
	return spec
}

// ExportConst returns the left-hand side of a named export declaration,
// e.g. "exports.login" or "export const login".
func (s ModuleStyle) ExportConst(name string) string {
	if s == ESModule {
		return "export const " + name
	}
	return "exports." + name
}

// DefaultExport returns the statement exporting expr as the module's default.
func (s ModuleStyle) DefaultExport(expr string) string {
	if s == ESModule {
		return "export default " + expr + ";"
	}
	return "module.exports = " + expr + ";"
}

// ImportStatement renders imp as seen from the importer module.
func (s ModuleStyle) ImportStatement(importer string, imp Import) string {
	from := imp.Package
	if imp.Module != "" {
		from = s.Specifier(importer, imp.Module)
	}
	named := ""
	if len(imp.Named) > 0 {
		named = "{ " + strings.Join(imp.Named, ", ") + " }"
	}

	if s == ESModule {
		switch {
		case imp.Default != "" && named != "":
			return "import " + imp.Default + ", " + named + " from '" + from + "';"
		case imp.Default != "":
			return "import " + imp.Default + " from '" + from + "';"
		default:
			return "import " + named + " from '" + from + "';"
		}
	}

	switch {
	case imp.Default != "" && named != "":
		return "const " + imp.Default + " = require('" + from + "');\nconst " + named + " = " + imp.Default + ";"
	case imp.Default != "":
		return "const " + imp.Default + " = require('" + from + "');"
	default:
		return "const " + named + " = require('" + from + "');"
	}
}

func dirOf(module string) string {
	if i := strings.LastIndexByte(module, '/'); i >= 0 {
		return module[:i]
	}
	return ""
}

// relativeModule returns the POSIX relative path from dir to target,
// always starting with "./" or "../".
func relativeModule(dir, target string) string {
	from := splitPath(dir)
	to := splitPath(target)

	common := 0
	for common < len(from) && common < len(to)-1 && from[common] == to[common] {
		common++
	}

	var parts []string
	for range from[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, to[common:]...)

	rel := strings.Join(parts, "/")
	if !strings.HasPrefix(rel, "../") {
		rel = "./" + rel
	}
	return rel
}

func splitPath(p string) []string {
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
