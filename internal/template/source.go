package template

import "strings"

// Import is one dependency of a generated source file. Exactly one of
// Package (a bare npm package) or Module (a module ID inside the scaffold)
// is set.
type Import struct {
	Default string   // Binding for the default export.
	Named   []string // Bindings for named exports.
	Package string
	Module  string
}

// Source is a generated source file split into its structural parts.
// The body is style-neutral apart from ExportConst calls made while
// rendering it.
type Source struct {
	Module  string // Module ID, e.g. "src/routes/example.route".
	Imports []Import
	Body    string
	Default string // Default export expression; empty for none.
}

// Render assembles src into file content in style s.
func (s ModuleStyle) Render(src Source) string {
	var b strings.Builder
	for _, imp := range src.Imports {
		b.WriteString(s.ImportStatement(src.Module, imp))
		b.WriteByte('\n')
	}
	if len(src.Imports) > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(strings.TrimSpace(src.Body))
	b.WriteByte('\n')
	if src.Default != "" {
		b.WriteByte('\n')
		b.WriteString(s.DefaultExport(src.Default))
		b.WriteByte('\n')
	}
	return b.String()
}
