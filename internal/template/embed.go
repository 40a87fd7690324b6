package template

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templateFS embed.FS

// EmbeddedTemplates returns the built-in template fragments rooted at the
// templates directory.
func EmbeddedTemplates() (fs.FS, error) {
	return fs.Sub(templateFS, "templates")
}
