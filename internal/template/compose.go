package template

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/expressjet/expressjet/pkg/models"
)

// FileSet maps POSIX relative paths to file contents.
type FileSet map[string]string

// Paths returns the FileSet keys in lexical order.
func (fs FileSet) Paths() []string {
	return slices.Sorted(maps.Keys(fs))
}

// Bundle is the complete output of one composition: the files to write and
// the effects a host should perform afterwards.
type Bundle struct {
	Config  models.Configuration
	Style   ModuleStyle
	Files   FileSet
	Effects []Effect
}

// Engine composes bundles from template fragments.
type Engine struct {
	renderer Renderer
}

// NewEngine creates an Engine that renders fragments with r.
func NewEngine(r Renderer) *Engine {
	return &Engine{renderer: r}
}

// Compose folds the active file specs for cfg into a Bundle. The result is
// a pure function of cfg; errors only arise from a broken fragment set.
func (e *Engine) Compose(cfg models.Configuration) (*Bundle, error) {
	c := NewTemplateContext(cfg)

	files := make(FileSet)
	for _, spec := range activeSpecs(c) {
		p := spec.path(c)
		content, err := spec.content(e, c)
		if err != nil {
			return nil, fmt.Errorf("compose %s: %w", p, err)
		}
		files[p] = content
	}

	return &Bundle{
		Config:  cfg,
		Style:   c.Style,
		Files:   files,
		Effects: effectsFor(c),
	}, nil
}

var defaultEngine = sync.OnceValue(func() *Engine {
	fsys, err := EmbeddedTemplates()
	if err != nil {
		panic(fmt.Sprintf("template: embedded fragments: %v", err))
	}
	return NewEngine(NewRenderer(fsys))
})

// Compose builds the scaffold for cfg from the embedded fragments.
// cfg must already be validated. Compose never fails: the embedded
// fragments are exercised for every configuration by the package tests,
// so a render error here is a build defect and panics.
func Compose(cfg models.Configuration) *Bundle {
	b, err := defaultEngine().Compose(cfg)
	if err != nil {
		panic(fmt.Sprintf("template: %v", err))
	}
	return b
}
