package template

import "github.com/expressjet/expressjet/internal/defs"

// EffectKind identifies a follow-up action requested by a Bundle.
type EffectKind string

const (
	// EffectRunCommand runs Command inside the project root.
	EffectRunCommand EffectKind = "run-command"
	// EffectOpenFile offers to open Path (relative to the project root).
	EffectOpenFile EffectKind = "open-file"
	// EffectRevealDirectory prints the project root location.
	EffectRevealDirectory EffectKind = "reveal-directory"
)

// Effect is a side effect the composition core describes but never performs.
type Effect struct {
	Kind    EffectKind `yaml:"kind" json:"kind"`
	Title   string     `yaml:"title" json:"title"`
	Command []string   `yaml:"command,omitempty" json:"command,omitempty"`
	Path    string     `yaml:"path,omitempty" json:"path,omitempty"`
}

// effectsFor returns the post-write actions for c, in execution order.
func effectsFor(c *TemplateContext) []Effect {
	return []Effect{
		{
			Kind:    EffectRunCommand,
			Title:   "Install dependencies (" + c.PackageManager + ")",
			Command: c.InstallArgv,
		},
		{
			Kind:  EffectOpenFile,
			Title: "Open " + defs.ReadmeFile,
			Path:  defs.ReadmeFile,
		},
		{
			Kind:  EffectRevealDirectory,
			Title: "Show project location",
			Path:  ".",
		},
	}
}
