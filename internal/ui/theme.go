// Package ui holds the terminal presentation layer of expressjet: the color
// theme, TTY detection and the progress bar shown while a project is written.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors is the palette used by the styled components.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

// ThemeConfig selects the theme variant.
type ThemeConfig struct {
	// NoColor disables every color. It is also forced on by the NO_COLOR
	// environment variable.
	NoColor bool
	// Mode is "dark", "light" or empty for auto-detection.
	Mode string
}

// Theme groups the palette with the styles derived from it.
type Theme struct {
	NoColor bool
	Mode    string
	Colors  Colors
}

var (
	darkColors = Colors{
		Primary:   "#22C55E",
		Secondary: "#3B82F6",
		Success:   "#10B981",
		Warning:   "#F59E0B",
		Error:     "#EF4444",
		Muted:     "#6B7280",
	}
	lightColors = Colors{
		Primary:   "#16A34A",
		Secondary: "#2563EB",
		Success:   "#059669",
		Warning:   "#D97706",
		Error:     "#DC2626",
		Muted:     "#9CA3AF",
	}
)

// NewTheme builds a Theme from cfg.
func NewTheme(cfg ThemeConfig) *Theme {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode != "dark" && mode != "light" {
		mode = "dark"
		if !lipgloss.HasDarkBackground() {
			mode = "light"
		}
	}

	colors := darkColors
	if mode == "light" {
		colors = lightColors
	}

	return &Theme{
		NoColor: cfg.NoColor || os.Getenv("NO_COLOR") != "",
		Mode:    mode,
		Colors:  colors,
	}
}

// Style returns a foreground style for color, or a plain style when colors
// are disabled.
func (t *Theme) Style(color string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if t.NoColor || color == "" {
		return s
	}
	return s.Foreground(lipgloss.Color(color))
}
