// Package cli provides the Cobra command tree and dependency injection
// wiring for the expressjet CLI. This file defines the Dependencies struct
// (Composition Root) that wires the domain modules together.
package cli

import (
	"io"
	"log/slog"

	"github.com/expressjet/expressjet/internal/config"
	"github.com/expressjet/expressjet/internal/core/project"
	"github.com/expressjet/expressjet/internal/effects"
	"github.com/expressjet/expressjet/internal/ui"
)

// Dependencies holds all domain-level services used by CLI commands.
// This is the only place where concrete types are instantiated and wired
// together.
type Dependencies struct {
	Store       *config.Store
	Runner      effects.CommandRunner
	Initializer project.Initializer
	Headless    *ui.HeadlessManager
	Logger      *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates and wires all domain dependencies.
// It should be called once during application startup.
func InitDependencies() {
	// Logging stays off unless --verbose is given.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps = NewDependencies(config.DefaultPath(), effects.ExecRunner{}, logger)
}

// NewDependencies wires a Dependencies value around the defaults file at
// configPath.
func NewDependencies(configPath string, runner effects.CommandRunner, logger *slog.Logger) *Dependencies {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := &Dependencies{
		Store:    config.NewStore(configPath),
		Runner:   runner,
		Headless: ui.NewHeadlessManager(),
	}
	d.SetLogger(logger)
	return d
}

// SetLogger replaces the logger and rebuilds the services that hold it.
func (d *Dependencies) SetLogger(logger *slog.Logger) {
	d.Logger = logger
	d.Initializer = project.NewInitializer(nil, d.Runner, logger)
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}
