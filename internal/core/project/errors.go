// Package project scaffolds a new Express + MongoDB project into a target
// directory. It drives the ordered init steps (compose, consistency check,
// manifest validation, write, follow-up effects) and owns the error
// taxonomy seen by the CLI.
package project

import "errors"

// Sentinel errors for the project package.
var (
	// ErrProjectExists indicates the target already contains an npm project.
	ErrProjectExists = errors.New("target already contains a package.json")

	// ErrInvalidRoot indicates the given project root path is invalid or inaccessible.
	ErrInvalidRoot = errors.New("invalid project root path")

	// ErrInitFailed indicates a project initialization step failed.
	ErrInitFailed = errors.New("initialization failed")
)
