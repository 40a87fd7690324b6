// Package template composes the files of an Express + MongoDB scaffold and
// writes them to a target filesystem.
//
// Composition is pure: [Compose] maps a validated models.Configuration to a
// [Bundle] of file contents plus the follow-up [Effect]s a host should
// perform. Every source file is assembled through one [ModuleStyle], so
// require/import syntax, file extensions and cross-file specifiers always
// agree. Writing is the [Deployer]'s job and is the only part that can fail
// on I/O.
package template

import "errors"

// Sentinel errors for the template package.
var (
	// ErrTemplateNotFound indicates a named template fragment does not exist.
	ErrTemplateNotFound = errors.New("template: not found")

	// ErrMissingTemplateKey indicates a template referenced data that was not provided.
	ErrMissingTemplateKey = errors.New("template: missing key")

	// ErrInconsistentBundle indicates cross-file references in a bundle do not resolve.
	ErrInconsistentBundle = errors.New("template: inconsistent bundle")

	// ErrTargetNotFound indicates the target directory does not exist.
	ErrTargetNotFound = errors.New("template: target directory not found")

	// ErrPathTraversal indicates a file path escapes the target root.
	ErrPathTraversal = errors.New("template: path escapes target root")

	// ErrFileExists indicates a file would overwrite an existing one.
	ErrFileExists = errors.New("template: file already exists")

	// ErrWriteFailed indicates a filesystem write failed part-way through a deploy.
	ErrWriteFailed = errors.New("template: write failed")
)
