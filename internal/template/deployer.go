package template

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/expressjet/expressjet/internal/defs"
)

// Deployer writes a FileSet into a target filesystem.
type Deployer interface {
	// Deploy writes every file of files under the root of fsys, creating
	// parent directories as needed. Paths are written in lexical order.
	// On a write failure the returned result lists what was written before
	// the error; those files are not removed.
	Deploy(ctx context.Context, fsys billy.Filesystem, files FileSet) (*DeployResult, error)
}

// DeployResult records what a Deploy call wrote.
type DeployResult struct {
	Files       []string // Written file paths, in write order.
	CreatedDirs []string // Directories that did not exist before.
}

// ProgressFunc is called after each file is written.
type ProgressFunc func(path string, done, total int)

// DeployOption configures a Deployer.
type DeployOption func(*deployer)

// WithForce allows Deploy to overwrite existing files.
func WithForce(force bool) DeployOption {
	return func(d *deployer) { d.force = force }
}

// WithProgress registers a callback invoked after every written file.
func WithProgress(fn ProgressFunc) DeployOption {
	return func(d *deployer) { d.progress = fn }
}

// WithLogger sets the logger used for per-file debug output.
func WithLogger(logger *slog.Logger) DeployOption {
	return func(d *deployer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// deployer is the concrete implementation of Deployer.
type deployer struct {
	force    bool
	progress ProgressFunc
	logger   *slog.Logger
}

// NewDeployer creates a Deployer. By default it refuses to overwrite files.
func NewDeployer(opts ...DeployOption) Deployer {
	d := &deployer{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// OpenTarget returns a filesystem rooted at an existing directory.
func OpenTarget(root string) (billy.Filesystem, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, root)
		}
		return nil, fmt.Errorf("stat target %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrTargetNotFound, root)
	}
	return osfs.New(root), nil
}

// Deploy validates every path and checks for collisions before the first
// write, so a refused deploy leaves the target untouched.
func (d *deployer) Deploy(ctx context.Context, fsys billy.Filesystem, files FileSet) (*DeployResult, error) {
	paths := files.Paths()
	for _, p := range paths {
		if err := validateDeployPath(p); err != nil {
			return nil, err
		}
	}

	if !d.force {
		var existing []string
		for _, p := range paths {
			if _, err := fsys.Stat(p); err == nil {
				existing = append(existing, p)
			}
		}
		if len(existing) > 0 {
			return nil, fmt.Errorf("%w: %s (use --force to overwrite)", ErrFileExists, strings.Join(existing, ", "))
		}
	}

	result := &DeployResult{}
	created := make(map[string]bool)
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if dir := path.Dir(p); dir != "." && !created[dir] {
			missing := missingDirs(fsys, dir, created)
			if err := fsys.MkdirAll(dir, defs.DirPerm); err != nil {
				return result, fmt.Errorf("%w: mkdir %s: %v", ErrWriteFailed, dir, err)
			}
			result.CreatedDirs = append(result.CreatedDirs, missing...)
		}

		if err := util.WriteFile(fsys, p, []byte(files[p]), defs.FilePerm); err != nil {
			return result, fmt.Errorf("%w: %s: %v", ErrWriteFailed, p, err)
		}
		result.Files = append(result.Files, p)
		d.logger.Debug("file written", "path", p, "bytes", len(files[p]))

		if d.progress != nil {
			d.progress(p, i+1, len(paths))
		}
	}

	return result, nil
}

// missingDirs returns dir and its ancestors that do not exist yet, outermost
// first, and marks every ancestor of dir as seen.
func missingDirs(fsys billy.Filesystem, dir string, seen map[string]bool) []string {
	var chain []string
	for d := dir; d != "." && !seen[d]; d = path.Dir(d) {
		chain = append(chain, d)
	}

	var missing []string
	for i := len(chain) - 1; i >= 0; i-- {
		seen[chain[i]] = true
		if _, err := fsys.Stat(chain[i]); err != nil {
			missing = append(missing, chain[i])
		}
	}
	return missing
}

// validateDeployPath ensures a bundle path is relative, POSIX and stays
// inside the target root.
func validateDeployPath(relPath string) error {
	if relPath == "" {
		return fmt.Errorf("%w: empty path", ErrPathTraversal)
	}
	if strings.Contains(relPath, `\`) {
		return fmt.Errorf("%w: backslash in %q", ErrPathTraversal, relPath)
	}
	if path.IsAbs(relPath) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}

	cleaned := path.Clean(relPath)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("%w: %q escapes project root", ErrPathTraversal, relPath)
	}
	return nil
}
