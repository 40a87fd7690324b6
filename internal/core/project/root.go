package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/expressjet/expressjet/internal/defs"
)

// FindEnclosingPackage searches the parents of dir for a package.json and
// returns the directory holding it, or "" when there is none. dir itself is
// not considered.
//
// Scaffolding inside another npm package works, but Node resolves
// dependencies through the parent's node_modules, so callers warn about it.
func FindEnclosingPackage(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", nil
		}
		absDir = parent

		if info, err := os.Stat(filepath.Join(absDir, defs.PackageJSON)); err == nil && !info.IsDir() {
			return absDir, nil
		}
	}
}
