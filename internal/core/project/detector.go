package project

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/expressjet/expressjet/internal/defs"
	"github.com/expressjet/expressjet/internal/manifest"
)

// ExistingProject describes an npm project already present in a target.
type ExistingProject struct {
	Name            string // package.json name, may be empty.
	Type            string // package.json type, "" for CommonJS.
	HasNodeModules  bool
	HasScaffoldDirs bool // Any of the generated source directories exists.
}

// DetectExisting inspects the root of fsys for an npm project.
// It returns nil when the target holds no package.json.
func DetectExisting(fsys billy.Filesystem) (*ExistingProject, error) {
	data, err := util.ReadFile(fsys, defs.PackageJSON)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", defs.PackageJSON, err)
	}

	existing := &ExistingProject{
		HasNodeModules: isDir(fsys, "node_modules"),
	}
	// An unparseable manifest still marks the target as occupied.
	if pkg, err := manifest.Parse(data); err == nil {
		existing.Name = pkg.Name
		existing.Type = pkg.Type
	}
	for _, dir := range []string{defs.ConfigDir, defs.ModelsDir, defs.ControllersDir, defs.RoutesDir} {
		if isDir(fsys, dir) {
			existing.HasScaffoldDirs = true
			break
		}
	}
	return existing, nil
}

func isDir(fsys billy.Filesystem, p string) bool {
	info, err := fsys.Stat(p)
	return err == nil && info.IsDir()
}
