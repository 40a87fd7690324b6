package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"

	"github.com/expressjet/expressjet/internal/defs"
	"github.com/expressjet/expressjet/internal/effects"
	"github.com/expressjet/expressjet/internal/manifest"
	"github.com/expressjet/expressjet/internal/template"
	"github.com/expressjet/expressjet/pkg/models"
)

// InitOptions configures the project initialization.
type InitOptions struct {
	ProjectRoot  string               // Existing directory that receives the scaffold.
	Config       models.Configuration // Validated scaffold choices.
	DryRun       bool                 // Compose and check, write into memory only.
	Force        bool                 // Overwrite files that already exist.
	SkipInstall  bool                 // Do not run the package manager afterwards.
	ShowReadme   bool                 // Preview the generated README.
	ReadmeStyle  string               // glamour style for the preview.
	InstallRetry effects.RetryPolicy  // Re-runs of a failed install.
	Out          io.Writer            // Destination for effect output.
	Progress     template.ProgressFunc
}

// InitResult summarizes the outcome of project initialization.
type InitResult struct {
	ProjectRoot  string
	Bundle       *template.Bundle
	CreatedDirs  []string // Directories that were created.
	CreatedFiles []string // Files that were written, in write order.
	Effects      *effects.Report
	Warnings     []string // Non-fatal warnings during initialization.
	DryRun       bool
}

// Initializer handles project scaffolding.
type Initializer interface {
	// Init writes a new project into opts.ProjectRoot. On a write failure
	// the returned result lists the files written before the error.
	Init(ctx context.Context, opts InitOptions) (*InitResult, error)
}

// projectInitializer is the concrete implementation of Initializer.
type projectInitializer struct {
	engine *template.Engine // nil uses the embedded fragments.
	runner effects.CommandRunner
	logger *slog.Logger
}

// NewInitializer creates an Initializer with the given dependencies.
// A nil engine composes from the embedded fragments; a nil runner runs
// follow-up commands as child processes.
func NewInitializer(engine *template.Engine, runner effects.CommandRunner, logger *slog.Logger) Initializer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if runner == nil {
		runner = effects.ExecRunner{}
	}
	return &projectInitializer{
		engine: engine,
		runner: runner,
		logger: logger,
	}
}

// Init runs the init steps in order, checking ctx between them.
func (i *projectInitializer) Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	opts.ProjectRoot = filepath.Clean(opts.ProjectRoot)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.logger.Info("scaffolding project",
		"root", opts.ProjectRoot,
		"name", opts.Config.ProjectName,
		"packageManager", opts.Config.PackageManager,
		"moduleSystem", opts.Config.ModuleSystem,
		"auth", opts.Config.IncludeAuth,
		"dryRun", opts.DryRun,
	)

	result := &InitResult{ProjectRoot: opts.ProjectRoot, DryRun: opts.DryRun}

	// Step 1: Compose the bundle
	bundle, err := i.compose(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("%w: compose: %w", ErrInitFailed, err)
	}
	result.Bundle = bundle

	// Step 2: Cross-file consistency
	if err := template.Check(bundle.Files); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitFailed, err)
	}

	// Step 3: Manifest validation
	warnings, err := validateManifest(bundle.Files[defs.PackageJSON])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitFailed, err)
	}
	for _, w := range warnings {
		i.warn(result, w)
	}

	// Step 4: Open the target
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := i.openTarget(opts, result)
	if err != nil {
		return nil, err
	}

	// Step 5: Write files
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	deployer := template.NewDeployer(
		template.WithForce(opts.Force),
		template.WithProgress(opts.Progress),
		template.WithLogger(i.logger),
	)
	deployed, err := deployer.Deploy(ctx, target, bundle.Files)
	if deployed != nil {
		result.CreatedDirs = deployed.CreatedDirs
		result.CreatedFiles = deployed.Files
	}
	if err != nil {
		i.logger.Error("write failed", "written", len(result.CreatedFiles), "error", err)
		return result, fmt.Errorf("write project: %w", err)
	}

	// Step 6: Follow-up effects
	report, err := effects.Perform(ctx, bundle.Effects, effects.Options{
		Root:         opts.ProjectRoot,
		FS:           target,
		Out:          opts.Out,
		DryRun:       opts.DryRun,
		SkipInstall:  opts.SkipInstall,
		ShowReadme:   opts.ShowReadme,
		ReadmeStyle:  opts.ReadmeStyle,
		InstallRetry: opts.InstallRetry,
		Runner:       i.runner,
		Logger:       i.logger,
	})
	result.Effects = report
	if report != nil {
		result.Warnings = append(result.Warnings, report.Warnings...)
	}
	if err != nil {
		return result, err
	}

	i.logger.Info("project scaffolded",
		"dirs", len(result.CreatedDirs),
		"files", len(result.CreatedFiles),
		"warnings", len(result.Warnings),
	)

	return result, nil
}

func (i *projectInitializer) compose(cfg models.Configuration) (*template.Bundle, error) {
	if i.engine == nil {
		return template.Compose(cfg), nil
	}
	return i.engine.Compose(cfg)
}

// openTarget returns the filesystem to write into. A dry run writes into
// memory but still inspects the real target when it exists.
func (i *projectInitializer) openTarget(opts InitOptions, result *InitResult) (billy.Filesystem, error) {
	disk, err := template.OpenTarget(opts.ProjectRoot)
	if err != nil {
		if !opts.DryRun {
			return nil, err
		}
		i.warn(result, fmt.Sprintf("target %s does not exist", opts.ProjectRoot))
	}

	if disk != nil {
		existing, err := DetectExisting(disk)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
		}
		if existing != nil {
			if !opts.Force {
				return nil, fmt.Errorf("%w: %s (use --force to overwrite)", ErrProjectExists, opts.ProjectRoot)
			}
			i.warnOverwrite(result, existing, opts.Config)
		}
	}

	if parent, err := FindEnclosingPackage(opts.ProjectRoot); err == nil && parent != "" {
		i.warn(result, fmt.Sprintf("target is inside the npm package at %s", parent))
	}

	if opts.DryRun {
		return memfs.New(), nil
	}
	return disk, nil
}

// warnOverwrite reports what a forced scaffold replaces in an existing project.
func (i *projectInitializer) warnOverwrite(result *InitResult, existing *ExistingProject, cfg models.Configuration) {
	i.warn(result, fmt.Sprintf("overwriting existing project %q", existing.Name))
	have, want := packageType(existing.Type), packageType(template.StyleFor(cfg.ModuleSystem).PackageType())
	if have != want {
		i.warn(result, fmt.Sprintf("package type changes from %s to %s", have, want))
	}
	if existing.HasScaffoldDirs {
		i.warn(result, "existing files under "+defs.SrcDir+"/ may be replaced")
	}
	if existing.HasNodeModules {
		i.warn(result, "node_modules already present; reinstall to match the new package.json")
	}
}

// packageType names a package.json "type"; an absent field means commonjs.
func packageType(t string) string {
	if t == "" {
		return "commonjs"
	}
	return t
}

func (i *projectInitializer) warn(result *InitResult, msg string) {
	result.Warnings = append(result.Warnings, msg)
	i.logger.Warn("init warning", "detail", msg)
}

// validateManifest runs the package.json schema and range checks. Schema
// issues are returned as warnings; an unparseable range is an error.
func validateManifest(raw string) ([]string, error) {
	vr, err := manifest.Validate([]byte(raw))
	if err != nil {
		return nil, err
	}

	var warnings []string
	for _, issue := range vr.Issues {
		warnings = append(warnings, defs.PackageJSON+" "+issue.String())
	}

	pkg, err := manifest.Parse([]byte(raw))
	if err != nil {
		return nil, err
	}
	if err := manifest.CheckRanges(pkg); err != nil {
		return nil, err
	}
	return warnings, nil
}
