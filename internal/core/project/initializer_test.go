package project

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/expressjet/expressjet/internal/template"
	"github.com/expressjet/expressjet/pkg/models"
)

type recordingRunner struct {
	calls [][]string
	dirs  []string
}

func (r *recordingRunner) Run(_ context.Context, dir string, argv []string, _, _ io.Writer) error {
	r.calls = append(r.calls, argv)
	r.dirs = append(r.dirs, dir)
	return nil
}

func demoConfig(auth bool, ms models.ModuleSystem) models.Configuration {
	return models.Configuration{
		ProjectName:    "Demo Shop",
		PackageManager: models.PackageManagerNPM,
		ModuleSystem:   ms,
		IncludeAuth:    auth,
	}
}

func hasWarning(result *InitResult, substr string) bool {
	return slices.ContainsFunc(result.Warnings, func(w string) bool {
		return strings.Contains(w, substr)
	})
}

func TestInitWritesProject(t *testing.T) {
	root := t.TempDir()
	runner := &recordingRunner{}
	initializer := NewInitializer(nil, runner, nil)

	result, err := initializer.Init(context.Background(), InitOptions{
		ProjectRoot: root,
		Config:      demoConfig(false, models.ModuleSystemCommonJS),
	})
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}

	if len(result.CreatedFiles) != 9 {
		t.Errorf("CreatedFiles = %d, want 9: %v", len(result.CreatedFiles), result.CreatedFiles)
	}
	for _, f := range result.CreatedFiles {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(f))); err != nil {
			t.Errorf("expected %s on disk: %v", f, err)
		}
	}
	if !slices.Contains(result.CreatedDirs, "src/config") {
		t.Errorf("CreatedDirs = %v, want src/config", result.CreatedDirs)
	}
	if hasWarning(result, "package.json") {
		t.Errorf("unexpected manifest warnings: %v", result.Warnings)
	}

	if len(runner.calls) != 1 || !slices.Equal(runner.calls[0], []string{"npm", "install"}) {
		t.Errorf("runner calls = %v, want npm install", runner.calls)
	}
	if runner.dirs[0] != root {
		t.Errorf("install ran in %q, want %q", runner.dirs[0], root)
	}
}

func TestInitAuthESM(t *testing.T) {
	root := t.TempDir()
	initializer := NewInitializer(nil, &recordingRunner{}, nil)

	result, err := initializer.Init(context.Background(), InitOptions{
		ProjectRoot: root,
		Config:      demoConfig(true, models.ModuleSystemESM),
		SkipInstall: true,
	})
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if len(result.CreatedFiles) != 12 {
		t.Errorf("CreatedFiles = %d, want 12", len(result.CreatedFiles))
	}
	data, err := os.ReadFile(filepath.Join(root, "src", "middlewares", "auth.middleware.mjs"))
	if err != nil {
		t.Fatalf("read middleware: %v", err)
	}
	if !strings.Contains(string(data), "import jwt from 'jsonwebtoken';") {
		t.Errorf("middleware does not use ES imports:\n%s", data)
	}
}

func TestInitMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")
	initializer := NewInitializer(nil, &recordingRunner{}, nil)

	_, err := initializer.Init(context.Background(), InitOptions{
		ProjectRoot: root,
		Config:      demoConfig(false, models.ModuleSystemCommonJS),
	})
	if !errors.Is(err, template.ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound, got: %v", err)
	}
	if _, statErr := os.Stat(root); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("missing root was created")
	}
}

func TestInitExistingProject(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"name":"legacy"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	initializer := NewInitializer(nil, &recordingRunner{}, nil)
	opts := InitOptions{
		ProjectRoot: root,
		Config:      demoConfig(false, models.ModuleSystemCommonJS),
		SkipInstall: true,
	}

	if _, err := initializer.Init(context.Background(), opts); !errors.Is(err, ErrProjectExists) {
		t.Fatalf("expected ErrProjectExists, got: %v", err)
	}

	opts.Force = true
	result, err := initializer.Init(context.Background(), opts)
	if err != nil {
		t.Fatalf("forced Init error: %v", err)
	}
	if !hasWarning(result, `overwriting existing project "legacy"`) {
		t.Errorf("warnings = %v", result.Warnings)
	}
	if hasWarning(result, "package type") || hasWarning(result, "node_modules") || hasWarning(result, "src/") {
		t.Errorf("unexpected overwrite details: %v", result.Warnings)
	}
	data, _ := os.ReadFile(filepath.Join(root, "package.json"))
	if !strings.Contains(string(data), `"name": "demo-shop"`) {
		t.Errorf("package.json not overwritten:\n%s", data)
	}
}

func TestInitForcedOverwriteDetails(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"name":"legacy","type":"module"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{"node_modules", filepath.Join("src", "models")} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	result, err := NewInitializer(nil, &recordingRunner{}, nil).Init(context.Background(), InitOptions{
		ProjectRoot: root,
		Config:      demoConfig(false, models.ModuleSystemCommonJS),
		Force:       true,
		SkipInstall: true,
	})
	if err != nil {
		t.Fatalf("forced Init error: %v", err)
	}
	for _, want := range []string{
		"package type changes from module to commonjs",
		"existing files under src/ may be replaced",
		"node_modules already present",
	} {
		if !hasWarning(result, want) {
			t.Errorf("missing warning %q in %v", want, result.Warnings)
		}
	}
}

func TestInitFileCollision(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}
	initializer := NewInitializer(nil, &recordingRunner{}, nil)

	result, err := initializer.Init(context.Background(), InitOptions{
		ProjectRoot: root,
		Config:      demoConfig(false, models.ModuleSystemCommonJS),
	})
	if !errors.Is(err, template.ErrFileExists) {
		t.Fatalf("expected ErrFileExists, got: %v", err)
	}
	if len(result.CreatedFiles) != 0 {
		t.Errorf("CreatedFiles = %v, want none", result.CreatedFiles)
	}
	if _, err := os.Stat(filepath.Join(root, "src")); !errors.Is(err, os.ErrNotExist) {
		t.Error("src/ created despite the collision")
	}
}

func TestInitDryRun(t *testing.T) {
	root := t.TempDir()
	runner := &recordingRunner{}
	initializer := NewInitializer(nil, runner, nil)

	result, err := initializer.Init(context.Background(), InitOptions{
		ProjectRoot: root,
		Config:      demoConfig(false, models.ModuleSystemCommonJS),
		DryRun:      true,
	})
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if !result.DryRun || len(result.CreatedFiles) != 9 {
		t.Errorf("result = %+v", result)
	}
	entries, _ := os.ReadDir(root)
	if len(entries) != 0 {
		t.Errorf("dry run wrote %d entries to disk", len(entries))
	}
	if len(runner.calls) != 0 {
		t.Errorf("dry run ran commands: %v", runner.calls)
	}
}

func TestInitDryRunMissingRoot(t *testing.T) {
	initializer := NewInitializer(nil, &recordingRunner{}, nil)

	result, err := initializer.Init(context.Background(), InitOptions{
		ProjectRoot: filepath.Join(t.TempDir(), "later"),
		Config:      demoConfig(false, models.ModuleSystemCommonJS),
		DryRun:      true,
	})
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if !hasWarning(result, "does not exist") {
		t.Errorf("warnings = %v", result.Warnings)
	}
}

func TestInitSchemaWarnings(t *testing.T) {
	cfg := demoConfig(false, models.ModuleSystemCommonJS)
	cfg.ProjectName = "Über Service"
	initializer := NewInitializer(nil, &recordingRunner{}, nil)

	result, err := initializer.Init(context.Background(), InitOptions{
		ProjectRoot: t.TempDir(),
		Config:      cfg,
		SkipInstall: true,
	})
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if !hasWarning(result, "package.json /name") {
		t.Errorf("expected a name warning, got: %v", result.Warnings)
	}
}

func TestInitEnclosingPackageWarning(t *testing.T) {
	parent := t.TempDir()
	if err := os.WriteFile(filepath.Join(parent, "package.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	root := filepath.Join(parent, "api")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatal(err)
	}
	initializer := NewInitializer(nil, &recordingRunner{}, nil)

	result, err := initializer.Init(context.Background(), InitOptions{
		ProjectRoot: root,
		Config:      demoConfig(false, models.ModuleSystemCommonJS),
		SkipInstall: true,
	})
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if !hasWarning(result, "inside the npm package at "+parent) {
		t.Errorf("warnings = %v", result.Warnings)
	}
}

func TestInitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	initializer := NewInitializer(nil, &recordingRunner{}, nil)

	_, err := initializer.Init(ctx, InitOptions{
		ProjectRoot: t.TempDir(),
		Config:      demoConfig(false, models.ModuleSystemCommonJS),
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestInitBrokenFragments(t *testing.T) {
	engine := template.NewEngine(template.NewRenderer(fstest.MapFS{}))
	initializer := NewInitializer(engine, &recordingRunner{}, nil)

	_, err := initializer.Init(context.Background(), InitOptions{
		ProjectRoot: t.TempDir(),
		Config:      demoConfig(false, models.ModuleSystemCommonJS),
	})
	if !errors.Is(err, ErrInitFailed) {
		t.Errorf("expected ErrInitFailed, got: %v", err)
	}
	if !errors.Is(err, template.ErrTemplateNotFound) {
		t.Errorf("expected wrapped ErrTemplateNotFound, got: %v", err)
	}
}
