package cli

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "expressjet" {
		t.Errorf("Use = %q", rootCmd.Use)
	}
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"new", "plan", "config"} {
		if !names[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestRootVersion(t *testing.T) {
	setupDeps(t)

	out, err := executeCommand(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "expressjet ") {
		t.Errorf("version output = %q", out)
	}
}

func TestRootVerboseReplacesLogger(t *testing.T) {
	d, _ := setupDeps(t)
	before := d.Logger
	beforeInit := d.Initializer

	if _, err := executeCommand(t, "config", "path", "--verbose"); err != nil {
		t.Fatal(err)
	}
	if d.Logger == before || d.Initializer == beforeInit {
		t.Error("--verbose should rebuild the logger and the initializer")
	}
}

func TestRootConfigFlag(t *testing.T) {
	setupDeps(t)
	path := filepath.Join(t.TempDir(), "other.yaml")

	out, err := executeCommand(t, "config", "path", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}
}

func TestRootRequiresDependencies(t *testing.T) {
	prev := GetDeps()
	SetDeps(nil)
	t.Cleanup(func() { SetDeps(prev) })

	if _, err := executeCommand(t, "config", "path"); err == nil {
		t.Error("expected error without dependencies")
	}
}
