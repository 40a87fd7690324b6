package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// fakeRunner records follow-up commands instead of running them.
type fakeRunner struct {
	mu    sync.Mutex
	calls [][]string
	dirs  []string
}

func (f *fakeRunner) Run(_ context.Context, dir string, argv []string, _, _ io.Writer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, argv)
	f.dirs = append(f.dirs, dir)
	return nil
}

// setupDeps installs headless test dependencies backed by a temporary
// defaults file.
func setupDeps(t *testing.T) (*Dependencies, *fakeRunner) {
	t.Helper()
	for _, key := range []string{"EXPRESSJET_PACKAGE_MANAGER", "EXPRESSJET_MODULE_SYSTEM", "EXPRESSJET_INCLUDE_AUTH"} {
		t.Setenv(key, "")
	}

	runner := &fakeRunner{}
	d := NewDependencies(filepath.Join(t.TempDir(), "config.yaml"), runner, nil)
	d.Headless.ForceHeadless(true)

	prev := GetDeps()
	SetDeps(d)
	t.Cleanup(func() { SetDeps(prev) })
	return d, runner
}

// resetFlags restores every flag of the command tree to its default so
// tests sharing the global commands do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args and returns its combined
// output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
