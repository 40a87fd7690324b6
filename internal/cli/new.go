package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/expressjet/expressjet/internal/cli/wizard"
	"github.com/expressjet/expressjet/internal/config"
	"github.com/expressjet/expressjet/internal/core/project"
	"github.com/expressjet/expressjet/internal/defs"
	"github.com/expressjet/expressjet/internal/effects"
	"github.com/expressjet/expressjet/internal/ui"
	"github.com/expressjet/expressjet/pkg/models"
)

var newCmd = &cobra.Command{
	Use:     "new [directory]",
	Aliases: []string{"create"},
	Short:   "Scaffold a new Express + MongoDB API",
	Long: `Scaffold a new Express + MongoDB API.

Usage patterns:
  expressjet new <directory>   Create the directory and scaffold inside it
  expressjet new .             Scaffold in the current directory
  expressjet new               Scaffold in the current directory

Choices come from flags first, then the interactive wizard (when stdin is a
terminal), then the user defaults file, then built-in defaults.

Examples:
  expressjet new shop-api
  expressjet new shop-api --module-system esm --auth --non-interactive
  expressjet new . --dry-run`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateNewFlags,
	RunE:    runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().String("name", "", "Project name (default: directory name)")
	newCmd.Flags().String("package-manager", "", "Package manager: npm or yarn (default: npm)")
	newCmd.Flags().String("module-system", "", "Module system: commonjs or esm (default: commonjs)")
	newCmd.Flags().Bool("auth", false, "Include JWT authentication")
	newCmd.Flags().Bool("non-interactive", false, "Skip the wizard; use flags and defaults")
	newCmd.Flags().Bool("dry-run", false, "Compose and check the project without writing it")
	newCmd.Flags().Bool("force", false, "Overwrite files that already exist")
	newCmd.Flags().Bool("no-install", false, "Do not install dependencies afterwards")
	newCmd.Flags().Int("install-retries", 1, "Re-run a failed install this many times")
	newCmd.Flags().Bool("show-readme", false, "Preview the generated README in the terminal")
	newCmd.Flags().String("readme-style", "", "glamour style for --show-readme (default: plain; \"auto\" detects the terminal)")
}

// validateNewFlags validates flag values before execution.
func validateNewFlags(cmd *cobra.Command, _ []string) error {
	for _, key := range []struct{ flag, key string }{
		{"package-manager", config.KeyPackageManager},
		{"module-system", config.KeyModuleSystem},
	} {
		value := getStringFlag(cmd, key.flag)
		if value == "" {
			continue
		}
		if _, err := config.ValidateKey(key.key, value); err != nil {
			return fmt.Errorf("invalid --%s value %q: %w", key.flag, value, err)
		}
	}
	if n := getIntFlag(cmd, "install-retries"); n < 0 {
		return fmt.Errorf("invalid --install-retries value %d: must not be negative", n)
	}
	return nil
}

// flagInput collects the choices given on the command line.
func flagInput(cmd *cobra.Command) config.Input {
	in := config.Input{
		ProjectName:    getStringFlag(cmd, "name"),
		PackageManager: getStringFlag(cmd, "package-manager"),
		ModuleSystem:   getStringFlag(cmd, "module-system"),
	}
	if cmd.Flags().Changed("auth") {
		in.IncludeAuth = config.Bool(getBoolFlag(cmd, "auth"))
	}
	return in
}

// targetDir resolves the optional positional directory against the working
// directory. The directory is created unless create is false.
func targetDir(args []string, create bool) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	if len(args) == 0 || args[0] == "." {
		return cwd, nil
	}

	dir := args[0]
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cwd, dir)
	}
	if create {
		if err := os.MkdirAll(dir, defs.DirPerm); err != nil {
			return "", fmt.Errorf("create project directory: %w", err)
		}
	}
	return dir, nil
}

// fallbackInput is the lowest-priority layer: the directory name as
// project name.
func fallbackInput(dir string) config.Input {
	name := filepath.Base(dir)
	if name == "." || name == string(filepath.Separator) {
		name = ""
	}
	return config.Input{ProjectName: name}
}

func runNew(cmd *cobra.Command, args []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}
	out := cmd.OutOrStdout()
	dryRun := getBoolFlag(cmd, "dry-run")

	if err := deps.Store.Load(); err != nil {
		return err
	}

	root, err := targetDir(args, false)
	if err != nil {
		return err
	}

	flags := flagInput(cmd)
	var answers config.Input
	if !getBoolFlag(cmd, "non-interactive") && !deps.Headless.IsHeadless() {
		result, err := wizard.Run(wizard.DefaultQuestions(root, deps.Store.Input()), wizardInitial(flags))
		if err != nil {
			if errors.Is(err, wizard.ErrCancelled) {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Scaffold cancelled.")
				return nil
			}
			return fmt.Errorf("wizard failed: %w", err)
		}
		answers = result.Input()
	}

	cfg, err := config.Resolve(flags, answers, deps.Store.Input(), fallbackInput(root))
	if err != nil {
		return err
	}
	if !dryRun {
		if _, err := targetDir(args, true); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reporter := newWriteReporter(deps.Headless, out)
	progress := reporter.report
	if dryRun {
		progress = nil
	}
	result, err := deps.Initializer.Init(ctx, project.InitOptions{
		ProjectRoot: root,
		Config:      cfg,
		DryRun:      dryRun,
		Force:       getBoolFlag(cmd, "force"),
		SkipInstall: getBoolFlag(cmd, "no-install"),
		ShowReadme:  getBoolFlag(cmd, "show-readme"),
		ReadmeStyle: getStringFlag(cmd, "readme-style"),
		InstallRetry: effects.RetryPolicy{
			MaxRetries: getIntFlag(cmd, "install-retries"),
		},
		Out:      out,
		Progress: progress,
	})
	reporter.finish()
	if err != nil {
		printFailure(out, result, err)
		return fmt.Errorf("scaffold failed: %w", err)
	}

	if result.DryRun {
		printDryRun(out, result)
		return nil
	}
	printSuccess(out, cmd, args, result)
	return nil
}

// wizardInitial marks the flag-provided answers so the wizard skips them.
func wizardInitial(in config.Input) *wizard.WizardResult {
	r := &wizard.WizardResult{
		ProjectName:    in.ProjectName,
		PackageManager: in.PackageManager,
		ModuleSystem:   in.ModuleSystem,
	}
	if in.IncludeAuth != nil {
		r.IncludeAuth = fmt.Sprint(*in.IncludeAuth)
	}
	return r
}

// writeReporter adapts the deployer's progress callback to a progress bar.
// The bar starts on the first written file and completes with the last one,
// before any follow-up command takes over the terminal.
type writeReporter struct {
	progress ui.Progress
	bar      ui.ProgressBar
}

func newWriteReporter(hm *ui.HeadlessManager, out io.Writer) *writeReporter {
	theme := ui.NewTheme(ui.ThemeConfig{})
	return &writeReporter{progress: ui.NewProgress(theme, hm, out)}
}

func (r *writeReporter) report(path string, done, total int) {
	if r.bar == nil {
		r.bar = r.progress.Start(path, total)
	}
	r.bar.SetTitle(path)
	r.bar.Increment(1)
	if done == total {
		r.finish()
	}
}

func (r *writeReporter) finish() {
	if r.bar != nil {
		r.bar.Done()
	}
}

func configPairs(cfg models.Configuration) []kvPair {
	auth := "no"
	if cfg.IncludeAuth {
		auth = "JWT"
	}
	return []kvPair{
		{"Project", cfg.ProjectName},
		{"Package", cfg.Slug()},
		{"Package manager", string(cfg.PackageManager)},
		{"Module system", string(cfg.ModuleSystem)},
		{"Authentication", auth},
	}
}

func printDryRun(out io.Writer, result *project.InitResult) {
	_, _ = fmt.Fprintf(out, "Dry run: %d files would be written to %s\n", len(result.CreatedFiles), result.ProjectRoot)
	for _, p := range result.Bundle.Files.Paths() {
		_, _ = fmt.Fprintf(out, "  %s\n", p)
	}
	for _, w := range result.Warnings {
		_, _ = fmt.Fprintf(out, "%s %s\n", symWarning(), cliWarn.Render(w))
	}
}

func printSuccess(out io.Writer, cmd *cobra.Command, args []string, result *project.InitResult) {
	cfg := result.Bundle.Config
	pairs := append(configPairs(cfg),
		kvPair{"Location", result.ProjectRoot},
		kvPair{"Files", fmt.Sprintf("%d created", len(result.CreatedFiles))},
		kvPair{"Directories", fmt.Sprintf("%d created", len(result.CreatedDirs))},
	)
	details := []string{renderKeyValueLines(pairs)}
	for _, w := range result.Warnings {
		details = append(details, cliWarn.Render("Warning: "+w))
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderSuccessCard("Express API scaffolded", details...))
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, cliPrimary.Render("Next steps:"))
	if len(args) > 0 && args[0] != "." {
		_, _ = fmt.Fprintf(out, "  cd %s\n", args[0])
	}
	if getBoolFlag(cmd, "no-install") {
		_, _ = fmt.Fprintf(out, "  %s install\n", cfg.PackageManager)
	}
	_, _ = fmt.Fprintf(out, "  %s\n", cfg.PackageManager.RunScript("dev"))
}

func printFailure(out io.Writer, result *project.InitResult, err error) {
	if result == nil || len(result.CreatedFiles) == 0 {
		return
	}
	details := []string{
		renderKeyValueLines([]kvPair{
			{"Written", fmt.Sprintf("%d of %d files", len(result.CreatedFiles), len(result.Bundle.Files))},
			{"Location", result.ProjectRoot},
		}),
		cliMuted.Render("Files already written were left in place."),
		cliError.Render(err.Error()),
	}
	_, _ = fmt.Fprintln(out, renderErrorCard("Scaffold incomplete", details...))
}
