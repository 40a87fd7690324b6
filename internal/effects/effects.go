// Package effects performs the follow-up actions a scaffold bundle asks for
// once its files are on disk: installing dependencies, previewing the README
// and pointing the user at the new project.
//
// Effects run after the write has succeeded, so their failures are reported
// as warnings and never undo or fail the scaffold.
package effects

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/expressjet/expressjet/internal/template"
)

// ReadmeStyleAuto selects a glamour style from the terminal background.
const ReadmeStyleAuto = "auto"

const defaultReadmeWidth = 80

// CommandRunner executes argv with dir as the working directory.
type CommandRunner interface {
	Run(ctx context.Context, dir string, argv []string, stdout, stderr io.Writer) error
}

// ExecRunner runs commands as child processes.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, dir string, argv []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Options configures Perform.
type Options struct {
	Root         string           // Project root shown to the user and used as the command directory.
	FS           billy.Filesystem // Filesystem the bundle was written to.
	Out          io.Writer        // Destination for command output and previews.
	DryRun       bool             // Nothing was written to disk; commands are skipped.
	SkipInstall  bool             // Skip run-command effects.
	ShowReadme   bool             // Render open-file effects for Markdown files.
	ReadmeStyle  string           // glamour style name, ReadmeStyleAuto, or empty for plain text.
	ReadmeWidth  int              // Word-wrap width for the README preview.
	InstallRetry RetryPolicy      // Re-runs of a failed run-command effect.
	Runner       CommandRunner    // Defaults to ExecRunner.
	Logger       *slog.Logger
}

// Report summarizes what Perform did.
type Report struct {
	Ran      []template.Effect
	Skipped  []template.Effect
	Warnings []string
}

// Perform executes effects in order. It returns an error only when ctx is
// cancelled; every other failure is recorded as a warning.
func Perform(ctx context.Context, effects []template.Effect, opts Options) (*Report, error) {
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	report := &Report{}
	for _, eff := range effects {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		ran, err := perform(ctx, eff, opts)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %s", eff.Title, err))
			opts.Logger.Warn("effect failed", "kind", eff.Kind, "error", err)
		case ran:
			report.Ran = append(report.Ran, eff)
			opts.Logger.Debug("effect performed", "kind", eff.Kind, "title", eff.Title)
		default:
			report.Skipped = append(report.Skipped, eff)
		}
	}
	return report, nil
}

func perform(ctx context.Context, eff template.Effect, opts Options) (bool, error) {
	switch eff.Kind {
	case template.EffectRunCommand:
		if opts.DryRun || opts.SkipInstall {
			return false, nil
		}
		if len(eff.Command) == 0 {
			return false, fmt.Errorf("empty command")
		}
		err := retry(ctx, opts.InstallRetry, func(attempt int) error {
			if attempt > 0 {
				opts.Logger.Info("retrying command", "command", eff.Command, "attempt", attempt+1)
			}
			return opts.Runner.Run(ctx, opts.Root, eff.Command, opts.Out, opts.Out)
		})
		if err != nil {
			return false, fmt.Errorf("%s: %w", strings.Join(eff.Command, " "), err)
		}
		return true, nil

	case template.EffectOpenFile:
		if !opts.ShowReadme || opts.FS == nil {
			return false, nil
		}
		return true, previewFile(eff.Path, opts)

	case template.EffectRevealDirectory:
		if opts.DryRun {
			return false, nil
		}
		_, err := fmt.Fprintf(opts.Out, "Project created at %s\n", opts.Root)
		return err == nil, err

	default:
		return false, fmt.Errorf("unknown effect kind %q", eff.Kind)
	}
}

// previewFile prints a file from the bundle, rendering Markdown with glamour.
func previewFile(path string, opts Options) error {
	data, err := util.ReadFile(opts.FS, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if !strings.HasSuffix(path, ".md") {
		_, err := opts.Out.Write(data)
		return err
	}

	out, err := RenderMarkdown(string(data), opts.ReadmeStyle, opts.ReadmeWidth)
	if err != nil {
		return err
	}
	_, err = io.WriteString(opts.Out, out)
	return err
}

// RenderMarkdown renders md for a terminal. An empty style produces
// uncolored output suitable for pipes.
func RenderMarkdown(md, style string, width int) (string, error) {
	if width <= 0 {
		width = defaultReadmeWidth
	}

	styleOpt := glamour.WithStandardStyle(styles.NoTTYStyle)
	switch style {
	case "":
	case ReadmeStyleAuto:
		styleOpt = glamour.WithAutoStyle()
	default:
		styleOpt = glamour.WithStandardStyle(style)
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
