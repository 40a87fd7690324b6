package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/expressjet/expressjet/internal/config"
	"github.com/expressjet/expressjet/internal/template"
	"github.com/expressjet/expressjet/pkg/models"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
)

var planCmd = &cobra.Command{
	Use:   "plan [directory]",
	Short: "Show the files and follow-up actions of a scaffold",
	Long: `Show what "expressjet new" would produce for the given choices without
touching the filesystem. The directory only supplies the default project name.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validatePlanFlags,
	RunE:    runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().String("name", "", "Project name (default: directory name)")
	planCmd.Flags().String("package-manager", "", "Package manager: npm or yarn")
	planCmd.Flags().String("module-system", "", "Module system: commonjs or esm")
	planCmd.Flags().Bool("auth", false, "Include JWT authentication")
	planCmd.Flags().StringP("format", "o", formatTable, "Output format: table or yaml")
}

func validatePlanFlags(cmd *cobra.Command, args []string) error {
	switch f := getStringFlag(cmd, "format"); f {
	case formatTable, formatYAML:
	default:
		return fmt.Errorf("invalid --format value %q: must be one of: table, yaml", f)
	}
	return validateNewFlags(cmd, args)
}

// planFile is one entry of the plan output.
type planFile struct {
	Path  string `yaml:"path"`
	Bytes int    `yaml:"bytes"`
}

// planOutput is the YAML document printed by "plan --format yaml".
type planOutput struct {
	Config  models.Configuration `yaml:"config"`
	Files   []planFile           `yaml:"files"`
	Effects []template.Effect    `yaml:"effects"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}
	if err := deps.Store.Load(); err != nil {
		return err
	}

	dir, err := targetDir(args, false)
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(flagInput(cmd), deps.Store.Input(), fallbackInput(dir))
	if err != nil {
		return err
	}

	bundle := template.Compose(cfg)
	plan := newPlanOutput(bundle)

	out := cmd.OutOrStdout()
	if getStringFlag(cmd, "format") == formatYAML {
		return writePlanYAML(out, plan)
	}
	writePlanTable(out, plan)
	return nil
}

func newPlanOutput(b *template.Bundle) planOutput {
	plan := planOutput{Config: b.Config, Effects: b.Effects}
	for _, p := range b.Files.Paths() {
		plan.Files = append(plan.Files, planFile{Path: p, Bytes: len(b.Files[p])})
	}
	return plan
}

func writePlanYAML(w io.Writer, plan planOutput) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return enc.Close()
}

func writePlanTable(w io.Writer, plan planOutput) {
	_, _ = fmt.Fprintln(w, renderKeyValueLines(configPairs(plan.Config)))
	_, _ = fmt.Fprintln(w)

	width := 0
	for _, f := range plan.Files {
		width = max(width, len(f.Path))
	}
	_, _ = fmt.Fprintln(w, cliPrimary.Render(fmt.Sprintf("Files (%d)", len(plan.Files))))
	for _, f := range plan.Files {
		_, _ = fmt.Fprintf(w, "  %-*s  %6d B\n", width, f.Path, f.Bytes)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, cliPrimary.Render("After writing"))
	for _, e := range plan.Effects {
		detail := e.Path
		if len(e.Command) > 0 {
			detail = strings.Join(e.Command, " ")
		}
		_, _ = fmt.Fprintf(w, "  %-16s %s %s\n", e.Kind, e.Title, cliMuted.Render("("+detail+")"))
	}
}
