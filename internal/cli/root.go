package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/expressjet/expressjet/internal/config"
	"github.com/expressjet/expressjet/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "expressjet",
	Short: "Scaffold an Express + MongoDB backend",
	Long: `expressjet generates a ready-to-run Express + Mongoose API: an application
module, a database connection, a User model, example routes and, optionally,
JWT authentication. Every source file follows one module system
(CommonJS or ES modules).`,
	Version:           version.GetVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: applyGlobalFlags,
}

// Execute initializes dependencies and runs the root command. An interrupt
// cancels the command context.
func Execute() error {
	InitDependencies()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("expressjet %s\n", version.GetFullVersion()))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Write debug logs to stderr")
	rootCmd.PersistentFlags().String("config", "", "User defaults file (default: ~/.expressjet/config.yaml)")
}

// applyGlobalFlags rewires the logger and the defaults store when the
// persistent flags ask for it.
func applyGlobalFlags(cmd *cobra.Command, _ []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}

	if getBoolFlag(cmd, "verbose") {
		deps.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if path := getStringFlag(cmd, "config"); path != "" {
		deps.Store = config.NewStore(path)
	}
	return nil
}
