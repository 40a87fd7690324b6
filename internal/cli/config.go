package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/expressjet/expressjet/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change the user defaults",
	Long: `Read and change the defaults used when a choice is given neither as a flag
nor in the wizard. Keys: package_manager, module_system, include_auth.
EXPRESSJET_<KEY> environment variables override the file.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadStore(); err != nil {
			return err
		}
		if !slices.Contains(config.Keys(), args[0]) {
			return fmt.Errorf("%w: %q", config.ErrUnknownKey, args[0])
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), deps.Store.Get(args[0]))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a default",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadStore(); err != nil {
			return err
		}
		if err := deps.Store.Set(args[0], args[1]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", symSuccess(), args[0], deps.Store.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every default",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadStore(); err != nil {
			return err
		}
		for _, key := range config.Keys() {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, deps.Store.Get(key))
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the defaults file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if deps == nil {
			return fmt.Errorf("dependencies not initialized")
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), deps.Store.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd, configPathCmd)
}

func loadStore() error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}
	return deps.Store.Load()
}
