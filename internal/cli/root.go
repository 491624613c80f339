// Package cli wires configuration, storage and the terminal UI behind cobra
// commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdxmph/goals-tui/internal/config"
)

// options holds the global flags
type options struct {
	configPath string
	ephemeral  bool
}

// NewRootCmd builds the command tree
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "goals-tui",
		Short: "Plan goals and their tasks on a calendar",
		Long: `goals-tui keeps a list of goals, each with a target date and one or more tasks.

Browse days on the calendar, tick tasks off, and add new goals. Everything is
saved locally after every change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(opts)
		},
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.config/goals-tui/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "Keep goals in memory only for this run")

	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newFixturesCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (o *options) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFrom(o.configPath)
	}
	return config.Load()
}
