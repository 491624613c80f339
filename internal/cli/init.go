package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdxmph/goals-tui/internal/db"
	"github.com/pdxmph/goals-tui/internal/goals"
)

func newInitCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the goals database",
		Long: `Create an empty goals database at the configured storage path.

Use --path to create it somewhere else.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.Backend != "sqlite" {
				return fmt.Errorf("the %s backend has nothing to initialize", cfg.Storage.Backend)
			}

			path, _ := cmd.Flags().GetString("path")
			if path == "" {
				path = cfg.Storage.Path
			}

			if err := db.Initialize(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created database at %s\n", path)
			return nil
		},
	}
	cmd.Flags().String("path", "", "Database file to create (default from config)")
	return cmd
}

func newFixturesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures <path>",
		Short: "Create a database filled with sample goals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			format, err := goals.ParseFormat(cfg.Storage.Format)
			if err != nil {
				return err
			}
			if err := db.CreateFixturesDatabase(args[0], cfg.Storage.Key, format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created fixtures database at %s\n", args[0])
			return nil
		},
	}
}
