package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			write, _ := cmd.Flags().GetBool("write")
			if write {
				if opts.configPath != "" {
					err = cfg.SaveTo(opts.configPath)
				} else {
					err = cfg.Save()
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved")
				return nil
			}

			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	}
	cmd.Flags().Bool("write", false, "Write the effective configuration back to the config file")
	return cmd
}
