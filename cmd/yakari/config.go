package main

import (
	"fmt"
	"path/filepath"

	"github.com/cristianoliveira/yakari/cmd"
	"github.com/cristianoliveira/yakari/internal/colors"
	"github.com/cristianoliveira/yakari/internal/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the yakari configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if p := config.Path(); p != "" {
				fmt.Fprintf(w, "# %s\n", p)
			}
			for _, k := range config.Keys() {
				if _, err := fmt.Fprintf(w, "%s = %q\n", k, config.Get(k, "")); err != nil {
					return err
				}
			}
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default values",
		Long: `Write the default configuration to {config_dir}/config.toml. An
existing file is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(config.Get("config_dir", ""), "config"+config.FileExtTOML)
			if err := config.WriteSample(path); err != nil {
				return err
			}
			colors.Success("configuration written to", path)
			return nil
		},
	})
	return configCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewConfigCmd())
}
