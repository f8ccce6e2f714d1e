/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/cristianoliveira/yakari/internal/config"
	"github.com/cristianoliveira/yakari/internal/version"
	"github.com/spf13/cobra"
)

const rootLong = `Yakari turns command line tools into interactive menus.

Each menu is a definition file: arguments are toggled or filled in with
their shortcut keys, sub-menus nest more arguments, and commands build the
final command line from the selected arguments.

USAGE:
    yakari [run] <menu|path> [--dry-run] [--inplace]

Menus are looked up as a file path, then in the menus directory
(menus_dir), then among the menus bundled with yakari.`

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:           "yakari [menu]",
	Short:         "Interactive menus for command line tools",
	Long:          rootLong,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command. It only needs to happen once, from main.main().
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
	RootCmd.SetVersionTemplate("yakari {{.Version}}\n")
}
