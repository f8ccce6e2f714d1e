package main

import (
	"fmt"

	"github.com/cristianoliveira/yakari/cmd"
	"github.com/spf13/cobra"
)

type versionClient interface {
	Version() string
}

// NewVersionCmd creates the version command with explicit dependencies.
func NewVersionCmd(client versionClient) *cobra.Command {
	if client == nil {
		panic("NewVersionCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the yakari version and the Go toolchain it was built with.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), client.Version())
			return err
		},
	}
}

var versionCmd = NewVersionCmd(defaultApp)

func init() {
	cmd.RootCmd.AddCommand(versionCmd)
}
