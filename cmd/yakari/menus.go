package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/yakari/cmd"
	"github.com/cristianoliveira/yakari/internal/format"
	"github.com/cristianoliveira/yakari/internal/source"
	"github.com/spf13/cobra"
)

type menusClient interface {
	Menus() ([]source.Entry, error)
}

// NewMenusCmd creates the menus command with explicit dependencies.
func NewMenusCmd(client menusClient) *cobra.Command {
	if client == nil {
		panic("NewMenusCmd: client dependency cannot be nil")
	}

	var formatFlag string
	menusCmd := &cobra.Command{
		Use:   "menus",
		Short: "List the available menus",
		Long: `List the menus found in the menus directory and the menus bundled
with yakari. A local menu hides a bundled one with the same name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatterType, err := format.ParseType(formatFlag)
			if err != nil {
				return err
			}
			entries, err := client.Menus()
			if err != nil {
				return err
			}
			return printMenus(cmd.OutOrStdout(), formatterType, entries)
		},
	}
	menusCmd.Flags().StringVar(&formatFlag, "format", string(format.FormatterTypeTable),
		"Output format: "+strings.Join(format.Types(), ", "))
	return menusCmd
}

func printMenus(w io.Writer, formatterType format.FormatterType, entries []source.Entry) error {
	if len(entries) == 0 && formatterType != format.FormatterTypeJSON {
		_, err := fmt.Fprintln(w, "No menus found")
		return err
	}
	return format.NewFormatter(formatterType).FormatMenus(entries, w)
}

var menusCmd = NewMenusCmd(defaultApp)

func init() {
	cmd.RootCmd.AddCommand(menusCmd)
}
