/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cristianoliveira/yakari/cmd"
	"github.com/cristianoliveira/yakari/internal/colors"
	"github.com/cristianoliveira/yakari/internal/format"
	"github.com/cristianoliveira/yakari/internal/history"
	"github.com/spf13/cobra"
)

type historyClient interface {
	OpenHistory() (history.Store, error)
}

const (
	historyCommandLong = `Inspect or clear the values remembered for each argument.

USAGE:
    yakari history <subcommand>

SUBCOMMANDS:
    show     Print the values stored for an argument
    clear    Forget the values stored for an argument

Argument names start with dashes, so pass them after "--".

EXAMPLES:
    # List the arguments with history
    yakari history show

    # Show the values entered for --named
    yakari history show -- --named

    # The same, as JSON
    yakari history show --format json -- --named

    # Forget them without confirmation
    yakari history clear --force -- --named`
)

// NewHistoryCmd creates the history command with explicit dependencies.
func NewHistoryCmd(client historyClient) *cobra.Command {
	if client == nil {
		panic("NewHistoryCmd: client dependency cannot be nil")
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect or clear argument history",
		Long:  historyCommandLong,
	}
	historyCmd.AddCommand(newHistoryShowCmd(client))
	historyCmd.AddCommand(newHistoryClearCmd(client, os.Stdin))
	return historyCmd
}

func newHistoryShowCmd(client historyClient) *cobra.Command {
	var formatFlag string
	showCmd := &cobra.Command{
		Use:   "show [argument-name]",
		Short: "Print the values stored for an argument",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatterType, err := format.ParseType(formatFlag)
			if err != nil {
				return err
			}
			store, err := client.OpenHistory()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if len(args) == 0 {
				return showKeys(cmd.Context(), cmd.OutOrStdout(), store)
			}
			return showHistory(cmd.Context(), cmd.OutOrStdout(), format.NewFormatter(formatterType), store, args[0])
		},
	}
	showCmd.Flags().StringVar(&formatFlag, "format", string(format.FormatterTypeSimple),
		"Output format for values: "+strings.Join(format.Types(), ", "))
	return showCmd
}

func showKeys(ctx context.Context, w io.Writer, store history.Store) error {
	lister, ok := store.(history.KeyLister)
	if !ok {
		return fmt.Errorf("history backend cannot list arguments")
	}
	keys, err := lister.Keys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		_, err := fmt.Fprintln(w, "No history")
		return err
	}
	_, err = fmt.Fprintln(w, strings.Join(keys, "\n"))
	return err
}

func showHistory(ctx context.Context, w io.Writer, f format.Formatter, store history.Store, name string) error {
	values, err := store.Get(ctx, name)
	if err != nil {
		return err
	}
	return f.FormatHistory(name, values, w)
}

func newHistoryClearCmd(client historyClient, in io.Reader) *cobra.Command {
	var force bool
	clearCmd := &cobra.Command{
		Use:   "clear <argument-name>",
		Short: "Forget the values stored for an argument",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !force && !confirm(in, cmd.OutOrStdout(), fmt.Sprintf("Clear the history of %s?", name)) {
				colors.Info("Operation cancelled")
				return nil
			}
			store, err := client.OpenHistory()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.Set(cmd.Context(), name, nil); err != nil {
				return err
			}
			colors.Success("history of", name, "cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&force, "force", "f", false, "Clear without confirmation")
	return clearCmd
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s (y/N): ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

var historyCmd = NewHistoryCmd(defaultApp)

func init() {
	cmd.RootCmd.AddCommand(historyCmd)
}
