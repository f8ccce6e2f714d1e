/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/yakari/cmd"
	"github.com/cristianoliveira/yakari/internal/colors"
	"github.com/cristianoliveira/yakari/internal/config"
	"github.com/cristianoliveira/yakari/internal/engine"
	"github.com/cristianoliveira/yakari/internal/history"
	"github.com/cristianoliveira/yakari/internal/logging"
	"github.com/cristianoliveira/yakari/internal/menu"
	"github.com/spf13/cobra"
)

type runClient interface {
	LoadMenu(ctx context.Context, name string) (*menu.Menu, error)
	OpenHistory() (history.Store, error)
	HistoryMaxSize() int
	// Interact runs the session. In-place commands run (or, under dryRun,
	// are only shown) inside it and return no tokens.
	Interact(ctx context.Context, e *engine.Engine, dryRun bool) ([]string, error)
	Exec(ctx context.Context, tokens []string) (int, error)
}

const runCommandLong = `Open a menu and build a command interactively.

USAGE:
    yakari run <menu|path> [OPTIONS]

OPTIONS:
    --dry-run    Print the resolved command instead of running it; in-place
                 commands are shown in the results view and not run
    --inplace    Run commands inside yakari and show their output
    -h, --help   Show this help

EXAMPLES:
    # Open the bundled demo menu
    yakari run demo

    # Open a definition file and only print the command
    yakari run ./menus/git.toml --dry-run`

// exitCodeError carries the exit code of the executed command.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.code)
}

type runOptions struct {
	Menu    string
	DryRun  bool
	Inplace bool
}

// NewRunCmd creates the run command with explicit dependencies.
func NewRunCmd(client runClient) *cobra.Command {
	if client == nil {
		panic("NewRunCmd: client dependency cannot be nil")
	}

	var opts runOptions
	runCmd := &cobra.Command{
		Use:   "run <menu|path>",
		Short: "Open a menu and build a command",
		Long:  runCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Menu = args[0]
			if !cmd.Flags().Changed("dry-run") {
				opts.DryRun = config.GetBool("dry_run", false)
			}
			if !cmd.Flags().Changed("inplace") {
				opts.Inplace = config.GetBool("inplace", false)
			}
			return runMenu(cmd.Context(), client, opts, cmd.OutOrStdout())
		},
	}
	runCmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the resolved command instead of running it")
	runCmd.Flags().BoolVar(&opts.Inplace, "inplace", false, "Run commands inside yakari and show their output")
	return runCmd
}

func runMenu(ctx context.Context, client runClient, opts runOptions, out io.Writer) error {
	if err := logging.InitGlobal(menuLabel(opts.Menu)); err != nil {
		colors.Warning("logging disabled:", err.Error())
	}
	defer func() { _ = logging.ShutdownGlobal() }()
	logger := logging.GetGlobal()

	root, err := client.LoadMenu(ctx, opts.Menu)
	if err != nil {
		return err
	}

	var store history.Store
	if s, err := client.OpenHistory(); err != nil {
		colors.Warning("history disabled:", err.Error())
	} else {
		store = s
		defer func() { _ = s.Close() }()
	}

	e := engine.New(root, engine.Options{
		Inplace:        opts.Inplace,
		History:        store,
		HistoryMaxSize: client.HistoryMaxSize(),
		Logger:         logger,
	})
	tokens, err := client.Interact(ctx, e, opts.DryRun)
	if err != nil {
		return err
	}
	if tokens == nil {
		logger.Info("session ended without a command", "menu", opts.Menu)
		return nil
	}

	if opts.DryRun {
		_, err := fmt.Fprintln(out, shellJoin(tokens))
		return err
	}
	logger.Info("executing command", "tokens", tokens)
	code, err := client.Exec(ctx, tokens)
	if err != nil {
		return fmt.Errorf("run %s: %w", tokens[0], err)
	}
	if code != 0 {
		return &exitCodeError{code: code}
	}
	return nil
}

// menuLabel names the log file after the menu, also when a path was given.
func menuLabel(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// shellJoin renders tokens as a command line a POSIX shell reads back
// into the same tokens.
func shellJoin(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = shellQuote(t)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_=+.,/:@%", r)
}

var runCmd = NewRunCmd(defaultApp)

func init() {
	cmd.RootCmd.AddCommand(runCmd)

	// the bare `yakari <menu>` form shares run's flags and action
	cmd.RootCmd.Args = cobra.MaximumNArgs(1)
	cmd.RootCmd.Flags().AddFlagSet(runCmd.Flags())
	cmd.RootCmd.RunE = func(c *cobra.Command, args []string) error {
		if len(args) == 0 {
			return c.Help()
		}
		return runCmd.RunE(c, args)
	}
}
