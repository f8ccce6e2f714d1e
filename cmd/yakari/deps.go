package main

import (
	"context"
	"os"

	assets "github.com/cristianoliveira/yakari"
	"github.com/cristianoliveira/yakari/internal/config"
	"github.com/cristianoliveira/yakari/internal/engine"
	"github.com/cristianoliveira/yakari/internal/history"
	"github.com/cristianoliveira/yakari/internal/logging"
	"github.com/cristianoliveira/yakari/internal/menu"
	"github.com/cristianoliveira/yakari/internal/runner"
	"github.com/cristianoliveira/yakari/internal/search"
	"github.com/cristianoliveira/yakari/internal/source"
	"github.com/cristianoliveira/yakari/internal/tui"
	"github.com/cristianoliveira/yakari/internal/version"
)

// app wires the commands to the configured menus, history store, terminal
// UI and process runner. Configuration is read on use, after config.Load.
type app struct{}

var defaultApp = app{}

func (app) loader() *source.Loader {
	return &source.Loader{
		Dir:      config.Get("menus_dir", ""),
		Embedded: assets.Menus(),
		Logger:   logging.GetGlobal(),
	}
}

func (a app) LoadMenu(ctx context.Context, name string) (*menu.Menu, error) {
	return menu.Load(ctx, a.loader(), name, menuOptions())
}

func menuOptions() menu.Options {
	return menu.Options{
		Defaults: menu.Configuration{
			SortArguments: menu.Bool(config.GetBool("sort_arguments", false)),
			SortMenus:     menu.Bool(config.GetBool("sort_menus", false)),
			SortCommands:  menu.Bool(config.GetBool("sort_commands", false)),
		},
		SuggestionsTimeout: config.GetSeconds("suggestions_timeout", 0),
	}
}

func (a app) Menus() ([]source.Entry, error) {
	return a.loader().List()
}

func (app) OpenHistory() (history.Store, error) {
	return history.NewForBackend(config.Get("history_backend", history.BackendSQLite), config.Get("history_file", ""))
}

func (app) HistoryMaxSize() int {
	return config.GetInt("history_max_size", history.DefaultMaxSize)
}

func (app) Interact(ctx context.Context, e *engine.Engine, dryRun bool) ([]string, error) {
	logger := logging.GetGlobal()
	filter, err := search.New(config.Get("suggestions_filter", search.NameSubstring))
	if err != nil {
		logger.Warn("suggestions are not filtered", "error", err)
	}
	return tui.Run(ctx, e, tui.Options{Filter: filter, DryRun: dryRun, Logger: logger})
}

func (app) Exec(ctx context.Context, tokens []string) (int, error) {
	return runner.Exec(ctx, tokens, os.Stdin, os.Stdout, os.Stderr)
}

func (app) Version() string {
	return version.Full()
}
