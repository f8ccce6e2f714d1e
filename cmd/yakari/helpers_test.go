package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/yakari/internal/colors"
	"github.com/cristianoliveira/yakari/internal/config"
)

// isolateConfig points configuration, state and menus at a temporary
// directory and reloads it.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("YAKARI_CONFIG_PATH", "")
	config.Load()
	t.Cleanup(config.Load)
	return dir
}

func captureColors(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	colors.SetOutput(&out, &errOut)
	t.Cleanup(func() { colors.SetOutput(nil, nil) })
	return &out, &errOut
}
