// Package assets provides the menu definitions embedded in the yakari binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed menus/*.toml
var files embed.FS

// Menus returns the embedded menu definitions, rooted at the menus directory.
func Menus() fs.FS {
	sub, err := fs.Sub(files, "menus")
	if err != nil {
		panic(err)
	}
	return sub
}
