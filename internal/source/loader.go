package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cristianoliveira/yakari/internal/logging"
)

// ErrNotFound is returned when no definition exists for a menu name.
var ErrNotFound = errors.New("no definition found")

// Format identifies the syntax of a definition.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Origins of a loaded definition.
const (
	OriginPath     = "path"
	OriginLocal    = "local"
	OriginEmbedded = "embedded"
	OriginFetched  = "fetched"
)

var extensions = []struct {
	ext    string
	format Format
}{
	{".toml", FormatTOML},
	{".yaml", FormatYAML},
	{".yml", FormatYAML},
}

// Fetcher retrieves a definition that is not available locally.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, Format, error)
}

// Definition is a decoded menu definition and where it came from.
type Definition struct {
	Name     string
	Origin   string
	Location string
	Data     *Map
}

// Loader resolves menu names to definitions: an existing file path first,
// then {Dir}/<name>.{toml,yaml,yml}, then the embedded menus, then Fetcher.
type Loader struct {
	Dir      string
	Embedded fs.FS
	Fetcher  Fetcher
	Logger   logging.Logger
}

// Decode parses data according to format.
func Decode(data []byte, format Format) (*Map, error) {
	switch format {
	case FormatTOML:
		return DecodeTOML(data)
	case FormatYAML:
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// FormatOf returns the format implied by a file extension.
func FormatOf(name string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if e.ext == ext {
			return e.format, true
		}
	}
	return "", false
}

func (l *Loader) logger() logging.Logger {
	if l.Logger == nil {
		return logging.NewNoopLogger()
	}
	return l.Logger
}

// Load finds and decodes the definition for name.
func (l *Loader) Load(ctx context.Context, name string) (*Definition, error) {
	log := l.logger()

	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		format, ok := FormatOf(name)
		if !ok {
			return nil, fmt.Errorf("%s: unsupported file extension", name)
		}
		return l.readFile(name, menuName(name), OriginPath, format)
	}

	if l.Dir != "" {
		for _, e := range extensions {
			p := filepath.Join(l.Dir, name+e.ext)
			if _, err := os.Stat(p); err != nil {
				continue
			}
			return l.readFile(p, name, OriginLocal, e.format)
		}
	}

	if l.Embedded != nil {
		for _, e := range extensions {
			p := name + e.ext
			data, err := fs.ReadFile(l.Embedded, p)
			if err != nil {
				continue
			}
			log.Debug("menu definition found", "name", name, "origin", OriginEmbedded)
			return decoded(data, name, OriginEmbedded, p, e.format)
		}
	}

	if l.Fetcher != nil {
		data, format, err := l.Fetcher.Fetch(ctx, name)
		if err == nil {
			log.Debug("menu definition found", "name", name, "origin", OriginFetched)
			return decoded(data, name, OriginFetched, name, format)
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("fetch %s: %w", name, err)
		}
	}

	log.Warn("menu definition not found", "name", name, "dir", l.Dir)
	return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
}

func (l *Loader) readFile(p, name, origin string, format Format) (*Definition, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	l.logger().Debug("menu definition found", "name", name, "origin", origin, "path", p)
	return decoded(data, name, origin, p, format)
}

func decoded(data []byte, name, origin, location string, format Format) (*Definition, error) {
	m, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return &Definition{Name: name, Origin: origin, Location: location, Data: m}, nil
}

func menuName(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Entry is a menu available to List.
type Entry struct {
	Name   string
	Origin string
}

// List returns the menus found in Dir and in the embedded menus. A local
// menu shadows an embedded one with the same name.
func (l *Loader) List() ([]Entry, error) {
	seen := make(map[string]bool)
	var entries []Entry

	if l.Dir != "" {
		files, err := os.ReadDir(l.Dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("list %s: %w", l.Dir, err)
		}
		for _, f := range files {
			if _, ok := FormatOf(f.Name()); !ok || f.IsDir() {
				continue
			}
			name := menuName(f.Name())
			if !seen[name] {
				seen[name] = true
				entries = append(entries, Entry{Name: name, Origin: OriginLocal})
			}
		}
	}

	if l.Embedded != nil {
		files, err := fs.ReadDir(l.Embedded, ".")
		if err != nil {
			return nil, fmt.Errorf("list embedded menus: %w", err)
		}
		for _, f := range files {
			if _, ok := FormatOf(f.Name()); !ok || f.IsDir() {
				continue
			}
			name := strings.TrimSuffix(f.Name(), path.Ext(f.Name()))
			if !seen[name] {
				seen[name] = true
				entries = append(entries, Entry{Name: name, Origin: OriginEmbedded})
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
