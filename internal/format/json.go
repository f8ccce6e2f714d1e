package format

import (
	"encoding/json"
	"io"

	"github.com/cristianoliveira/yakari/internal/source"
)

// JSONFormatter prints indented JSON documents.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type menuJSON struct {
	Name   string `json:"name"`
	Origin string `json:"origin"`
}

type historyJSON struct {
	Argument string   `json:"argument"`
	Values   []string `json:"values"`
}

// FormatMenus prints a JSON array of menus.
func (f *JSONFormatter) FormatMenus(entries []source.Entry, writer io.Writer) error {
	out := make([]menuJSON, len(entries))
	for i, e := range entries {
		out[i] = menuJSON{Name: e.Name, Origin: e.Origin}
	}
	return encode(writer, out)
}

// FormatHistory prints the argument name with its values.
func (f *JSONFormatter) FormatHistory(name string, values []string, writer io.Writer) error {
	if values == nil {
		values = []string{}
	}
	return encode(writer, historyJSON{Argument: name, Values: values})
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
