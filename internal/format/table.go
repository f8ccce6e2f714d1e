package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cristianoliveira/yakari/internal/colors"
	"github.com/cristianoliveira/yakari/internal/source"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers. Empty disables coloring.
	HeaderColor string

	// Padding is the number of spaces between columns.
	Padding int
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		Padding:     2,
	}
}

// TableFormatter prints rows in columns sized to their widest cell.
type TableFormatter struct {
	config *TableConfig
}

// NewTableFormatter creates a new TableFormatter. A nil config uses
// DefaultTableConfig.
func NewTableFormatter(config *TableConfig) *TableFormatter {
	if config == nil {
		config = DefaultTableConfig()
	}
	return &TableFormatter{config: config}
}

// FormatMenus prints a NAME/ORIGIN table.
func (f *TableFormatter) FormatMenus(entries []source.Entry, writer io.Writer) error {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Name, e.Origin}
	}
	return f.write(writer, []string{"NAME", "ORIGIN"}, rows)
}

// FormatHistory prints the values numbered from the most recent.
func (f *TableFormatter) FormatHistory(name string, values []string, writer io.Writer) error {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{strconv.Itoa(i + 1), v}
	}
	return f.write(writer, []string{"#", strings.ToUpper(name)}, rows)
}

func (f *TableFormatter) write(w io.Writer, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if f.config.ShowHeaders {
		line := f.line(headers, widths)
		if f.config.HeaderColor != "" {
			line = f.config.HeaderColor + line + colors.Reset
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, f.line(row, widths)); err != nil {
			return err
		}
	}
	return nil
}

// line pads every cell but the last to its column width.
func (f *TableFormatter) line(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if i == len(cells)-1 {
			b.WriteString(cell)
			break
		}
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", widths[i]-len(cell)+f.config.Padding))
	}
	return b.String()
}
