package format

import (
	"bytes"
	"testing"

	"github.com/cristianoliveira/yakari/internal/colors"
	"github.com/cristianoliveira/yakari/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entries = []source.Entry{
	{Name: "demo", Origin: source.OriginEmbedded},
	{Name: "kubernetes", Origin: source.OriginLocal},
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		formatterType FormatterType
		want          Formatter
	}{
		{FormatterTypeSimple, &SimpleFormatter{}},
		{FormatterTypeTable, &TableFormatter{}},
		{FormatterTypeJSON, &JSONFormatter{}},
		{"unknown", &SimpleFormatter{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.formatterType), func(t *testing.T) {
			assert.IsType(t, tt.want, NewFormatter(tt.formatterType))
		})
	}
}

func TestParseType(t *testing.T) {
	got, err := ParseType(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatterTypeJSON, got)

	_, err = ParseType("yaml")
	assert.ErrorContains(t, err, "simple, table, json")
}

func TestSimpleFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewSimpleFormatter()

	require.NoError(t, f.FormatMenus(entries, &buf))
	assert.Equal(t, "demo\nkubernetes\n", buf.String())

	buf.Reset()
	require.NoError(t, f.FormatHistory("--named", []string{"b", "a"}, &buf))
	assert.Equal(t, "b\na\n", buf.String())
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&TableConfig{ShowHeaders: true, Padding: 2})

	require.NoError(t, f.FormatMenus(entries, &buf))
	assert.Equal(t, "NAME        ORIGIN\ndemo        embedded\nkubernetes  local\n", buf.String())

	buf.Reset()
	require.NoError(t, f.FormatHistory("--named", []string{"recent", "older"}, &buf))
	assert.Equal(t, "#  --NAMED\n1  recent\n2  older\n", buf.String())
}

func TestTableFormatterHeaders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(nil).FormatMenus(entries[:1], &buf))
	assert.Contains(t, buf.String(), colors.Blue+"NAME  ORIGIN"+colors.Reset)

	buf.Reset()
	require.NoError(t, NewTableFormatter(&TableConfig{Padding: 1}).FormatMenus(entries[:1], &buf))
	assert.Equal(t, "demo embedded\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter()

	require.NoError(t, f.FormatMenus(entries[:1], &buf))
	assert.JSONEq(t, `[{"name":"demo","origin":"embedded"}]`, buf.String())

	buf.Reset()
	require.NoError(t, f.FormatHistory("--named", nil, &buf))
	assert.JSONEq(t, `{"argument":"--named","values":[]}`, buf.String())
}
