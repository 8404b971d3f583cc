package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cheztheme/internal/palette"
	"github.com/jmylchreest/cheztheme/internal/panel"
	"github.com/jmylchreest/cheztheme/internal/theme"
)

func testEntries() []panel.Entry {
	var p palette.Palette
	for i, slot := range palette.Slots {
		p.Set(slot, fmt.Sprintf("#%02x0000", i*16))
	}
	return []panel.Entry{
		{Descriptor: theme.Descriptor{ID: "gruvbox-dark-preset", Name: "gruvbox-dark", Kind: theme.KindPreset, Palette: p}, Current: true},
		{Descriptor: theme.Descriptor{ID: "mine-custom", Name: "mine", Kind: theme.KindCustom, Palette: p}},
	}
}

func TestPlainFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewPlainFormatter(DefaultFormatterOptions())
	require.NoError(t, formatter.Format(&buf, testEntries()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "* gruvbox-dark  preset", lines[0])
	assert.Equal(t, "  mine          custom", lines[1])
}

func TestPlainFormatter_NoKind(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewPlainFormatter(FormatterOptions{})
	require.NoError(t, formatter.Format(&buf, testEntries()))
	assert.NotContains(t, buf.String(), "preset")
}

func TestPlainFormatter_Color(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.Color = true
	formatter := NewPlainFormatter(opts)
	require.NoError(t, formatter.Format(&buf, testEntries()))

	out := buf.String()
	assert.Contains(t, out, "\x1b[", "swatches are ANSI colored")
	assert.Contains(t, out, "48;2;", "truecolor background")
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewJSONFormatter(DefaultFormatterOptions())
	require.NoError(t, formatter.Format(&buf, testEntries()))

	var result []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 2)
	assert.Equal(t, "gruvbox-dark-preset", result[0]["id"])
	assert.Equal(t, "preset", result[0]["type"])
	assert.Equal(t, true, result[0]["current"])
	assert.Equal(t, "custom", result[1]["type"])

	pal, ok := result[0]["palette"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#000000", pal["base00"])
	assert.Len(t, pal, 16)
}

func TestNamesFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewNamesFormatter().Format(&buf, testEntries()))
	assert.Equal(t, "gruvbox-dark\nmine\n", buf.String())
}

func TestDmenuFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewDmenuFormatter(DefaultFormatterOptions())
	require.NoError(t, formatter.Format(&buf, testEntries()))
	assert.Equal(t, "* gruvbox-dark (preset)\nmine (custom)\n", buf.String())
}

func TestDmenuFormatter_CustomTemplate(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.Template = "{{.Index}}{{current .Current}} {{upper .Name}} {{.Palette.Base0F}}"
	formatter := NewDmenuFormatter(opts)
	require.NoError(t, formatter.Format(&buf, testEntries()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "1* GRUVBOX-DARK #f00000", lines[0])
	assert.Equal(t, "2  MINE #f00000", lines[1])
}

func TestDmenuFormatter_BadTemplateFallsBack(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.Template = "{{.Missing"
	require.NoError(t, NewDmenuFormatter(opts).Format(&buf, testEntries()))
	assert.Contains(t, buf.String(), "gruvbox-dark (preset)")
}

func TestSwatch_InvalidColorBlank(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultFormatterOptions()
	opts.Color = true

	entries := testEntries()[:1]
	for _, slot := range palette.Slots {
		entries[0].Palette.Set(slot, "bad")
	}
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, entries))
	assert.NotContains(t, buf.String(), "48;2;")
}

func TestNewFormatter(t *testing.T) {
	opts := DefaultFormatterOptions()

	t.Run("json", func(t *testing.T) {
		_, ok := NewFormatter(FormatJSON, opts).(*JSONFormatter)
		assert.True(t, ok)
	})

	t.Run("names", func(t *testing.T) {
		_, ok := NewFormatter(FormatNames, opts).(*NamesFormatter)
		assert.True(t, ok)
	})

	t.Run("dmenu", func(t *testing.T) {
		_, ok := NewFormatter(FormatDmenu, opts).(*DmenuFormatter)
		assert.True(t, ok)
	})

	t.Run("default", func(t *testing.T) {
		_, ok := NewFormatter("unknown", opts).(*PlainFormatter)
		assert.True(t, ok) // defaults to plain
	})

	assert.Len(t, ValidFormats(), 4)
}
