package output

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jmylchreest/cheztheme/internal/palette"
	"github.com/jmylchreest/cheztheme/internal/panel"
)

// PlainFormatter formats entries as aligned plain text, optionally with
// truecolor swatches of each palette.
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{opts: opts}
}

// Format writes one line per entry.
func (f *PlainFormatter) Format(w io.Writer, entries []panel.Entry) error {
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}

	var renderer *lipgloss.Renderer
	if f.opts.Color {
		renderer = lipgloss.NewRenderer(w)
		renderer.SetColorProfile(termenv.TrueColor)
	}

	var sb strings.Builder
	for _, e := range entries {
		if e.Current {
			sb.WriteString("* ")
		} else {
			sb.WriteString("  ")
		}

		sb.WriteString(e.Name)
		sb.WriteString(strings.Repeat(" ", width-len(e.Name)))

		if f.opts.ShowKind {
			sb.WriteString("  ")
			sb.WriteString(string(e.Kind))
		}

		if renderer != nil {
			sb.WriteString("  ")
			sb.WriteString(Swatch(renderer, e.Palette))
		}

		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Swatch renders one colored cell per palette slot. Invalid colors render blank.
func Swatch(r *lipgloss.Renderer, p palette.Palette) string {
	var sb strings.Builder
	for _, hex := range p.Colors() {
		if _, _, _, ok := palette.ParseHex(hex); !ok {
			sb.WriteString("  ")
			continue
		}
		if !strings.HasPrefix(hex, "#") {
			hex = "#" + hex
		}
		sb.WriteString(r.NewStyle().Background(lipgloss.Color(hex)).Render("  "))
	}
	return sb.String()
}
