package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/cheztheme/internal/palette"
)

// Sink is a style sink that derives lipgloss styles from the active palette.
// Slots without a resolved value fall back to the terminal's ANSI colors.
type Sink struct {
	*palette.MemorySink
}

var _ palette.StyleSink = (*Sink)(nil)

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{MemorySink: palette.NewMemorySink()}
}

// Color returns the resolved color for slot, or fallback.
func (s *Sink) Color(slot string, fallback lipgloss.TerminalColor) lipgloss.TerminalColor {
	v, ok := s.Property(palette.PropertyName(slot))
	if !ok {
		return fallback
	}
	var r, g, b int
	if _, err := fmt.Sscanf(v, "%d %d %d", &r, &g, &b); err != nil {
		return fallback
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// Styles are the TUI styles for the current palette.
type Styles struct {
	Title    lipgloss.Style
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Key      lipgloss.Style
	Current  lipgloss.Style
	Preset   lipgloss.Style
	Custom   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
}

// Styles builds styles from the base16 slots: base05 text, base03 muted,
// base0D accent, base0B current, base0E presets, base0A custom, base08 errors.
func (s *Sink) Styles() Styles {
	fg := s.Color("base05", lipgloss.Color("7"))
	muted := s.Color("base03", lipgloss.Color("8"))
	accent := s.Color("base0D", lipgloss.Color("12"))

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1),
		Normal:   lipgloss.NewStyle().Foreground(fg).Padding(0, 0, 0, 2),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(accent).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(accent).Padding(0, 0, 0, 1),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Key:      lipgloss.NewStyle().Foreground(s.Color("base0B", lipgloss.Color("10"))),
		Current:  lipgloss.NewStyle().Bold(true).Foreground(s.Color("base0B", lipgloss.Color("10"))),
		Preset:   lipgloss.NewStyle().Foreground(s.Color("base0E", lipgloss.Color("13"))),
		Custom:   lipgloss.NewStyle().Foreground(s.Color("base0A", lipgloss.Color("11"))),
		Status:   lipgloss.NewStyle().Foreground(fg),
		Error:    lipgloss.NewStyle().Foreground(s.Color("base08", lipgloss.Color("9"))),
	}
}

// Swatch renders one colored cell per palette slot. Invalid colors render blank.
func Swatch(p palette.Palette) string {
	out := ""
	for _, hex := range p.Colors() {
		r, g, b, ok := palette.ParseHex(hex)
		if !ok {
			out += "  "
			continue
		}
		out += lipgloss.NewStyle().Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))).Render("  ")
	}
	return out
}
