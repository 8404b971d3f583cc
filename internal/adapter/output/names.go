package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/cheztheme/internal/panel"
)

// NamesFormatter outputs just the theme names, one per line.
// Useful for piping to other commands (e.g., fuzzel -d | xargs cheztheme apply).
type NamesFormatter struct{}

// NewNamesFormatter creates a new names formatter.
func NewNamesFormatter() *NamesFormatter {
	return &NamesFormatter{}
}

// Format writes theme names to the writer, one per line.
func (f *NamesFormatter) Format(w io.Writer, entries []panel.Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.Name); err != nil {
			return err
		}
	}
	return nil
}
