// Package output provides output formatters for theme listings.
package output

import (
	"io"

	"github.com/jmylchreest/cheztheme/internal/panel"
)

// Formatter formats theme entries for output.
type Formatter interface {
	// Format writes formatted entries to the writer.
	Format(w io.Writer, entries []panel.Entry) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatNames FormatType = "names"
	FormatDmenu FormatType = "dmenu"
)

// ValidFormats returns all format names accepted by NewFormatter.
func ValidFormats() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatNames, FormatDmenu}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatNames:
		return NewNamesFormatter()
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template string // Custom template for dmenu format
	Color    bool   // Render truecolor palette swatches
	ShowKind bool   // Show preset/custom
}

// DefaultFormatterOptions returns sensible defaults for terminal output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowKind: true,
	}
}
