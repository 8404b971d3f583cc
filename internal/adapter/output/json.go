package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/cheztheme/internal/panel"
	"github.com/jmylchreest/cheztheme/internal/theme"
)

// jsonEntry is a descriptor plus whether it is the active theme.
type jsonEntry struct {
	theme.Descriptor
	Current bool `json:"current"`
}

// JSONFormatter formats entries as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes entries as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, entries []panel.Entry) error {
	out := make([]jsonEntry, len(entries))
	for i, e := range entries {
		out[i] = jsonEntry{Descriptor: e.Descriptor, Current: e.Current}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
