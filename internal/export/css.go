// Package export writes resolved palette properties to a CSS file that
// other programs (waybar, web pages) can import.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/jmylchreest/cheztheme/internal/palette"
)

// CSSFileSink collects --color-* properties and writes them as a :root block.
type CSSFileSink struct {
	path string
	*palette.MemorySink
}

var _ palette.StyleSink = (*CSSFileSink)(nil)

// NewCSSFileSink creates a sink that flushes to path.
func NewCSSFileSink(path string) *CSSFileSink {
	return &CSSFileSink{path: path, MemorySink: palette.NewMemorySink()}
}

// Path returns the output file.
func (s *CSSFileSink) Path() string {
	return s.path
}

// Render formats the current properties. Output is sorted by property name.
func (s *CSSFileSink) Render() []byte {
	props := s.Properties()

	var buf bytes.Buffer
	buf.WriteString(":root {\n")
	for _, name := range s.Names() {
		fmt.Fprintf(&buf, "  %s: %s;\n", name, props[name])
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}

// Flush writes the rendered CSS atomically, creating parent directories.
func (s *CSSFileSink) Flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(s.Render())); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}
