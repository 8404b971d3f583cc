package theme

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/cheztheme/internal/palette"
)

// ErrThemeNotFound is returned when no preset or custom scheme has the requested name.
var ErrThemeNotFound = errors.New("theme not found")

// Kind tells where a scheme came from.
type Kind string

const (
	KindPreset Kind = "preset"
	KindCustom Kind = "custom"
)

// Theme is a base16 scheme file.
type Theme struct {
	System  string          `yaml:"system,omitempty"`
	Name    string          `yaml:"name,omitempty"`    // Display name from the file, e.g. "Gruvbox dark, medium"
	Author  string          `yaml:"author,omitempty"`
	Variant string          `yaml:"variant,omitempty"` // "dark" or "light"
	Palette palette.Palette `yaml:"palette"`
}

// Entry names a scheme without loading it.
type Entry struct {
	Name string
	Kind Kind
}

// ID returns the stable identifier "<name>-<kind>".
func (e Entry) ID() string {
	return e.Name + "-" + string(e.Kind)
}

// Descriptor is a loaded scheme as shown in theme pickers.
type Descriptor struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Kind    Kind            `json:"type"`
	Palette palette.Palette `json:"palette"`
}

// IsPreset reports whether the descriptor is an embedded preset.
func (d Descriptor) IsPreset() bool {
	return d.Kind == KindPreset
}

// Parse decodes a scheme file. Every palette slot must be present;
// color validity is checked later, per slot, when the palette is displayed.
func Parse(data []byte) (*Theme, error) {
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}

	var missing []string
	for _, slot := range palette.Slots {
		if v, _ := t.Palette.Get(slot); v == "" {
			missing = append(missing, slot)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("theme palette is missing %s", strings.Join(missing, ", "))
	}

	return &t, nil
}
