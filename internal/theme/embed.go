package theme

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

// EmbeddedPresets contains all bundled scheme files.
//
//go:embed presets/*.yaml
var EmbeddedPresets embed.FS

// GetEmbeddedPreset retrieves a bundled scheme by name.
// Returns the raw YAML and whether it was found.
func GetEmbeddedPreset(name string) ([]byte, bool) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, false
	}
	data, err := EmbeddedPresets.ReadFile("presets/" + name + ".yaml")
	if err != nil {
		return nil, false
	}
	return data, true
}

// ListEmbeddedPresets returns names of all embedded presets.
func ListEmbeddedPresets() []string {
	var names []string

	entries, err := fs.ReadDir(EmbeddedPresets, "presets")
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ext := filepath.Ext(name); ext == ".yaml" {
			names = append(names, strings.TrimSuffix(name, ext))
		}
	}

	return names
}

// IsEmbeddedPreset checks if a scheme name is bundled.
func IsEmbeddedPreset(name string) bool {
	_, found := GetEmbeddedPreset(name)
	return found
}
