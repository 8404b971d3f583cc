package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/cheztheme/internal/palette"
)

// Keys of the [data.cheztheme] table inside chezmoi.toml.
const (
	chezmoiDataKey  = "data"
	chezmoiThemeKey = "cheztheme"
	themeNameKey    = "themeName"
)

var (
	// ErrChezmoiNotFound is returned when chezmoi.toml does not exist.
	ErrChezmoiNotFound = errors.New("chezmoi config file not found")
	// ErrNoThemeData is returned when [data.cheztheme] is missing or incomplete.
	ErrNoThemeData = errors.New("chezmoi config has no usable cheztheme data")
)

// ChezmoiDocument is a parsed chezmoi.toml. Keys outside [data.cheztheme]
// are carried through untouched on Save.
type ChezmoiDocument struct {
	path string
	tree map[string]any
}

// LoadChezmoi reads and parses chezmoi.toml at path.
func LoadChezmoi(path string) (*ChezmoiDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrChezmoiNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	tree := make(map[string]any)
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &ChezmoiDocument{path: path, tree: tree}, nil
}

// NewChezmoiDocument returns an empty document that will be saved to path.
func NewChezmoiDocument(path string) *ChezmoiDocument {
	return &ChezmoiDocument{path: path, tree: make(map[string]any)}
}

// Path returns the file the document was loaded from.
func (d *ChezmoiDocument) Path() string {
	return d.path
}

// ThemeConfig extracts the active theme name and palette.
func (d *ChezmoiDocument) ThemeConfig() (*palette.Config, error) {
	table, err := d.themeTable(false)
	if err != nil {
		return nil, err
	}

	name, ok := table[themeNameKey].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing string key %q", ErrNoThemeData, themeNameKey)
	}

	cfg := &palette.Config{ThemeName: name}
	for _, slot := range palette.Slots {
		value, ok := table[slot].(string)
		if !ok {
			return nil, fmt.Errorf("%w: missing string key %q", ErrNoThemeData, slot)
		}
		cfg.Theme.Set(slot, value)
	}
	return cfg, nil
}

// SetTheme records name and p as the active theme.
func (d *ChezmoiDocument) SetTheme(name string, p palette.Palette) error {
	table, err := d.themeTable(true)
	if err != nil {
		return err
	}

	table[themeNameKey] = name
	for i, value := range p.Colors() {
		table[palette.Slots[i]] = value
	}
	return nil
}

// Bytes encodes the document as TOML.
func (d *ChezmoiDocument) Bytes() ([]byte, error) {
	return toml.Marshal(d.tree)
}

// Save writes the document back to its path atomically.
func (d *ChezmoiDocument) Save() error {
	data, err := d.Bytes()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", d.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(d.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomic.WriteFile(d.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}
	return nil
}

// themeTable returns the [data.cheztheme] table, creating it when create is set.
func (d *ChezmoiDocument) themeTable(create bool) (map[string]any, error) {
	data, err := subTable(d.tree, chezmoiDataKey, create)
	if err != nil {
		return nil, err
	}
	return subTable(data, chezmoiThemeKey, create)
}

func subTable(parent map[string]any, key string, create bool) (map[string]any, error) {
	raw, exists := parent[key]
	if !exists {
		if !create {
			return nil, fmt.Errorf("%w: missing table %q", ErrNoThemeData, key)
		}
		table := make(map[string]any)
		parent[key] = table
		return table, nil
	}

	table, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a table", ErrNoThemeData, key)
	}
	return table, nil
}
