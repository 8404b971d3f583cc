package theme

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// customExts are the file extensions recognized in the custom directory, in lookup order.
var customExts = []string{".yaml", ".yml"}

// Catalog enumerates and loads presets and custom schemes.
// A custom scheme with the same name as a preset is shadowed by the preset.
type Catalog struct {
	dir    string
	logger *slog.Logger
}

// NewCatalog creates a catalog over the custom scheme directory dir.
// An empty dir means presets only.
func NewCatalog(dir string, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{dir: dir, logger: logger}
}

// Dir returns the custom scheme directory.
func (c *Catalog) Dir() string {
	return c.dir
}

// Names lists every available scheme sorted by name.
func (c *Catalog) Names() ([]Entry, error) {
	seen := make(map[string]bool)
	var entries []Entry

	for _, name := range ListEmbeddedPresets() {
		seen[name] = true
		entries = append(entries, Entry{Name: name, Kind: KindPreset})
	}

	custom, err := c.customNames()
	if err != nil {
		return nil, err
	}
	for _, name := range custom {
		if seen[name] {
			c.logger.Debug("custom theme shadowed by preset", "theme", name)
			continue
		}
		seen[name] = true
		entries = append(entries, Entry{Name: name, Kind: KindCustom})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Load resolves name to a preset first, then to <dir>/<name>.yaml or .yml.
func (c *Catalog) Load(name string) (*Theme, Kind, error) {
	if data, ok := GetEmbeddedPreset(name); ok {
		t, err := Parse(data)
		if err != nil {
			return nil, "", fmt.Errorf("preset %s: %w", name, err)
		}
		return t, KindPreset, nil
	}

	path, err := c.customPath(name)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return t, KindCustom, nil
}

// Descriptors loads every scheme. Schemes that fail to load are logged and skipped.
func (c *Catalog) Descriptors() ([]Descriptor, error) {
	entries, err := c.Names()
	if err != nil {
		return nil, err
	}

	descriptors := make([]Descriptor, 0, len(entries))
	for _, entry := range entries {
		t, kind, err := c.Load(entry.Name)
		if err != nil {
			c.logger.Warn("skipping theme", "theme", entry.Name, "error", err)
			continue
		}
		e := Entry{Name: entry.Name, Kind: kind}
		descriptors = append(descriptors, Descriptor{
			ID:      e.ID(),
			Name:    e.Name,
			Kind:    e.Kind,
			Palette: t.Palette,
		})
	}
	return descriptors, nil
}

// customNames lists scheme names in the custom directory. A missing directory yields none.
func (c *Catalog) customNames() ([]string, error) {
	if c.dir == "" {
		return nil, nil
	}

	files, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read theme directory: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := filepath.Ext(f.Name())
		if !slices.Contains(customExts, ext) {
			continue
		}
		name := strings.TrimSuffix(f.Name(), ext)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

func (c *Catalog) customPath(name string) (string, error) {
	if c.dir == "" || name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	for _, ext := range customExts {
		path := filepath.Join(c.dir, name+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrThemeNotFound, name)
}
