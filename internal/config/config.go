// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultThemesDir     = "~/.local/share/chezmoi/themes"
	DefaultChezmoiConfig = "~/.config/chezmoi/chezmoi.toml"
	DefaultChezmoiBinary = "chezmoi"
	DefaultKeepBackups   = 5
	DefaultExportPath    = "~/.cache/cheztheme/colors.css"
)

// Config represents the cheztheme configuration.
type Config struct {
	Themes    ThemesConfig    `toml:"themes"`
	Chezmoi   ChezmoiConfig   `toml:"chezmoi"`
	Apply     ApplyConfig     `toml:"apply"`
	Panel     PanelConfig     `toml:"panel"`
	Export    ExportConfig    `toml:"export"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// ThemesConfig holds theme lookup options.
type ThemesConfig struct {
	Dir string `toml:"dir"` // Directory of custom *.yaml themes
}

// ChezmoiConfig locates chezmoi and its configuration file.
type ChezmoiConfig struct {
	Config string `toml:"config"` // Path to chezmoi.toml
	Binary string `toml:"binary"` // Executable run after writing the theme
}

// ApplyConfig controls what happens after a theme is written.
type ApplyConfig struct {
	ReloadKitty    bool     `toml:"reload_kitty"`    // Send SIGUSR1 to running kitty instances
	ReloadCommands []string `toml:"reload_commands"` // Extra shell commands run after chezmoi apply
	Notify         bool     `toml:"notify"`          // Desktop notification on success
	Backup         bool     `toml:"backup"`          // Copy chezmoi.toml aside before rewriting
	KeepBackups    int      `toml:"keep_backups"`    // Number of backups retained (0 = unlimited)
}

// ExportConfig holds the CSS export options used by "cheztheme watch".
type ExportConfig struct {
	Path string `toml:"path"`
}

// ClipboardConfig contains clipboard settings for the TUI.
type ClipboardConfig struct {
	Command string `toml:"command"` // Empty = auto-detect wl-copy, xclip, xsel
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Themes: ThemesConfig{
			Dir: DefaultThemesDir,
		},
		Chezmoi: ChezmoiConfig{
			Config: DefaultChezmoiConfig,
			Binary: DefaultChezmoiBinary,
		},
		Apply: ApplyConfig{
			ReloadKitty: true,
			Notify:      false,
			Backup:      true,
			KeepBackups: DefaultKeepBackups,
		},
		Panel: DefaultPanelConfig(),
		Export: ExportConfig{
			Path: DefaultExportPath,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cheztheme", "config.toml")
}

// StatePath returns the path to the state directory.
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state.
func StatePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "cheztheme")
}

// BackupPath returns the directory holding chezmoi.toml backups.
func BackupPath() string {
	return filepath.Join(StatePath(), "backups")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Chezmoi.Binary == "" {
		return errors.New("chezmoi.binary must not be empty")
	}
	if c.Apply.KeepBackups < 0 {
		return fmt.Errorf("apply.keep_backups must not be negative, got %d", c.Apply.KeepBackups)
	}
	return c.Panel.Validate()
}

// ThemesDir returns the expanded custom themes directory.
func (c *Config) ThemesDir() string {
	return ExpandPath(c.Themes.Dir)
}

// ChezmoiConfigPath returns the expanded path to chezmoi.toml.
func (c *Config) ChezmoiConfigPath() string {
	if c.Chezmoi.Config == "" {
		return ExpandPath(DefaultChezmoiConfig)
	}
	return ExpandPath(c.Chezmoi.Config)
}

// ExportPath returns the expanded CSS export path.
func (c *Config) ExportPath() string {
	return ExpandPath(c.Export.Path)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
