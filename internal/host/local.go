// Package host implements the panel host in-process on top of the
// chezmoi config, the theme catalog and the apply pipeline.
package host

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jmylchreest/cheztheme/internal/apply"
	"github.com/jmylchreest/cheztheme/internal/config"
	"github.com/jmylchreest/cheztheme/internal/palette"
	"github.com/jmylchreest/cheztheme/internal/panel"
	"github.com/jmylchreest/cheztheme/internal/theme"
)

var _ panel.Host = (*Local)(nil)

// Applier runs a theme change. *apply.Applier implements it.
type Applier interface {
	Apply(ctx context.Context, name string) error
}

// Local serves the panel from the local filesystem.
type Local struct {
	chezmoiConfig string
	catalog       *theme.Catalog
	applier       Applier
	logger        *slog.Logger

	applyMu sync.Mutex
}

// New creates a host reading chezmoiConfig and listing themes from catalog.
func New(chezmoiConfig string, catalog *theme.Catalog, applier Applier, logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	return &Local{
		chezmoiConfig: chezmoiConfig,
		catalog:       catalog,
		applier:       applier,
		logger:        logger,
	}
}

// FromConfig wires a Local host and its apply pipeline from the application config.
func FromConfig(cfg *config.Config, logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	catalog := theme.NewCatalog(cfg.ThemesDir(), logger)
	return New(cfg.ChezmoiConfigPath(), catalog, NewApplier(cfg, catalog, logger), logger)
}

// NewApplier builds the apply pipeline described by cfg.
func NewApplier(cfg *config.Config, catalog *theme.Catalog, logger *slog.Logger) *apply.Applier {
	applier := apply.New(catalog, apply.OptionsFromConfig(cfg), logger)
	if cfg.Apply.Notify {
		applier.SetNotifier(apply.NewDBusNotifier(logger))
	}
	return applier
}

// ConfigPath returns the chezmoi.toml path that front ends should watch.
func (l *Local) ConfigPath() string {
	return l.chezmoiConfig
}

// Catalog returns the theme catalog.
func (l *Local) Catalog() *theme.Catalog {
	return l.catalog
}

// ReadConfig implements panel.Host.
func (l *Local) ReadConfig(ctx context.Context) (*palette.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := config.LoadChezmoi(l.chezmoiConfig)
	if err != nil {
		return nil, err
	}
	return doc.ThemeConfig()
}

// ThemeNames implements panel.Host.
func (l *Local) ThemeNames(ctx context.Context) ([]theme.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.catalog.Descriptors()
}

// ApplyTheme implements panel.Host. Concurrent calls run one at a time.
func (l *Local) ApplyTheme(ctx context.Context, name string) error {
	l.applyMu.Lock()
	defer l.applyMu.Unlock()

	l.logger.Debug("apply requested", "theme", name)
	return l.applier.Apply(ctx, name)
}
