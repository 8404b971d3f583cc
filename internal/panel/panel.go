package panel

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jmylchreest/cheztheme/internal/palette"
	"github.com/jmylchreest/cheztheme/internal/theme"
)

// Host provides the panel's data and carries out theme changes.
type Host interface {
	// ReadConfig returns the active theme. It fails when no config exists or it is malformed.
	ReadConfig(ctx context.Context) (*palette.Config, error)
	// ThemeNames returns every installed theme with its palette.
	ThemeNames(ctx context.Context) ([]theme.Descriptor, error)
	// ApplyTheme makes name the active theme.
	ApplyTheme(ctx context.Context, name string) error
}

// Filter returns the descriptors whose name contains term, ignoring case.
// An empty term matches everything. Order is preserved.
func Filter(catalog []theme.Descriptor, term string) []theme.Descriptor {
	needle := strings.ToLower(term)
	out := make([]theme.Descriptor, 0, len(catalog))
	for _, d := range catalog {
		if strings.Contains(strings.ToLower(d.Name), needle) {
			out = append(out, d)
		}
	}
	return out
}

// Entry is a visible catalog item.
type Entry struct {
	theme.Descriptor
	Current bool
}

// View is an immutable snapshot of panel state.
type View struct {
	Entries       []Entry
	Current       string // Active theme name; empty when HasConfig is false
	HasConfig     bool
	CatalogLoaded bool
	Search        string
	ConfigErr     error // Last config fetch failure, nil after a success
	CatalogErr    error
	Total         int // Catalog size before filtering
}

// Panel is the picker state. It is not safe for concurrent use; a Session
// confines it to one goroutine.
type Panel struct {
	sink     palette.StyleSink
	logger   *slog.Logger
	dispatch func(name string)

	catalog    []theme.Descriptor
	catalogErr error
	loaded     bool

	config    *palette.Config
	configErr error

	search string
}

// New creates a Panel that writes color properties into sink.
func New(sink palette.StyleSink, logger *slog.Logger) *Panel {
	if logger == nil {
		logger = slog.Default()
	}
	return &Panel{
		sink:     sink,
		logger:   logger,
		dispatch: func(string) {},
	}
}

// SetDispatcher sets the function Select hands theme names to.
func (p *Panel) SetDispatcher(dispatch func(name string)) {
	if dispatch == nil {
		dispatch = func(string) {}
	}
	p.dispatch = dispatch
}

// SetCatalog replaces the catalog snapshot.
func (p *Panel) SetCatalog(catalog []theme.Descriptor, err error) {
	p.loaded = true
	p.catalogErr = err
	if err != nil {
		p.logger.Warn("failed to load theme catalog", "error", err)
		p.catalog = nil
		return
	}
	p.catalog = catalog
}

// SetConfig records the result of a config fetch. A failure leaves the
// panel with no config; a success replaces it and writes its palette to
// the sink. Properties from earlier configs are not cleared.
func (p *Panel) SetConfig(cfg *palette.Config, err error) {
	if err != nil || cfg == nil {
		if err != nil {
			p.logger.Debug("config unavailable", "error", err)
		}
		p.config = nil
		p.configErr = err
		return
	}

	p.config = cfg
	p.configErr = nil
	n := palette.Resolve(cfg.Theme, p.sink, p.logger)
	p.logger.Debug("palette resolved", "theme", cfg.ThemeName, "properties", n)
}

// SetSearch updates the live search term.
func (p *Panel) SetSearch(term string) {
	p.search = term
}

// Search returns the current search term.
func (p *Panel) Search() string {
	return p.search
}

// Config returns the active config, or nil.
func (p *Panel) Config() *palette.Config {
	return p.config
}

// IsCurrent reports whether d is the active theme. With no config nothing is current.
func (p *Panel) IsCurrent(d theme.Descriptor) bool {
	return p.config != nil && d.Name == p.config.ThemeName
}

// Visible returns the filtered catalog with current flags.
func (p *Panel) Visible() []Entry {
	filtered := Filter(p.catalog, p.search)
	entries := make([]Entry, len(filtered))
	for i, d := range filtered {
		entries[i] = Entry{Descriptor: d, Current: p.IsCurrent(d)}
	}
	return entries
}

// Select asks for name to become the active theme. State changes only
// when the resulting config change arrives.
func (p *Panel) Select(name string) {
	p.dispatch(name)
}

// View returns a snapshot of the panel.
func (p *Panel) View() View {
	v := View{
		Entries:       p.Visible(),
		HasConfig:     p.config != nil,
		CatalogLoaded: p.loaded,
		Search:        p.search,
		ConfigErr:     p.configErr,
		CatalogErr:    p.catalogErr,
		Total:         len(p.catalog),
	}
	if p.config != nil {
		v.Current = p.config.ThemeName
	}
	return v
}
