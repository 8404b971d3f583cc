package widget

import (
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/cheztheme/internal/export"
	"github.com/jmylchreest/cheztheme/internal/palette"
)

// CSSProviderSink records --color-* properties and loads them into a GTK
// CSS provider. SetProperty may run on any goroutine; Load must run on the
// GTK main loop.
type CSSProviderSink struct {
	*palette.MemorySink

	provider *gtk.CSSProvider
	logger   *slog.Logger

	mu     sync.Mutex
	loaded string
}

var _ palette.StyleSink = (*CSSProviderSink)(nil)

// NewCSSProviderSink creates a sink with a fresh provider.
func NewCSSProviderSink(logger *slog.Logger) *CSSProviderSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSSProviderSink{
		MemorySink: palette.NewMemorySink(),
		provider:   gtk.NewCSSProvider(),
		logger:     logger,
	}
}

// Attach registers the provider with display, or the default display when nil.
func (s *CSSProviderSink) Attach(display *gdk.Display) bool {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		s.logger.Warn("no display available, palette will not be applied")
		return false
	}

	gtk.StyleContextAddProviderForDisplay(
		display,
		s.provider,
		gtk.STYLE_PROVIDER_PRIORITY_USER,
	)
	return true
}

// Load pushes the current properties into the provider. Unchanged output
// is not reloaded.
func (s *CSSProviderSink) Load() {
	css := export.RenderGTK(s.Properties())

	s.mu.Lock()
	defer s.mu.Unlock()
	if css == s.loaded {
		return
	}
	s.provider.LoadFromString(css)
	s.loaded = css
	s.logger.Debug("loaded palette stylesheet", "properties", s.Len())
}
