package panel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jmylchreest/cheztheme/internal/palette"
)

// Session runs a Panel on a single event loop. Host calls run on their
// own goroutines and post results back to the loop; results are applied
// in the order they complete.
type Session struct {
	host   Host
	panel  *Panel
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	events chan func()
	done   chan struct{}

	mountOnce sync.Once
	runOnce   sync.Once

	mu       sync.Mutex
	onUpdate []func(View)
	last     View
}

// NewSession creates a session for host that writes colors into sink.
func NewSession(host Host, sink palette.StyleSink, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		host:   host,
		panel:  New(sink, logger),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan func(), 64),
		done:   make(chan struct{}),
	}
	s.panel.SetDispatcher(s.apply)
	s.last = s.panel.View()
	return s
}

// OnUpdate registers fn to receive a View after every state change.
// fn runs on the loop goroutine.
func (s *Session) OnUpdate(fn func(View)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = append(s.onUpdate, fn)
}

// Snapshot returns the most recently published View.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Mount starts the catalog and config fetches. Only the first call has an effect.
func (s *Session) Mount() {
	s.mountOnce.Do(func() {
		go func() {
			catalog, err := s.host.ThemeNames(s.ctx)
			s.post(func() { s.panel.SetCatalog(catalog, err) })
		}()
		s.fetchConfig()
	})
}

// ConfigChanged re-fetches the config. It is the file watch callback.
func (s *Session) ConfigChanged() {
	s.fetchConfig()
}

// Select applies name without waiting for the result.
func (s *Session) Select(name string) {
	s.post(func() { s.panel.Select(name) })
}

// SetSearch updates the search term.
func (s *Session) SetSearch(term string) {
	s.post(func() { s.panel.SetSearch(term) })
}

// Run processes events until ctx is cancelled. Pending host calls are
// cancelled when it returns.
func (s *Session) Run(ctx context.Context) error {
	started := false
	s.runOnce.Do(func() { started = true })
	if !started {
		<-s.done
		return nil
	}

	defer func() {
		s.cancel()
		close(s.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-s.events:
			fn()
			s.publish()
		}
	}
}

func (s *Session) fetchConfig() {
	go func() {
		cfg, err := s.host.ReadConfig(s.ctx)
		s.post(func() { s.panel.SetConfig(cfg, err) })
	}()
}

// apply is the panel's dispatcher.
func (s *Session) apply(name string) {
	s.logger.Debug("applying theme", "theme", name)
	go func() {
		if err := s.host.ApplyTheme(s.ctx, name); err != nil {
			s.logger.Error("failed to apply theme", "theme", name, "error", err)
		}
	}()
}

func (s *Session) post(fn func()) {
	select {
	case s.events <- fn:
	case <-s.done:
	}
}

func (s *Session) publish() {
	v := s.panel.View()

	s.mu.Lock()
	s.last = v
	handlers := append([]func(View){}, s.onUpdate...)
	s.mu.Unlock()

	for _, fn := range handlers {
		fn(v)
	}
}
