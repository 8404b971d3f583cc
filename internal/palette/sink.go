package palette

import (
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// StyleSink receives display properties derived from a palette.
type StyleSink interface {
	SetProperty(name, value string)
}

// Resolve writes one --color-<slot> property per valid slot into sink.
// Invalid slots are skipped and their previous value is left in place.
// It returns the number of properties written.
func Resolve(p Palette, sink StyleSink, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}

	written := 0
	for i, hex := range p.Colors() {
		slot := Slots[i]
		rgb, ok := HexToRGB(hex)
		if !ok {
			logger.Debug("skipping invalid palette color", "slot", slot, "value", hex)
			continue
		}
		sink.SetProperty(PropertyName(slot), rgb)
		written++
	}
	return written
}

// MemorySink is an in-memory property registry.
type MemorySink struct {
	mu    sync.RWMutex
	props map[string]string
}

// NewMemorySink creates an empty registry.
func NewMemorySink() *MemorySink {
	return &MemorySink{props: make(map[string]string)}
}

// SetProperty implements StyleSink.
func (s *MemorySink) SetProperty(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.props[name] = value
}

// Property returns a single property value.
func (s *MemorySink) Property(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.props[name]
	return v, ok
}

// Properties returns a copy of the registry.
func (s *MemorySink) Properties() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.props)
}

// Names returns the registered property names, sorted.
func (s *MemorySink) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.props))
}

// Len returns the number of registered properties.
func (s *MemorySink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.props)
}
