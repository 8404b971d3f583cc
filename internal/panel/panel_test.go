package panel

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cheztheme/internal/palette"
	"github.com/jmylchreest/cheztheme/internal/theme"
)

func testPalette(seed int) palette.Palette {
	var p palette.Palette
	for i, slot := range palette.Slots {
		p.Set(slot, fmt.Sprintf("#%02x%02x%02x", seed, i, i*4))
	}
	return p
}

func descriptor(name string, seed int) theme.Descriptor {
	return theme.Descriptor{ID: name + "-preset", Name: name, Kind: theme.KindPreset, Palette: testPalette(seed)}
}

func testCatalog() []theme.Descriptor {
	return []theme.Descriptor{descriptor("Gruvbox", 1), descriptor("Solarized", 2)}
}

func names(ds []theme.Descriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty_matches_all", "", []string{"Gruvbox", "Solarized"}},
		{"substring", "solar", []string{"Solarized"}},
		{"case_insensitive", "GRUV", []string{"Gruvbox"}},
		{"middle", "ar", []string{"Solarized"}},
		{"no_match", "nord", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(testCatalog(), tt.term)))
		})
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	catalog := []theme.Descriptor{descriptor("b-dark", 1), descriptor("a-dark", 2), descriptor("c-light", 3)}
	assert.Equal(t, []string{"b-dark", "a-dark"}, names(Filter(catalog, "dark")))
}

func TestPanel_IsCurrent(t *testing.T) {
	p := New(palette.NewMemorySink(), nil)
	p.SetCatalog(testCatalog(), nil)

	// No config: nothing is current.
	for _, d := range testCatalog() {
		assert.False(t, p.IsCurrent(d))
	}

	p.SetConfig(&palette.Config{ThemeName: "Gruvbox", Theme: testPalette(1)}, nil)
	entries := p.Visible()
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Current)
	assert.False(t, entries[1].Current)

	// Exact, case-sensitive match.
	p.SetConfig(&palette.Config{ThemeName: "gruvbox", Theme: testPalette(1)}, nil)
	for _, e := range p.Visible() {
		assert.False(t, e.Current, e.Name)
	}
}

func TestPanel_SetConfigResolvesPalette(t *testing.T) {
	sink := palette.NewMemorySink()
	p := New(sink, nil)

	p.SetConfig(&palette.Config{ThemeName: "Solarized", Theme: testPalette(2)}, nil)
	assert.Equal(t, 16, sink.Len())

	v, ok := sink.Property("--color-base01")
	require.True(t, ok)
	assert.Equal(t, "2 1 4", v)
}

func TestPanel_FailedFetchIsAbsent(t *testing.T) {
	sink := palette.NewMemorySink()
	p := New(sink, nil)
	p.SetCatalog(testCatalog(), nil)
	p.SetConfig(&palette.Config{ThemeName: "Gruvbox", Theme: testPalette(1)}, nil)

	fetchErr := errors.New("no config")
	p.SetConfig(nil, fetchErr)

	v := p.View()
	assert.False(t, v.HasConfig)
	assert.Empty(t, v.Current)
	assert.Equal(t, fetchErr, v.ConfigErr)
	for _, e := range v.Entries {
		assert.False(t, e.Current)
	}
	assert.Equal(t, 16, sink.Len(), "properties are left in place")
}

func TestPanel_InvalidSlotSkipped(t *testing.T) {
	sink := palette.NewMemorySink()
	p := New(sink, nil)

	cfg := &palette.Config{ThemeName: "Broken", Theme: testPalette(3)}
	cfg.Theme.Base07 = "notacolor"
	p.SetConfig(cfg, nil)

	assert.Equal(t, 15, sink.Len())
	assert.True(t, p.View().HasConfig)
}

func TestPanel_SearchAndView(t *testing.T) {
	p := New(palette.NewMemorySink(), nil)
	p.SetCatalog(testCatalog(), nil)
	p.SetSearch("sol")

	v := p.View()
	assert.True(t, v.CatalogLoaded)
	assert.Equal(t, "sol", v.Search)
	assert.Equal(t, 2, v.Total)
	require.Len(t, v.Entries, 1)
	assert.Equal(t, "Solarized", v.Entries[0].Name)
	assert.Equal(t, "sol", p.Search())
}

func TestPanel_CatalogError(t *testing.T) {
	p := New(palette.NewMemorySink(), nil)
	p.SetCatalog(testCatalog(), nil)
	p.SetCatalog(nil, errors.New("boom"))

	v := p.View()
	assert.True(t, v.CatalogLoaded)
	assert.Error(t, v.CatalogErr)
	assert.Empty(t, v.Entries)
}

func TestPanel_SelectDispatchesWithoutStateChange(t *testing.T) {
	p := New(palette.NewMemorySink(), nil)
	p.SetCatalog(testCatalog(), nil)
	p.SetConfig(&palette.Config{ThemeName: "Gruvbox", Theme: testPalette(1)}, nil)

	var dispatched []string
	p.SetDispatcher(func(name string) { dispatched = append(dispatched, name) })
	p.Select("Solarized")

	assert.Equal(t, []string{"Solarized"}, dispatched)
	assert.Equal(t, "Gruvbox", p.View().Current, "no optimistic update")
	assert.Equal(t, "Gruvbox", p.Config().ThemeName)
}
