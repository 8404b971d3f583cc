package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cheztheme/internal/palette"
	"github.com/jmylchreest/cheztheme/internal/theme"
)

func statusConfig(name string) *palette.Config {
	cfg := &palette.Config{ThemeName: name}
	for _, slot := range palette.Slots {
		cfg.Theme.Set(slot, "#282828")
	}
	return cfg
}

func TestGenerateStatus(t *testing.T) {
	scheme := &theme.Theme{Name: "Gruvbox", Author: "morhetz", Variant: "dark"}

	tests := []struct {
		name      string
		cfg       *palette.Config
		scheme    *theme.Theme
		kind      theme.Kind
		wantAlt   string
		wantInTip []string
	}{
		{
			name:      "preset",
			cfg:       statusConfig("gruvbox-dark"),
			scheme:    scheme,
			kind:      theme.KindPreset,
			wantAlt:   "preset",
			wantInTip: []string{"gruvbox-dark (preset, dark)", "by morhetz"},
		},
		{
			name:      "custom without variant",
			cfg:       statusConfig("mine"),
			scheme:    &theme.Theme{Name: "Mine"},
			kind:      theme.KindCustom,
			wantAlt:   "custom",
			wantInTip: []string{"mine (custom)"},
		},
		{
			name:      "not in catalog",
			cfg:       statusConfig("gone"),
			wantAlt:   "missing",
			wantInTip: []string{"gone (not in catalog)"},
		},
		{
			name: "invalid palette",
			cfg: func() *palette.Config {
				c := statusConfig("broken")
				c.Theme.Base08 = "red"
				return c
			}(),
			scheme:    scheme,
			kind:      theme.KindCustom,
			wantAlt:   "error",
			wantInTip: []string{"base08"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := generateStatus(tt.cfg, tt.scheme, tt.kind, time.Time{})
			assert.Equal(t, tt.cfg.ThemeName, status.Text)
			assert.Equal(t, tt.wantAlt, status.Alt)
			assert.Equal(t, tt.wantAlt, status.Class)
			for _, want := range tt.wantInTip {
				assert.Contains(t, status.Tooltip, want)
			}
			assert.NotContains(t, status.Tooltip, "Changed")
		})
	}
}

func TestGenerateStatus_Changed(t *testing.T) {
	status := generateStatus(statusConfig("nord"), nil, "", time.Now().Add(-3*time.Hour))
	assert.Contains(t, status.Tooltip, "Changed 3 hours ago")
}

func TestOutputStatus(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, outputStatus(&buf, WaybarStatus{Text: "nord", Alt: "preset", Class: "preset"}))
	assert.Equal(t, `{"text":"nord","alt":"preset","class":"preset"}`, strings.TrimSpace(buf.String()))
}
