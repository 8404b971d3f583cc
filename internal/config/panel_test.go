package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanelConfig_Validate(t *testing.T) {
	for _, pos := range ValidPositions() {
		t.Run(string(pos), func(t *testing.T) {
			p := DefaultPanelConfig()
			p.Position = string(pos)
			assert.NoError(t, p.Validate())
		})
	}

	p := DefaultPanelConfig()
	p.Position = "center"
	assert.Error(t, p.Validate())

	p = DefaultPanelConfig()
	p.Height = 5000
	assert.Error(t, p.Validate())
}

func TestPanelConfig_IsBottom(t *testing.T) {
	tests := []struct {
		position Position
		expected bool
	}{
		{PositionTopLeft, false},
		{PositionTopRight, false},
		{PositionTopCenter, false},
		{PositionBottomLeft, true},
		{PositionBottomRight, true},
		{PositionBottomCenter, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.position), func(t *testing.T) {
			p := PanelConfig{Position: string(tt.position)}
			assert.Equal(t, tt.expected, p.IsBottom())
		})
	}
}
