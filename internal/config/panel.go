package config

import (
	"fmt"
	"slices"
)

// PanelConfig contains widget placement settings.
type PanelConfig struct {
	Position        string `toml:"position"`           // "top-right", "top-left", etc.
	OffsetX         int    `toml:"offset_x"`           // Pixels from screen edge
	OffsetY         int    `toml:"offset_y"`           // Pixels from screen edge
	Width           int    `toml:"width"`              // Panel width in pixels
	Height          int    `toml:"height"`             // Panel height in pixels
	HideOnFocusLoss bool   `toml:"hide_on_focus_loss"` // Hide when the panel loses focus
}

// Position represents a panel position on screen.
type Position string

const (
	PositionTopLeft      Position = "top-left"
	PositionTopRight     Position = "top-right"
	PositionTopCenter    Position = "top-center"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomRight  Position = "bottom-right"
	PositionBottomCenter Position = "bottom-center"
)

// ValidPositions returns all valid position values.
func ValidPositions() []Position {
	return []Position{
		PositionTopLeft,
		PositionTopRight,
		PositionTopCenter,
		PositionBottomLeft,
		PositionBottomRight,
		PositionBottomCenter,
	}
}

// DefaultPanelConfig returns the default widget placement.
func DefaultPanelConfig() PanelConfig {
	return PanelConfig{
		Position:        string(PositionTopRight),
		OffsetX:         10,
		OffsetY:         10,
		Width:           360,
		Height:          520,
		HideOnFocusLoss: true,
	}
}

// Validate checks the panel settings.
func (p PanelConfig) Validate() error {
	if !slices.Contains(ValidPositions(), Position(p.Position)) {
		return fmt.Errorf("invalid position %q, must be one of: %v", p.Position, ValidPositions())
	}
	if p.Width < 200 || p.Width > 2000 {
		return fmt.Errorf("panel width must be between 200 and 2000, got %d", p.Width)
	}
	if p.Height < 200 || p.Height > 2000 {
		return fmt.Errorf("panel height must be between 200 and 2000, got %d", p.Height)
	}
	return nil
}

// IsBottom returns true if the panel is anchored to the bottom of the screen.
func (p PanelConfig) IsBottom() bool {
	switch Position(p.Position) {
	case PositionBottomLeft, PositionBottomRight, PositionBottomCenter:
		return true
	default:
		return false
	}
}
