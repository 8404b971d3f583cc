package widget

import (
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/cheztheme/internal/config"
)

// anchor sets the layer-shell anchors and margins for the configured position.
func anchor(window *gtk.Window, cfg config.PanelConfig) {
	layershell.SetAnchor(window, layershell.LayerShellEdgeTop, false)
	layershell.SetAnchor(window, layershell.LayerShellEdgeBottom, false)
	layershell.SetAnchor(window, layershell.LayerShellEdgeLeft, false)
	layershell.SetAnchor(window, layershell.LayerShellEdgeRight, false)

	vertical := layershell.LayerShellEdgeTop
	if cfg.IsBottom() {
		vertical = layershell.LayerShellEdgeBottom
	}
	layershell.SetAnchor(window, vertical, true)
	layershell.SetMargin(window, vertical, cfg.OffsetY)

	switch config.Position(cfg.Position) {
	case config.PositionTopLeft, config.PositionBottomLeft:
		layershell.SetAnchor(window, layershell.LayerShellEdgeLeft, true)
		layershell.SetMargin(window, layershell.LayerShellEdgeLeft, cfg.OffsetX)
	case config.PositionTopRight, config.PositionBottomRight:
		layershell.SetAnchor(window, layershell.LayerShellEdgeRight, true)
		layershell.SetMargin(window, layershell.LayerShellEdgeRight, cfg.OffsetX)
	}
}
