package widget

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Fallback colors keep the popup readable before a palette is loaded.
// Palette rules from CSSProviderSink are added at a higher priority and
// redefine them.
const baseCSS = `
@define-color base00 #282828;
@define-color base01 #3c3836;
@define-color base02 #504945;
@define-color base03 #665c54;
@define-color base05 #d5c4a1;
@define-color base08 #fb4934;
@define-color base0B #b8bb26;
@define-color base0D #83a598;
@define-color base0E #d3869b;

window.cheztheme {
  background: transparent;
}

.cheztheme-panel {
  background-color: @base00;
  color: @base05;
  border: 1px solid @base02;
  border-radius: 10px;
  padding: 10px;
}

.cheztheme-title {
  font-weight: bold;
  color: @base0D;
}

.cheztheme-current {
  color: @base0B;
}

.cheztheme-status {
  color: @base03;
}

.cheztheme-status.error {
  color: @base08;
}

.cheztheme-search {
  background-color: @base01;
  color: @base05;
}

.cheztheme-entry {
  background: none;
  border: none;
  border-radius: 6px;
  padding: 4px 6px;
  color: @base05;
}

.cheztheme-entry:hover {
  background-color: @base01;
}

.cheztheme-entry.current {
  background-color: @base02;
}

.cheztheme-kind {
  color: @base03;
  font-size: smaller;
}

.cheztheme-entry.current .cheztheme-kind {
  color: @base0E;
}
`

// loadBaseStyle installs the widget stylesheet on display.
func loadBaseStyle(display *gdk.Display) {
	if display == nil {
		return
	}
	provider := gtk.NewCSSProvider()
	provider.LoadFromString(baseCSS)
	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}
