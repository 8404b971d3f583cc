package widget

import (
	"fmt"
	"html"
	"log/slog"
	"strings"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/cheztheme/internal/config"
	"github.com/jmylchreest/cheztheme/internal/palette"
	"github.com/jmylchreest/cheztheme/internal/panel"
)

// Popup is the theme picker window.
type Popup struct {
	window  *gtk.Window
	session *panel.Session
	sink    *CSSProviderSink
	config  config.PanelConfig
	logger  *slog.Logger

	// Widgets
	box        *gtk.Box
	currentLbl *gtk.Label
	search     *gtk.SearchEntry
	list       *gtk.Box
	statusLbl  *gtk.Label

	// State
	first string // name of the first visible entry, applied on enter
}

// NewPopup builds the popup for session. sink must be the sink the session
// writes into.
func NewPopup(app *gtk.Application, session *panel.Session, sink *CSSProviderSink, cfg config.PanelConfig, logger *slog.Logger) *Popup {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Popup{
		session: session,
		sink:    sink,
		config:  cfg,
		logger:  logger,
	}

	p.window = gtk.NewWindow()
	p.window.SetApplication(app)
	p.window.SetDecorated(false)
	p.window.SetResizable(false)
	p.window.SetDefaultSize(cfg.Width, cfg.Height)
	p.window.SetSizeRequest(cfg.Width, cfg.Height)
	p.window.AddCSSClass("cheztheme")

	layershell.InitForWindow(p.window)
	layershell.SetLayer(p.window, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(p.window, 0)
	layershell.SetKeyboardMode(p.window, layershell.LayerShellKeyboardModeExclusive)
	layershell.SetNamespace(p.window, "cheztheme-panel")
	anchor(p.window, cfg)

	p.buildUI()
	p.connectSignals()

	display := gdk.DisplayGetDefault()
	loadBaseStyle(display)
	sink.Attach(display)

	session.OnUpdate(func(v panel.View) {
		glib.IdleAdd(func() {
			p.render(v)
		})
	})
	p.render(session.Snapshot())

	return p
}

// buildUI creates the popup's widget tree.
func (p *Popup) buildUI() {
	p.box = gtk.NewBox(gtk.OrientationVertical, 6)
	p.box.AddCSSClass("cheztheme-panel")

	header := gtk.NewBox(gtk.OrientationHorizontal, 6)
	title := gtk.NewLabel("Themes")
	title.AddCSSClass("cheztheme-title")
	title.SetXAlign(0)
	title.SetHExpand(true)
	header.Append(title)

	closeBtn := gtk.NewButtonFromIconName("window-close-symbolic")
	closeBtn.AddCSSClass("flat")
	closeBtn.ConnectClicked(p.Hide)
	header.Append(closeBtn)
	p.box.Append(header)

	p.currentLbl = gtk.NewLabel("")
	p.currentLbl.AddCSSClass("cheztheme-current")
	p.currentLbl.SetXAlign(0)
	p.currentLbl.SetEllipsize(3) // PANGO_ELLIPSIZE_END
	p.box.Append(p.currentLbl)

	p.search = gtk.NewSearchEntry()
	p.search.AddCSSClass("cheztheme-search")
	p.box.Append(p.search)

	p.list = gtk.NewBox(gtk.OrientationVertical, 2)
	scroller := gtk.NewScrolledWindow()
	scroller.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	scroller.SetVExpand(true)
	scroller.SetChild(p.list)
	p.box.Append(scroller)

	p.statusLbl = gtk.NewLabel("")
	p.statusLbl.AddCSSClass("cheztheme-status")
	p.statusLbl.SetXAlign(0)
	p.statusLbl.SetEllipsize(3)
	p.box.Append(p.statusLbl)

	p.window.SetChild(p.box)
}

// connectSignals sets up event handlers.
func (p *Popup) connectSignals() {
	p.search.ConnectSearchChanged(func() {
		p.session.SetSearch(p.search.Text())
	})
	p.search.ConnectActivate(func() {
		if p.first != "" {
			p.session.Select(p.first)
		}
	})
	p.search.ConnectStopSearch(p.Hide)

	keyCtrl := gtk.NewEventControllerKey()
	keyCtrl.ConnectKeyPressed(func(keyval, keycode uint, state gdk.ModifierType) bool {
		if keyval == gdk.KEY_Escape {
			p.Hide()
			return true
		}
		return false
	})
	p.window.AddController(keyCtrl)

	if p.config.HideOnFocusLoss {
		focusCtrl := gtk.NewEventControllerFocus()
		focusCtrl.ConnectLeave(p.Hide)
		p.window.AddController(focusCtrl)
	}
}

// Show presents the popup and focuses the search entry.
func (p *Popup) Show() {
	p.window.Present()
	p.search.GrabFocus()
}

// Hide hides the popup without destroying it.
func (p *Popup) Hide() {
	p.window.SetVisible(false)
}

// Toggle shows a hidden popup and hides a visible one.
func (p *Popup) Toggle() {
	if p.window.IsVisible() {
		p.Hide()
		return
	}
	p.Show()
}

// Close destroys the window.
func (p *Popup) Close() {
	p.window.Close()
}

// render rebuilds the list from v. It runs on the GTK main loop.
func (p *Popup) render(v panel.View) {
	p.sink.Load()

	if v.HasConfig {
		p.currentLbl.SetText("Current: " + v.Current)
	} else {
		p.currentLbl.SetText("No active theme")
	}

	for child := p.list.FirstChild(); child != nil; child = p.list.FirstChild() {
		p.list.Remove(child)
	}

	p.first = ""
	for _, e := range v.Entries {
		if p.first == "" {
			p.first = e.Name
		}
		p.list.Append(p.buildEntry(e))
	}

	p.renderStatus(v)
}

// buildEntry creates the button for one theme.
func (p *Popup) buildEntry(e panel.Entry) gtk.Widgetter {
	row := gtk.NewBox(gtk.OrientationHorizontal, 8)

	swatch := gtk.NewLabel("")
	swatch.SetMarkup(swatchMarkup(e.Palette))
	row.Append(swatch)

	name := gtk.NewLabel(e.Name)
	name.SetXAlign(0)
	name.SetHExpand(true)
	name.SetEllipsize(3)
	row.Append(name)

	kind := gtk.NewLabel(string(e.Kind))
	if e.Current {
		kind.SetText("current")
	}
	kind.AddCSSClass("cheztheme-kind")
	row.Append(kind)

	btn := gtk.NewButton()
	btn.AddCSSClass("cheztheme-entry")
	if e.Current {
		btn.AddCSSClass("current")
	}
	btn.SetChild(row)

	themeName := e.Name
	btn.ConnectClicked(func() {
		p.logger.Debug("theme clicked", "theme", themeName)
		p.statusLbl.RemoveCSSClass("error")
		p.statusLbl.SetText("Applying " + themeName + "...")
		p.session.Select(themeName)
	})
	return btn
}

// renderStatus shows fetch failures or the entry count.
func (p *Popup) renderStatus(v panel.View) {
	p.statusLbl.RemoveCSSClass("error")
	switch {
	case v.CatalogErr != nil:
		p.statusLbl.AddCSSClass("error")
		p.statusLbl.SetText("Theme list unavailable: " + v.CatalogErr.Error())
	case v.ConfigErr != nil:
		p.statusLbl.AddCSSClass("error")
		p.statusLbl.SetText("Config unavailable: " + v.ConfigErr.Error())
	case !v.CatalogLoaded:
		p.statusLbl.SetText("Loading themes...")
	case v.Search != "":
		p.statusLbl.SetText(fmt.Sprintf("%d of %d themes", len(v.Entries), v.Total))
	default:
		p.statusLbl.SetText(fmt.Sprintf("%d themes", v.Total))
	}
}

// swatchMarkup renders the eight accent slots as colored blocks.
func swatchMarkup(p palette.Palette) string {
	colors := p.Colors()

	var b strings.Builder
	for _, hex := range colors[8:] {
		if _, _, _, ok := palette.ParseHex(hex); !ok {
			b.WriteString(" ")
			continue
		}
		if !strings.HasPrefix(hex, "#") {
			hex = "#" + hex
		}
		fmt.Fprintf(&b, `<span foreground="%s">█</span>`, html.EscapeString(hex))
	}
	return b.String()
}
