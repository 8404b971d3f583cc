// Package tui provides the BubbleTea-based terminal theme picker.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/cheztheme/internal/config"
	"github.com/jmylchreest/cheztheme/internal/palette"
	"github.com/jmylchreest/cheztheme/internal/panel"
	"github.com/jmylchreest/cheztheme/internal/theme"
	"github.com/jmylchreest/cheztheme/internal/watch"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeSearch
	ModeHelp
)

// Model is the main TUI model. Its Update loop is the only writer of panel state.
type Model struct {
	host   panel.Host
	panel  *panel.Panel
	sink   *Sink
	logger *slog.Logger
	ctx    context.Context

	clipboardCommand string

	mode Mode

	// Components
	list        list.Model
	searchInput textinput.Model
	help        help.Model

	width  int
	height int
	ready  bool

	keys KeyMap

	// Status message
	statusMsg string
	statusErr bool

	// events carries file-change notices and apply failures from other goroutines.
	events chan tea.Msg
}

// themeItem wraps a panel entry for the list component.
type themeItem struct {
	entry panel.Entry
}

func (i themeItem) Title() string {
	return i.entry.Name
}

func (i themeItem) Description() string {
	return Swatch(i.entry.Palette)
}

func (i themeItem) FilterValue() string {
	return i.entry.Name
}

// themeDelegate renders entries with kind and current badges in the palette's colors.
type themeDelegate struct {
	list.DefaultDelegate
	sink *Sink
}

func newThemeDelegate(sink *Sink) themeDelegate {
	d := list.NewDefaultDelegate()
	return themeDelegate{DefaultDelegate: d, sink: sink}
}

// Render renders a list item.
func (d themeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(themeItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	styles := d.sink.Styles()
	titleStyle := styles.Normal
	if index == m.Index() {
		titleStyle = styles.Selected
	}

	badge := styles.Custom.Render(string(ti.entry.Kind))
	if ti.entry.IsPreset() {
		badge = styles.Preset.Render(string(ti.entry.Kind))
	}
	title := titleStyle.Render(ti.Title()) + " " + badge
	if ti.entry.Current {
		title += " " + styles.Current.Render("● current")
	}

	fmt.Fprint(w, title)
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, "  "+ti.Description())
}

// Options configures a Model.
type Options struct {
	Host             panel.Host
	ClipboardCommand string
	Logger           *slog.Logger
}

// New creates a new TUI model.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sink := NewSink()
	l := list.New(nil, newThemeDelegate(sink), 0, 0)
	l.Title = "Themes"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	searchInput := textinput.New()
	searchInput.Placeholder = "Search..."
	searchInput.CharLimit = 100

	m := Model{
		host:             opts.Host,
		panel:            panel.New(sink, logger),
		sink:             sink,
		logger:           logger,
		ctx:              context.Background(),
		clipboardCommand: opts.ClipboardCommand,
		mode:             ModeList,
		list:             l,
		searchInput:      searchInput,
		help:             help.New(),
		keys:             DefaultKeyMap(),
		events:           make(chan tea.Msg, 16),
	}
	m.panel.SetDispatcher(m.dispatchApply)
	return m
}

// Notify tells the model that the chezmoi config changed. It is safe to
// call from any goroutine and never blocks.
func (m Model) Notify() {
	select {
	case m.events <- configChangedMsg{}:
	default:
	}
}

type catalogMsg struct {
	catalog []theme.Descriptor
	err     error
}

type configMsg struct {
	cfg *palette.Config
	err error
}

type configChangedMsg struct{}

type applyFailedMsg struct {
	name string
	err  error
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchCatalog,
		m.fetchConfig,
		m.waitForEvent,
	)
}

func (m Model) fetchCatalog() tea.Msg {
	catalog, err := m.host.ThemeNames(m.ctx)
	return catalogMsg{catalog: catalog, err: err}
}

func (m Model) fetchConfig() tea.Msg {
	cfg, err := m.host.ReadConfig(m.ctx)
	return configMsg{cfg: cfg, err: err}
}

// waitForEvent waits for the next event from another goroutine.
func (m Model) waitForEvent() tea.Msg {
	return <-m.events
}

// dispatchApply runs the apply without waiting. Only failures are reported back.
func (m Model) dispatchApply(name string) {
	go func() {
		if err := m.host.ApplyTheme(m.ctx, name); err != nil {
			m.logger.Error("failed to apply theme", "theme", name, "error", err)
			select {
			case m.events <- applyFailedMsg{name: name, err: err}:
			default:
			}
		}
	}()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case catalogMsg:
		m.panel.SetCatalog(msg.catalog, msg.err)
		m.refreshItems()
		if msg.err != nil {
			return m, setStatus("Failed to load themes: "+msg.err.Error(), true)
		}
		return m, nil

	case configMsg:
		m.panel.SetConfig(msg.cfg, msg.err)
		m.refreshItems()
		if msg.err != nil {
			return m, setStatus("No active theme: "+msg.err.Error(), true)
		}
		return m, nil

	case configChangedMsg:
		return m, tea.Batch(m.fetchConfig, m.waitForEvent)

	case applyFailedMsg:
		return m, tea.Batch(
			setStatus(fmt.Sprintf("Failed to apply %s: %v", msg.name, msg.err), true),
			m.waitForEvent,
		)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, setStatus("Copy failed: "+msg.err.Error(), true)
		}
		return m, setStatus("Copied to clipboard", false)
	}

	var cmd tea.Cmd
	switch m.mode {
	case ModeList:
		m.list, cmd = m.list.Update(msg)
	case ModeSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return m, cmd
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

func setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeSearch {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			if m.mode == ModeHelp {
				m.mode = ModeList
			} else {
				m.mode = ModeHelp
			}
			return m, nil
		}
	} else if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeList:
		return m.handleListKey(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeList
		}
		return m, nil
	}

	return m, nil
}

// handleListKey handles keys in list mode.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Apply):
		return m, m.applySelected()

	case key.Matches(msg, m.keys.Copy):
		if item, ok := m.list.SelectedItem().(themeItem); ok {
			text, err := schemeYAML(item.entry.Descriptor)
			if err != nil {
				return m, setStatus("Failed to marshal YAML: "+err.Error(), true)
			}
			return m, m.copyToClipboard(text)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyJSON):
		if item, ok := m.list.SelectedItem().(themeItem); ok {
			text, err := descriptorJSON(item.entry.Descriptor)
			if err != nil {
				return m, setStatus("Failed to marshal JSON: "+err.Error(), true)
			}
			return m, m.copyToClipboard(text)
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		m.searchInput.SetValue(m.panel.Search())
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Back):
		if m.panel.Search() != "" {
			m.searchInput.SetValue("")
			m.panel.SetSearch("")
			m.refreshItems()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchConfig
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKey handles keys in search mode.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Esc leaves search mode and clears the term
		m.mode = ModeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.panel.SetSearch("")
		m.refreshItems()
		return m, nil

	case tea.KeyEnter:
		m.mode = ModeList
		m.searchInput.Blur()
		return m, m.applySelected()

	case tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Live filtering on each keystroke
	m.panel.SetSearch(m.searchInput.Value())
	m.refreshItems()

	return m, cmd
}

// applySelected hands the selected theme to the panel. The list changes
// only when the resulting config change is observed.
func (m Model) applySelected() tea.Cmd {
	item, ok := m.list.SelectedItem().(themeItem)
	if !ok {
		return nil
	}
	m.panel.Select(item.entry.Name)
	return setStatus("Applying "+item.entry.Name+"...", false)
}

// refreshItems rebuilds the list from the panel, keeping the selection index.
func (m *Model) refreshItems() {
	entries := m.panel.Visible()
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = themeItem{entry: e}
	}

	index := m.list.Index()
	m.list.SetItems(items)
	if index >= len(items) {
		index = len(items) - 1
	}
	if index >= 0 {
		m.list.Select(index)
	}
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: copyText(text, m.clipboardCommand)}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModeList:
		return m.viewList()
	case ModeSearch:
		return m.viewSearch()
	case ModeHelp:
		return m.viewHelp()
	default:
		return ""
	}
}

func (m Model) viewList() string {
	s := m.list.View()
	return s + "\n" + m.footer("list")
}

func (m Model) viewSearch() string {
	styles := m.sink.Styles()
	countStr := fmt.Sprintf("(%d matches)", len(m.list.Items()))

	searchBar := "Search: " + m.searchInput.View() + " " + styles.Muted.Render(countStr)

	return searchBar + "\n" + m.list.View() + "\n" + m.footer("search")
}

func (m Model) viewHelp() string {
	styles := m.sink.Styles()

	h := m.help
	h.ShowAll = true

	s := styles.Title.Render("Keyboard Shortcuts") + "\n\n"
	s += h.View(m.keys) + "\n\n"
	s += styles.Muted.Render("Press ? or esc to return")
	return s
}

// footer shows the status message if any, otherwise a keybind bar.
func (m Model) footer(mode string) string {
	styles := m.sink.Styles()
	if m.statusMsg != "" {
		if m.statusErr {
			return styles.Error.Render(m.statusMsg)
		}
		return styles.Status.Render(m.statusMsg)
	}
	return m.buildKeybindBar(m.width, mode)
}

// currentLabel describes the active theme for the header.
func (m Model) currentLabel() string {
	cfg := m.panel.Config()
	if cfg == nil {
		return "no active theme"
	}
	return "current: " + cfg.ThemeName
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
// mode determines which keybinds are shown: "list", "search"
func (m Model) buildKeybindBar(width int, mode string) string {
	styles := m.sink.Styles()

	var binds []keybind
	switch mode {
	case "list":
		binds = []keybind{
			{"q", "quit", 1},
			{"enter", "apply", 2},
			{"/", "search", 3},
			{"?", "help", 4},
			{"c", "copy", 5},
			{"r", "reload", 6},
		}
	case "search":
		binds = []keybind{
			{"enter", "apply", 1},
			{"esc", "clear", 2},
			{"↑/↓", "navigate", 3},
		}
	}

	const separator = "  "
	status := m.currentLabel()
	result := styles.Muted.Render(status)
	plainLen := len(status)
	for _, b := range binds {
		item := styles.Key.Render(b.key) + " " + styles.Muted.Render(b.desc)
		plainItem := b.key + " " + b.desc
		if width > 0 && plainLen+len(separator)+len(plainItem) > width {
			break
		}
		result += separator + item
		plainLen += len(separator) + len(plainItem)
	}

	return result
}

// RunOptions configures the TUI.
type RunOptions struct {
	Host      panel.Host
	Config    *config.Config
	WatchPath string // chezmoi.toml to watch (empty = no watching)
	Logger    *slog.Logger
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var clipboard string
	if opts.Config != nil {
		clipboard = opts.Config.Clipboard.Command
	}
	m := New(Options{Host: opts.Host, ClipboardCommand: clipboard, Logger: logger})

	var watcher *watch.FileWatcher
	if opts.WatchPath != "" {
		var err error
		watcher, err = watch.NewFileWatcher(opts.WatchPath, m.Notify, logger)
		if err != nil {
			logger.Warn("failed to create file watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start file watcher", "path", opts.WatchPath, "error", err)
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()

	if watcher != nil {
		_ = watcher.Stop()
	}

	return err
}
