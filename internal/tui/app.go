// internal/tui/app.go
//
// This is the demo TUI for the singleton context menu. It uses bubbletea,
// which follows The Elm Architecture:
//
// 1. Model: the panels, the surface and the menu manager
// 2. Update: mouse presses go to the surface, which routes them to zones,
//    menus and the dismissal overlay
// 3. View: panels are drawn as boxes and the open menu is composited on top
//
// Every call into the menu manager happens inside Update, so the manager
// never needs locking. Other goroutines send AttachMsg / DetachMsg through
// Program.Send instead of calling the manager directly.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/singleton-contextmenu/internal/config"
	"github.com/kingrea/singleton-contextmenu/internal/contextmenu"
	"github.com/kingrea/singleton-contextmenu/internal/logging"
	"github.com/kingrea/singleton-contextmenu/internal/termsurface"
)

const (
	headerHeight = 2
	panelHeight  = 3
	panelGap     = 1
	maxPanelW    = 48
	minPanelW    = 12
	activityRows = 6
)

// AttachMsg asks the app to attach the named panel's menu.
type AttachMsg struct{ Panel string }

// DetachMsg asks the app to detach the named panel's menu.
type DetachMsg struct{ Panel string }

type panel struct {
	cfg      config.PanelConfig
	element  *termsurface.Node
	attached bool
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogger writes menu activity to l.
func WithLogger(l *logging.Logger) AppOption {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithObserver reports menu lifecycle events to o, typically a metrics
// collector.
func WithObserver(o contextmenu.Observer) AppOption {
	return func(a *App) { a.observer = o }
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config   *config.Config
	logger   *logging.Logger
	observer contextmenu.Observer

	surface *termsurface.Surface
	menus   *contextmenu.Manager
	panels  []*panel

	keys keyMap
	help help.Model

	width     int
	height    int
	laidOut   bool
	quitting  bool
	statusMsg string
	err       error
}

// NewApp creates a new App instance. Panels are attached on the first
// window size message, once their geometry is known.
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	a := &App{
		config: cfg,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	theme := cfg.Project.Theme
	a.surface = termsurface.New(termsurface.NewStyles(termsurface.Theme{
		Accent: theme.Accent,
		Text:   theme.Text,
		Border: theme.Border,
		Muted:  theme.Muted,
	}))
	layers := cfg.Project.Layers
	a.menus = contextmenu.New(a.surface,
		contextmenu.WithZIndexes(layers.Watcher, layers.Menu, layers.Overlay),
		contextmenu.WithAnchorOffset(cfg.AnchorOffset()),
		contextmenu.WithLogger(a.logger),
		contextmenu.WithObserver(a.observer),
	)
	for _, pc := range cfg.Panels() {
		a.panels = append(a.panels, &panel{cfg: pc})
	}
	a.statusMsg = "Right-click a panel to open its menu"
	return a
}

// Menus exposes the menu manager, mainly for tests.
func (a *App) Menus() *contextmenu.Manager { return a.menus }

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.surface.Resize(msg.Width, msg.Height)
		a.layout()
		return a, nil

	case tea.MouseMsg:
		a.surface.Dispatch(msg)
		if a.quitting {
			return a, tea.Quit
		}
		return a, nil

	case AttachMsg:
		if p := a.panel(msg.Panel); p != nil {
			a.attach(p)
		}
		return a, nil

	case DetachMsg:
		if p := a.panel(msg.Panel); p != nil {
			a.detach(p)
		}
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Dismiss):
			a.menus.Dismiss()
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
		}
	}
	return a, nil
}

// layout places one element per panel. The first call attaches every panel;
// later calls move the elements and explicitly resync the zones, since the
// menu manager never tracks geometry on its own.
func (a *App) layout() {
	for i, p := range a.panels {
		r := a.panelRect(i)
		if p.element == nil {
			p.element = a.surface.AddElement(p.cfg.Name, r)
			continue
		}
		a.surface.MoveElement(p.element, r)
		if p.attached {
			if err := a.menus.Resync(p.element); err != nil {
				a.err = err
			}
		}
	}
	if !a.laidOut {
		a.laidOut = true
		a.attachAll()
		return
	}
	a.menus.RefreshOverlay()
}

func (a *App) panelWidth() int {
	w := a.width - 4
	if w > maxPanelW {
		w = maxPanelW
	}
	if w < minPanelW {
		w = minPanelW
	}
	return w
}

func (a *App) panelRect(i int) contextmenu.Rect {
	return contextmenu.Rect{
		X:      2,
		Y:      headerHeight + i*(panelHeight+panelGap),
		Width:  a.panelWidth(),
		Height: panelHeight,
	}
}

func (a *App) panel(name string) *panel {
	for _, p := range a.panels {
		if p.cfg.Name == name {
			return p
		}
	}
	return nil
}

func (a *App) attachAll() {
	for _, p := range a.panels {
		if !p.attached {
			a.attach(p)
		}
	}
}

func (a *App) attach(p *panel) {
	if p.element == nil {
		return
	}
	if err := a.menus.Attach(p.element, a.menuSpec(p)); err != nil {
		a.err = err
		a.logf("attach %s: %v", p.cfg.Name, err)
		return
	}
	p.attached = true
	a.err = nil
}

func (a *App) detach(p *panel) {
	if p.element == nil {
		return
	}
	a.menus.Detach(p.element)
	p.attached = false
	a.setStatus("%s detached", p.cfg.Name)
}

func (a *App) menuSpec(p *panel) contextmenu.MenuSpec {
	items := make([]contextmenu.MenuItemSpec, 0, len(p.cfg.Menu.Items))
	for _, it := range p.cfg.Menu.Items {
		items = append(items, contextmenu.MenuItemSpec{
			Label:      it.Label,
			Action:     a.action(p, it),
			CustomData: it.Data,
		})
	}
	return contextmenu.MenuSpec{Title: p.cfg.Menu.Title, Items: items}
}

func (a *App) action(p *panel, it config.ItemConfig) contextmenu.Action {
	switch it.Action {
	case config.ActionEcho:
		return func(payload any) {
			a.setStatus("%s › %s: %s", p.cfg.Name, it.Label, describePayload(payload))
		}
	case config.ActionDetach:
		return func(any) { a.detach(p) }
	case config.ActionReattach:
		return func(any) {
			a.attachAll()
			a.setStatus("all panels attached")
		}
	case config.ActionQuit:
		return func(any) { a.quitting = true }
	default:
		return nil
	}
}

func describePayload(payload any) string {
	if ev, ok := payload.(contextmenu.Event); ok {
		return fmt.Sprintf("click at (%d,%d)", ev.Point.X, ev.Point.Y)
	}
	return fmt.Sprint(payload)
}

func (a *App) setStatus(format string, args ...any) {
	a.statusMsg = fmt.Sprintf(format, args...)
	a.logf("%s", a.statusMsg)
}

func (a *App) logf(format string, args ...any) {
	if a.logger != nil {
		a.logger.Printf(format, args...)
	}
}

// View renders the current state to a string.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	var b strings.Builder
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		Render("☰ CONTEXT MENUS")
	b.WriteString("  " + header + "\n\n")

	for _, p := range a.panels {
		for _, line := range strings.Split(a.renderPanel(p), "\n") {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString(strings.Repeat("\n", panelGap))
	}

	b.WriteString("  " + a.renderStatus() + "\n")
	if activity := a.renderActivity(); activity != "" {
		for _, line := range strings.Split(activity, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("  " + a.help.View(a.keys))

	return a.surface.Render(b.String())
}

func (a *App) renderPanel(p *panel) string {
	border := lipgloss.Color(a.config.Project.Theme.Border)
	text := p.cfg.Text
	if !p.attached {
		border = lipgloss.Color(a.config.Project.Theme.Muted)
		text += " (detached)"
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(a.panelWidth() - 2).
		MaxHeight(panelHeight).
		Padding(0, 1).
		Render(text)
}

func (a *App) renderStatus() string {
	zones := fmt.Sprintf("%d zones", a.menus.LiveZones())
	if a.err != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render(a.err.Error()) + " · " + zones
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Render(a.statusMsg) + " · " + zones
}

func (a *App) renderActivity() string {
	lines := a.logger.Tail(activityRows)
	if len(lines) == 0 {
		return ""
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("ACTIVITY")
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}
