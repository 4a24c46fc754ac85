// Package contextmenu keeps at most one popup context menu open across any
// number of trigger zones.
//
// A Manager owns all shared state: the currently shown menu, the registered
// zones and the dismissal overlay that exists while at least one zone is
// registered. Every method must be called from the host's event loop; the
// Manager holds no locks. Hosts that need to attach or detach from another
// goroutine marshal the call onto the loop first (for bubbletea, through
// Program.Send).
package contextmenu

import "fmt"

// Namespace scopes every handler this package registers on a Surface.
const Namespace = "singleton_contextmenu"

const (
	DefaultZIndexWatcher = 10
	DefaultZIndexMenu    = DefaultZIndexWatcher + 1
	DefaultZIndexOverlay = DefaultZIndexWatcher - 10
	DefaultAnchorOffsetX = 5
)

// Logger receives one line per lifecycle change.
type Logger interface {
	Printf(format string, args ...any)
}

// DismissReason tells an Observer why a menu went away.
type DismissReason string

const (
	ReasonItem      DismissReason = "item"
	ReasonOutside   DismissReason = "outside"
	ReasonZoneClick DismissReason = "zone-click"
	ReasonReplaced  DismissReason = "replaced"
	ReasonDetach    DismissReason = "detach"
	ReasonAPI       DismissReason = "api"
)

// Observer is notified about menu and zone lifecycle events.
type Observer interface {
	MenuShown()
	MenuDismissed(reason DismissReason)
	ItemInvoked()
	ZonesChanged(live int)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

type nopObserver struct{}

func (nopObserver) MenuShown() {}

func (nopObserver) MenuDismissed(DismissReason) {}

func (nopObserver) ItemInvoked() {}

func (nopObserver) ZonesChanged(int) {}

// Option customizes Manager construction.
type Option func(*Manager)

// WithZIndexes overrides the stacking order of watchers, menus and the
// dismissal overlay.
func WithZIndexes(watcher, menu, overlay int) Option {
	return func(m *Manager) {
		m.zWatcher = watcher
		m.zMenu = menu
		m.zOverlay = overlay
	}
}

// WithAnchorOffset sets how far right of the pointer a menu opens.
func WithAnchorOffset(x int) Option {
	return func(m *Manager) { m.offsetX = x }
}

// WithLogger routes lifecycle lines to l.
func WithLogger(l Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithObserver reports lifecycle events to o.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		if o != nil {
			m.observer = o
		}
	}
}

// Manager is the singleton menu controller together with its zone registry.
type Manager struct {
	surface Surface

	zWatcher int
	zMenu    int
	zOverlay int
	offsetX  int

	logger   Logger
	observer Observer

	current *MenuHandle
	overlay *dismissalOverlay
	zones   map[Node]*Zone
}

// New returns a Manager in its initial state: no menu, no zones, no overlay.
func New(surface Surface, opts ...Option) *Manager {
	m := &Manager{
		surface:  surface,
		zWatcher: DefaultZIndexWatcher,
		zMenu:    DefaultZIndexMenu,
		zOverlay: DefaultZIndexOverlay,
		offsetX:  DefaultAnchorOffsetX,
		logger:   nopLogger{},
		observer: nopObserver{},
		zones:    make(map[Node]*Zone),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LiveZones returns the number of registered zones.
func (m *Manager) LiveZones() int { return len(m.zones) }

// OverlayPresent reports whether the dismissal overlay exists.
func (m *Manager) OverlayPresent() bool { return m.overlay != nil }

// Current returns the menu on screen, or nil.
func (m *Manager) Current() *MenuHandle { return m.current }

// Invoke is the name-based entry point: "init" (or "") attaches with an
// optional MenuSpec argument, "detach" detaches.
func (m *Manager) Invoke(method string, element Node, args ...any) error {
	switch method {
	case "", "init":
		var spec MenuSpec
		if len(args) > 0 {
			s, ok := args[0].(MenuSpec)
			if !ok {
				return fmt.Errorf("%w: %q expects a MenuSpec, got %T", ErrInvalidSpec, method, args[0])
			}
			spec = s
		}
		return m.Attach(element, spec)
	case "detach":
		m.Detach(element)
		return nil
	default:
		return &UnknownMethodError{Method: method}
	}
}
