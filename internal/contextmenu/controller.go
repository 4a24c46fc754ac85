package contextmenu

// MenuHandle is the menu currently on screen. At most one exists per Manager.
type MenuHandle struct {
	node     Node
	title    Node
	rows     []Node
	spec     MenuSpec
	owner    *Zone
	position Point
	size     Size
	closed   bool
}

// Node returns the menu's root node.
func (h *MenuHandle) Node() Node { return h.node }

// Title returns the title row, which exists even when the title is empty.
func (h *MenuHandle) Title() Node { return h.title }

// Rows returns the item rows, in MenuSpec.Items order.
func (h *MenuHandle) Rows() []Node { return append([]Node(nil), h.rows...) }

func (h *MenuHandle) Spec() MenuSpec { return h.spec }

func (h *MenuHandle) Position() Point { return h.position }

func (h *MenuHandle) Size() Size { return h.size }

// Dismissed reports whether the menu has been taken off screen.
func (h *MenuHandle) Dismissed() bool { return h.closed }

// Owner returns the trigger element whose zone opened the menu, or nil when
// the menu was shown directly.
func (h *MenuHandle) Owner() Node {
	if h.owner == nil {
		return nil
	}
	return h.owner.element
}

// Show opens a menu for spec at anchor. Any menu already on screen is
// dismissed first, so two menus never coexist. A spec with an empty item
// label is rejected with ErrInvalidSpec and leaves the current menu alone.
func (m *Manager) Show(spec MenuSpec, anchor Point) (*MenuHandle, error) {
	spec = withDefaults(spec)
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return m.show(spec, anchor, nil), nil
}

func (m *Manager) show(spec MenuSpec, anchor Point, owner *Zone) *MenuHandle {
	m.dismiss(ReasonReplaced)

	r := renderer{surface: m.surface, zIndex: m.zMenu, offsetX: m.offsetX}
	out := r.render(spec, anchor)
	h := &MenuHandle{
		node:     out.menu,
		title:    out.title,
		rows:     out.rows,
		spec:     spec,
		owner:    owner,
		position: out.position,
		size:     out.size,
	}
	for i, row := range out.rows {
		m.surface.On(row, EventPrimaryClick, Namespace, m.itemHandler(spec.Items[i]))
	}
	m.current = h
	if owner != nil {
		owner.live = h
	}

	m.logger.Printf("contextmenu: show %q at (%d,%d) size %dx%d", spec.Title, h.position.X, h.position.Y, h.size.Width, h.size.Height)
	m.observer.MenuShown()
	return h
}

// itemHandler runs the item's action and then dismisses whatever menu is
// current, including one the action opened. The dismissal is deferred so a
// panicking action cannot leave a menu on screen.
func (m *Manager) itemHandler(item MenuItemSpec) Handler {
	return func(ev Event) bool {
		defer m.dismiss(ReasonItem)
		if item.Action != nil {
			m.observer.ItemInvoked()
			item.Action(item.payload(ev))
		}
		return true
	}
}

// Dismiss closes the current menu. It is a no-op when nothing is shown and
// safe to call from inside an item action.
func (m *Manager) Dismiss() {
	m.dismiss(ReasonAPI)
}

func (m *Manager) dismiss(reason DismissReason) {
	h := m.current
	if h == nil {
		return
	}
	// Clear the slot before touching the surface so re-entrant calls see
	// nothing to dismiss.
	m.current = nil
	h.closed = true
	if h.owner != nil && h.owner.live == h {
		h.owner.live = nil
	}
	m.surface.RemoveNode(h.node)

	m.logger.Printf("contextmenu: dismiss %q (%s)", h.spec.Title, reason)
	m.observer.MenuDismissed(reason)
}
