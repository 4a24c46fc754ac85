package contextmenu

// dismissalOverlay is the invisible full-document layer below every watcher
// that closes the current menu when clicked.
type dismissalOverlay struct {
	node Node
}

func (m *Manager) createOverlay() {
	if m.overlay != nil {
		return
	}
	node := m.surface.CreateNode(NodeSpec{Kind: KindOverlay}, nil)
	m.surface.SetZIndex(node, m.zOverlay)
	doc := m.surface.Document()
	m.surface.SetBounds(node, Rect{Width: doc.Width, Height: doc.Height})
	m.surface.On(node, EventSecondaryClick, Namespace, func(Event) bool {
		m.dismiss(ReasonOutside)
		return true
	})
	m.surface.On(node, EventPrimaryClick, Namespace, func(Event) bool {
		m.dismiss(ReasonOutside)
		return false
	})
	m.overlay = &dismissalOverlay{node: node}
	m.logger.Printf("contextmenu: overlay created %dx%d", doc.Width, doc.Height)
}

func (m *Manager) destroyOverlay() {
	if m.overlay == nil {
		return
	}
	m.surface.Off(m.overlay.node, Namespace)
	m.surface.RemoveNode(m.overlay.node)
	m.overlay = nil
	m.logger.Printf("contextmenu: overlay removed")
}

// RefreshOverlay resizes the dismissal overlay to the current document size.
// The overlay is otherwise sized once, when it is created.
func (m *Manager) RefreshOverlay() {
	if m.overlay == nil {
		return
	}
	doc := m.surface.Document()
	m.surface.SetBounds(m.overlay.node, Rect{Width: doc.Width, Height: doc.Height})
}
