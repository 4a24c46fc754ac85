package contextmenu

import (
	"errors"
	"fmt"
)

// ErrNotAttached is returned by Resync for an element without a zone.
var ErrNotAttached = errors.New("contextmenu: not attached")

// Zone is a trigger element registered with a Manager.
type Zone struct {
	element Node
	watcher Node
	spec    MenuSpec
	bounds  Rect
	live    *MenuHandle
}

// Attach registers element as a trigger zone for spec. Geometry is captured
// from the element now and is not tracked afterwards; see Resync. Attaching
// an element that already has a zone fails with AlreadyAttachedError and
// leaves the existing zone untouched.
func (m *Manager) Attach(element Node, spec MenuSpec) error {
	if _, ok := m.zones[element]; ok {
		return &AlreadyAttachedError{Element: element}
	}
	spec = withDefaults(spec)
	if err := spec.validate(); err != nil {
		return err
	}

	z := &Zone{element: element, spec: spec, bounds: m.surface.Bounds(element)}
	z.watcher = m.surface.CreateNode(NodeSpec{Kind: KindWatcher}, nil)
	m.surface.SetZIndex(z.watcher, m.zWatcher)
	m.surface.SetBounds(z.watcher, z.bounds)
	m.surface.On(z.watcher, EventSecondaryClick, Namespace, func(ev Event) bool {
		m.show(z.spec, ev.Point, z)
		return true
	})
	m.surface.On(z.watcher, EventPrimaryClick, Namespace, func(Event) bool {
		m.dismiss(ReasonZoneClick)
		return false
	})

	m.zones[element] = z
	if len(m.zones) == 1 {
		m.createOverlay()
	}
	m.logger.Printf("contextmenu: attach element %d (%d zones)", element.NodeID(), len(m.zones))
	m.observer.ZonesChanged(len(m.zones))
	return nil
}

// Detach removes element's zone. Detaching an element that has no zone is a
// no-op. The zone's menu is dismissed when it is the one on screen, and the
// overlay goes away with the last zone.
func (m *Manager) Detach(element Node) {
	z, ok := m.zones[element]
	if !ok {
		return
	}
	if z.live != nil && z.live == m.current {
		m.dismiss(ReasonDetach)
	}
	m.surface.Off(z.watcher, Namespace)
	m.surface.RemoveNode(z.watcher)
	delete(m.zones, element)

	m.logger.Printf("contextmenu: detach element %d (%d zones)", element.NodeID(), len(m.zones))
	if len(m.zones) == 0 {
		m.destroyOverlay()
	}
	m.observer.ZonesChanged(len(m.zones))
}

// Attached returns the spec captured for element.
func (m *Manager) Attached(element Node) (MenuSpec, bool) {
	z, ok := m.zones[element]
	if !ok {
		return MenuSpec{}, false
	}
	return z.spec, true
}

// ZoneBounds returns the geometry captured for element's zone.
func (m *Manager) ZoneBounds(element Node) (Rect, bool) {
	z, ok := m.zones[element]
	if !ok {
		return Rect{}, false
	}
	return z.bounds, true
}

// Resync re-reads element's current bounds into its zone.
func (m *Manager) Resync(element Node) error {
	z, ok := m.zones[element]
	if !ok {
		return fmt.Errorf("%w: element %d", ErrNotAttached, element.NodeID())
	}
	z.bounds = m.surface.Bounds(element)
	m.surface.SetBounds(z.watcher, z.bounds)
	return nil
}
