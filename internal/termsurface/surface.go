// Package termsurface implements contextmenu.Surface for terminal programs
// built on bubbletea. Nodes live on a cell grid; menus are drawn with
// lipgloss and composited over the host's rendered view.
package termsurface

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/singleton-contextmenu/internal/contextmenu"
)

type binding struct {
	namespace string
	handler   contextmenu.Handler
}

// Node is a surface node. Host elements are created with AddElement; the
// rest are created by the menu system.
type Node struct {
	id       int
	seq      int
	kind     contextmenu.NodeKind
	name     string
	text     string
	parent   *Node
	children []*Node
	bounds   contextmenu.Rect
	sized    bool
	z        int
	handlers map[contextmenu.EventType][]binding
	removed  bool
}

func (n *Node) NodeID() int { return n.id }

// Name returns the name given to AddElement.
func (n *Node) Name() string { return n.name }

func (n *Node) Kind() contextmenu.NodeKind { return n.kind }

// Text returns the row label for title and item nodes.
func (n *Node) Text() string { return n.text }

// Removed reports whether n has been taken off the surface.
func (n *Node) Removed() bool { return n.removed }

// Surface is a terminal-backed contextmenu.Surface. It is not safe for
// concurrent use; drive it from the bubbletea Update loop.
type Surface struct {
	styles    Styles
	top       []*Node
	nextID    int
	nextSeq   int
	viewport  contextmenu.Size
	document  contextmenu.Size
	docPinned bool
}

// New creates an empty surface.
func New(styles Styles) *Surface {
	return &Surface{styles: styles}
}

// Resize records the terminal size. The document follows the viewport unless
// it was pinned with SetDocument.
func (s *Surface) Resize(width, height int) {
	s.viewport = contextmenu.Size{Width: width, Height: height}
}

// SetDocument pins the document extent independently of the viewport.
func (s *Surface) SetDocument(width, height int) {
	s.document = contextmenu.Size{Width: width, Height: height}
	s.docPinned = true
}

// AddElement registers a host-drawn region that can be attached as a zone.
func (s *Surface) AddElement(name string, r contextmenu.Rect) *Node {
	n := s.newNode(contextmenu.KindElement, "")
	n.name = name
	n.bounds = r
	n.sized = true
	s.top = append(s.top, n)
	return n
}

// MoveElement changes an element's geometry. Zones attached to it keep their
// captured geometry until the manager is asked to resync.
func (s *Surface) MoveElement(n *Node, r contextmenu.Rect) {
	n.bounds = r
	n.sized = true
}

func (s *Surface) newNode(kind contextmenu.NodeKind, text string) *Node {
	s.nextID++
	s.nextSeq++
	return &Node{id: s.nextID, seq: s.nextSeq, kind: kind, text: text}
}

func (s *Surface) CreateNode(spec contextmenu.NodeSpec, parent contextmenu.Node) contextmenu.Node {
	n := s.newNode(spec.Kind, spec.Text)
	if parent == nil {
		s.top = append(s.top, n)
		return n
	}
	p := parent.(*Node)
	n.parent = p
	p.children = append(p.children, n)
	return n
}

func (s *Surface) RemoveNode(cn contextmenu.Node) {
	n := cn.(*Node)
	if n.removed {
		return
	}
	markRemoved(n)
	if n.parent != nil {
		n.parent.children = without(n.parent.children, n)
		return
	}
	s.top = without(s.top, n)
}

func markRemoved(n *Node) {
	n.removed = true
	n.handlers = nil
	for _, c := range n.children {
		markRemoved(c)
	}
}

func without(nodes []*Node, n *Node) []*Node {
	out := nodes[:0]
	for _, c := range nodes {
		if c != n {
			out = append(out, c)
		}
	}
	return out
}

func (s *Surface) SetBounds(cn contextmenu.Node, r contextmenu.Rect) {
	n := cn.(*Node)
	n.bounds = r
	n.sized = true
}

func (s *Surface) SetPosition(cn contextmenu.Node, p contextmenu.Point) {
	n := cn.(*Node)
	n.bounds.X, n.bounds.Y = p.X, p.Y
}

func (s *Surface) SetZIndex(cn contextmenu.Node, z int) { cn.(*Node).z = z }

func (s *Surface) NaturalSize(cn contextmenu.Node) contextmenu.Size {
	n := cn.(*Node)
	switch n.kind {
	case contextmenu.KindMenu:
		block := s.menuBlock(n)
		return contextmenu.Size{Width: lipgloss.Width(block), Height: lipgloss.Height(block)}
	case contextmenu.KindTitle, contextmenu.KindItem:
		return contextmenu.Size{Width: lipgloss.Width(s.rowStyle(n).Render(n.text)), Height: 1}
	default:
		return contextmenu.Size{Width: n.bounds.Width, Height: n.bounds.Height}
	}
}

func (s *Surface) Bounds(cn contextmenu.Node) contextmenu.Rect {
	return s.absBounds(cn.(*Node))
}

func (s *Surface) absBounds(n *Node) contextmenu.Rect {
	if n.parent != nil && n.parent.kind == contextmenu.KindMenu {
		menu := s.absBounds(n.parent)
		left, top := s.styles.frame()
		idx := 0
		for i, c := range n.parent.children {
			if c == n {
				idx = i
				break
			}
		}
		return contextmenu.Rect{
			X:      menu.X + left,
			Y:      menu.Y + top + idx,
			Width:  menu.Width - s.styles.Menu.GetHorizontalFrameSize(),
			Height: 1,
		}
	}
	if n.kind == contextmenu.KindMenu && !n.sized {
		size := s.NaturalSize(n)
		return contextmenu.Rect{X: n.bounds.X, Y: n.bounds.Y, Width: size.Width, Height: size.Height}
	}
	return n.bounds
}

func (s *Surface) Viewport() contextmenu.Size { return s.viewport }

func (s *Surface) Document() contextmenu.Size {
	if s.docPinned {
		return s.document
	}
	return s.viewport
}

func (s *Surface) On(cn contextmenu.Node, t contextmenu.EventType, namespace string, h contextmenu.Handler) {
	n := cn.(*Node)
	if n.removed {
		return
	}
	if n.handlers == nil {
		n.handlers = make(map[contextmenu.EventType][]binding)
	}
	n.handlers[t] = append(n.handlers[t], binding{namespace: namespace, handler: h})
}

func (s *Surface) Off(cn contextmenu.Node, namespace string) {
	n := cn.(*Node)
	for t, bindings := range n.handlers {
		kept := bindings[:0]
		for _, b := range bindings {
			if b.namespace != namespace {
				kept = append(kept, b)
			}
		}
		if len(kept) == 0 {
			delete(n.handlers, t)
			continue
		}
		n.handlers[t] = kept
	}
}

// Nodes returns the live nodes of the given kind in stacking order.
func (s *Surface) Nodes(kind contextmenu.NodeKind) []*Node {
	var out []*Node
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n.kind == kind {
				out = append(out, n)
			}
			walk(n.children)
		}
	}
	walk(s.stacked())
	return out
}

// stacked returns top-level nodes from bottom to top.
func (s *Surface) stacked() []*Node {
	nodes := append([]*Node(nil), s.top...)
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].z != nodes[j].z {
			return nodes[i].z < nodes[j].z
		}
		return nodes[i].seq < nodes[j].seq
	})
	return nodes
}

// eventType maps a bubbletea mouse message to a menu event.
func eventType(msg tea.MouseMsg) (contextmenu.EventType, bool) {
	if msg.Action != tea.MouseActionPress {
		return "", false
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		return contextmenu.EventPrimaryClick, true
	case tea.MouseButtonRight:
		return contextmenu.EventSecondaryClick, true
	default:
		return "", false
	}
}

// HitTest returns the deepest node under p on the topmost layer, or nil.
func (s *Surface) HitTest(p contextmenu.Point) *Node {
	layers := s.stacked()
	for i := len(layers) - 1; i >= 0; i-- {
		n := layers[i]
		if !s.absBounds(n).Contains(p) {
			continue
		}
		return s.deepest(n, p)
	}
	return nil
}

func (s *Surface) deepest(n *Node, p contextmenu.Point) *Node {
	for i := len(n.children) - 1; i >= 0; i-- {
		c := n.children[i]
		if s.absBounds(c).Contains(p) {
			return s.deepest(c, p)
		}
	}
	return n
}

// Dispatch delivers a mouse press to the node under the pointer and then to
// its ancestors until a handler reports the event handled. It returns
// whether the event was handled; hosts fall back to their own behaviour
// otherwise.
func (s *Surface) Dispatch(msg tea.MouseMsg) bool {
	t, ok := eventType(msg)
	if !ok {
		return false
	}
	p := contextmenu.Point{X: msg.X, Y: msg.Y}
	target := s.HitTest(p)
	if target == nil {
		return false
	}
	ev := contextmenu.Event{Type: t, Point: p, Target: target, Raw: msg}
	for n := target; n != nil; n = n.parent {
		if n.removed && n != target {
			break
		}
		for _, b := range append([]binding(nil), n.handlers[t]...) {
			if b.handler(ev) {
				return true
			}
		}
	}
	return false
}
