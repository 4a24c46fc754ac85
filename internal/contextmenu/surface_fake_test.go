package contextmenu

type fakeBinding struct {
	namespace string
	handler   Handler
}

type fakeNode struct {
	id       int
	kind     NodeKind
	text     string
	parent   *fakeNode
	children []*fakeNode
	bounds   Rect
	z        int
	handlers map[EventType][]fakeBinding
	removed  bool
}

func (n *fakeNode) NodeID() int { return n.id }

// fakeSurface records every structural change so tests can assert on the
// resulting node tree.
type fakeSurface struct {
	nextID   int
	nodes    []*fakeNode
	viewport Size
	document Size
	// menuSize, when set, overrides the natural size of every menu.
	menuSize *Size
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{viewport: Size{Width: 80, Height: 24}, document: Size{Width: 80, Height: 24}}
}

func (s *fakeSurface) element(r Rect) *fakeNode {
	s.nextID++
	n := &fakeNode{id: s.nextID, kind: KindElement, bounds: r}
	s.nodes = append(s.nodes, n)
	return n
}

func (s *fakeSurface) CreateNode(spec NodeSpec, parent Node) Node {
	s.nextID++
	n := &fakeNode{id: s.nextID, kind: spec.Kind, text: spec.Text}
	if parent != nil {
		p := parent.(*fakeNode)
		n.parent = p
		p.children = append(p.children, n)
	}
	s.nodes = append(s.nodes, n)
	return n
}

func (s *fakeSurface) RemoveNode(n Node) {
	fn := n.(*fakeNode)
	fn.removed = true
	fn.handlers = nil
	for _, c := range fn.children {
		s.RemoveNode(c)
	}
}

func (s *fakeSurface) SetBounds(n Node, r Rect) { n.(*fakeNode).bounds = r }

func (s *fakeSurface) SetPosition(n Node, p Point) {
	fn := n.(*fakeNode)
	fn.bounds.X, fn.bounds.Y = p.X, p.Y
}

func (s *fakeSurface) SetZIndex(n Node, z int) { n.(*fakeNode).z = z }

func (s *fakeSurface) NaturalSize(n Node) Size {
	fn := n.(*fakeNode)
	if fn.kind == KindMenu && s.menuSize != nil {
		return *s.menuSize
	}
	width := 0
	for _, c := range fn.children {
		if len(c.text)+2 > width {
			width = len(c.text) + 2
		}
	}
	return Size{Width: width, Height: len(fn.children)}
}

func (s *fakeSurface) Bounds(n Node) Rect { return n.(*fakeNode).bounds }

func (s *fakeSurface) Viewport() Size { return s.viewport }

func (s *fakeSurface) Document() Size { return s.document }

func (s *fakeSurface) On(n Node, t EventType, namespace string, h Handler) {
	fn := n.(*fakeNode)
	if fn.handlers == nil {
		fn.handlers = make(map[EventType][]fakeBinding)
	}
	fn.handlers[t] = append(fn.handlers[t], fakeBinding{namespace: namespace, handler: h})
}

func (s *fakeSurface) Off(n Node, namespace string) {
	fn := n.(*fakeNode)
	for t, bindings := range fn.handlers {
		kept := bindings[:0]
		for _, b := range bindings {
			if b.namespace != namespace {
				kept = append(kept, b)
			}
		}
		fn.handlers[t] = kept
	}
}

// fire delivers an event to n's handlers and reports whether any handled it.
func (s *fakeSurface) fire(n Node, t EventType, p Point) bool {
	fn := n.(*fakeNode)
	handled := false
	for _, b := range append([]fakeBinding(nil), fn.handlers[t]...) {
		if b.handler(Event{Type: t, Point: p, Target: n}) {
			handled = true
		}
	}
	return handled
}

func (s *fakeSurface) live(kind NodeKind) []*fakeNode {
	var out []*fakeNode
	for _, n := range s.nodes {
		if n.kind == kind && !n.removed {
			out = append(out, n)
		}
	}
	return out
}

func (s *fakeSurface) handlerCount(n Node) int {
	total := 0
	for _, bindings := range n.(*fakeNode).handlers {
		total += len(bindings)
	}
	return total
}
