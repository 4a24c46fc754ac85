package contextmenu

// Point is a position in document (page) coordinates.
type Point struct {
	X int
	Y int
}

// Size is a width/height pair in document units.
type Size struct {
	Width  int
	Height int
}

// Rect is an axis-aligned rectangle in document coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether p falls inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Origin returns the top-left corner of r.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// EventType names the input events the menu system listens for.
type EventType string

const (
	EventSecondaryClick EventType = "contextmenu"
	EventPrimaryClick   EventType = "click"
)

// Event is the input-event data a Surface delivers to a Handler. It is also
// the payload an item action receives when the item carries no custom data.
type Event struct {
	Type   EventType
	Point  Point
	Target Node
	// Raw holds the host event (for example a tea.MouseMsg).
	Raw any
}

// Handler reacts to an input event. Returning true marks the event handled,
// which suppresses any native behaviour the host would otherwise apply.
type Handler func(Event) bool

// Node is an opaque handle to a node owned by a Surface. Implementations must
// use comparable dynamic types (typically pointers) because the registry keys
// zones by node identity.
type Node interface {
	NodeID() int
}

// NodeKind tells the Surface what a created node represents.
type NodeKind int

const (
	KindElement NodeKind = iota
	KindWatcher
	KindOverlay
	KindMenu
	KindTitle
	KindItem
)

func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindWatcher:
		return "watcher"
	case KindOverlay:
		return "overlay"
	case KindMenu:
		return "menu"
	case KindTitle:
		return "title"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// NodeSpec describes a node to create.
type NodeSpec struct {
	Kind NodeKind
	Text string
}

// Surface is the rendering and input collaborator the menu system drives.
// All methods are called from the host's event loop.
type Surface interface {
	// CreateNode creates a node and inserts it under parent, or under the
	// document root when parent is nil.
	CreateNode(spec NodeSpec, parent Node) Node
	// RemoveNode removes n and its descendants together with their handlers.
	RemoveNode(n Node)
	// SetBounds positions and sizes n.
	SetBounds(n Node, r Rect)
	// SetPosition moves n while keeping its natural size.
	SetPosition(n Node, p Point)
	SetZIndex(n Node, z int)
	// NaturalSize reports the size n occupies given its content.
	NaturalSize(n Node) Size
	// Bounds reports the offset and outer size of n relative to the document.
	Bounds(n Node) Rect
	Viewport() Size
	Document() Size
	// On subscribes h to events of type t on n under namespace.
	On(n Node, t EventType, namespace string, h Handler)
	// Off removes every handler registered on n under namespace.
	Off(n Node, namespace string)
}
