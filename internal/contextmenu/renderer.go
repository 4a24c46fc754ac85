package contextmenu

// Place computes where a menu of the given size opens for an anchor point.
// The menu starts offsetX cells right of the anchor and is flipped upward or
// leftward by its own size when it would reach the viewport edge. The clamp is
// a single pass: a menu larger than the viewport may still overflow.
func Place(anchor Point, size Size, viewport Size, offsetX int) Point {
	pos := Point{X: anchor.X + offsetX, Y: anchor.Y}
	if pos.Y+size.Height >= viewport.Height {
		pos.Y -= size.Height
	}
	if pos.X+size.Width >= viewport.Width {
		pos.X -= size.Width
	}
	return pos
}

// rendered is the structure built for one menu.
type rendered struct {
	menu     Node
	title    Node
	rows     []Node
	position Point
	size     Size
}

type renderer struct {
	surface Surface
	zIndex  int
	offsetX int
}

// render builds the title row and one row per item, in order, then places
// the menu once its natural size is known.
func (r *renderer) render(spec MenuSpec, anchor Point) rendered {
	menu := r.surface.CreateNode(NodeSpec{Kind: KindMenu}, nil)
	out := rendered{menu: menu}
	out.title = r.surface.CreateNode(NodeSpec{Kind: KindTitle, Text: spec.Title}, menu)
	out.rows = make([]Node, 0, len(spec.Items))
	for _, item := range spec.Items {
		out.rows = append(out.rows, r.surface.CreateNode(NodeSpec{Kind: KindItem, Text: item.Label}, menu))
	}

	out.size = r.surface.NaturalSize(menu)
	out.position = Place(anchor, out.size, r.surface.Viewport(), r.offsetX)
	r.surface.SetZIndex(menu, r.zIndex)
	r.surface.SetPosition(menu, out.position)
	return out
}
