package contextmenu

import "testing"

func TestPlace(t *testing.T) {
	viewport := Size{Width: 80, Height: 24}
	size := Size{Width: 20, Height: 6}
	cases := []struct {
		name   string
		anchor Point
		want   Point
	}{
		{name: "fits", anchor: Point{X: 10, Y: 5}, want: Point{X: 15, Y: 5}},
		{name: "flip up", anchor: Point{X: 10, Y: 20}, want: Point{X: 15, Y: 14}},
		{name: "flip up at exact edge", anchor: Point{X: 10, Y: 18}, want: Point{X: 15, Y: 12}},
		{name: "one row above edge", anchor: Point{X: 10, Y: 17}, want: Point{X: 15, Y: 17}},
		{name: "flip left", anchor: Point{X: 60, Y: 5}, want: Point{X: 45, Y: 5}},
		{name: "flip left at exact edge", anchor: Point{X: 55, Y: 5}, want: Point{X: 40, Y: 5}},
		{name: "flip both", anchor: Point{X: 70, Y: 22}, want: Point{X: 55, Y: 16}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Place(tc.anchor, size, viewport, DefaultAnchorOffsetX)
			if got != tc.want {
				t.Fatalf("Place(%v) = %v, want %v", tc.anchor, got, tc.want)
			}
		})
	}
}

func TestPlaceIsSinglePass(t *testing.T) {
	got := Place(Point{X: 2, Y: 3}, Size{Width: 100, Height: 40}, Size{Width: 80, Height: 24}, DefaultAnchorOffsetX)
	if got != (Point{X: -93, Y: -37}) {
		t.Fatalf("oversized menu should flip once and overflow, got %v", got)
	}
}

func TestRenderBuildsTitleAndRowsInOrder(t *testing.T) {
	s := newFakeSurface()
	r := renderer{surface: s, zIndex: DefaultZIndexMenu, offsetX: DefaultAnchorOffsetX}
	out := r.render(MenuSpec{Items: []MenuItemSpec{{Label: "one"}, {Label: "two"}, {Label: "three"}}}, Point{X: 1, Y: 1})

	menu := out.menu.(*fakeNode)
	if len(menu.children) != 4 {
		t.Fatalf("expected title + 3 rows, got %d children", len(menu.children))
	}
	if menu.children[0].kind != KindTitle || menu.children[0].text != "" {
		t.Fatalf("first child must be the (empty) title row, got %s %q", menu.children[0].kind, menu.children[0].text)
	}
	for i, label := range []string{"one", "two", "three"} {
		row := menu.children[i+1]
		if row.kind != KindItem || row.text != label {
			t.Fatalf("row %d = %s %q, want item %q", i, row.kind, row.text, label)
		}
		if out.rows[i] != Node(row) {
			t.Fatalf("rows[%d] not bound to child %d", i, i+1)
		}
	}
	if menu.z != DefaultZIndexMenu {
		t.Fatalf("menu z-index = %d, want %d", menu.z, DefaultZIndexMenu)
	}
	if out.size != (Size{Width: 7, Height: 4}) {
		t.Fatalf("size measured before rows were added: %v", out.size)
	}
	if menu.bounds.Origin() != (Point{X: 6, Y: 1}) {
		t.Fatalf("menu placed at %v", menu.bounds.Origin())
	}
}
