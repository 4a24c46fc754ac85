package termsurface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/kingrea/singleton-contextmenu/internal/contextmenu"
)

const resetSGR = "\x1b[0m"

func (s *Surface) rowStyle(n *Node) lipgloss.Style {
	if n.kind == contextmenu.KindTitle {
		return s.styles.Title
	}
	return s.styles.Item
}

// menuBlock renders a menu node: every row padded to the widest one, inside
// the menu frame.
func (s *Surface) menuBlock(n *Node) string {
	width := 0
	for _, c := range n.children {
		if w := lipgloss.Width(s.rowStyle(c).Render(c.text)); w > width {
			width = w
		}
	}
	rows := make([]string, 0, len(n.children))
	for _, c := range n.children {
		rows = append(rows, s.rowStyle(c).Width(width).Render(c.text))
	}
	return s.styles.Menu.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Render draws every visible node over base, bottom layer first, clipped to
// the viewport. Watchers and the dismissal overlay are invisible.
func (s *Surface) Render(base string) string {
	lines := strings.Split(base, "\n")
	for _, n := range s.stacked() {
		if n.kind != contextmenu.KindMenu {
			continue
		}
		b := s.absBounds(n)
		for i, row := range strings.Split(s.menuBlock(n), "\n") {
			y := b.Y + i
			if y < 0 || (s.viewport.Height > 0 && y >= s.viewport.Height) {
				continue
			}
			for len(lines) <= y {
				lines = append(lines, "")
			}
			lines[y] = s.splice(lines[y], b.X, row)
		}
	}
	return strings.Join(lines, "\n")
}

// splice writes block into line starting at cell x. Cells of line covered by
// block are replaced; the remainder of line keeps its text.
func (s *Surface) splice(line string, x int, block string) string {
	if x < 0 {
		block = skipCells(ansi.Strip(block), -x)
		x = 0
	}
	if s.viewport.Width > 0 {
		if x >= s.viewport.Width {
			return line
		}
		block = ansi.Truncate(block, s.viewport.Width-x, "")
	}

	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	right := skipCells(ansi.Strip(line), x+ansi.StringWidth(block))
	return left + resetSGR + block + resetSGR + right
}

// skipCells drops the first n terminal cells of plain text. A wide rune cut
// in half is replaced by spaces.
func skipCells(text string, n int) string {
	w := 0
	for i, r := range text {
		if w >= n {
			return strings.Repeat(" ", w-n) + text[i:]
		}
		w += runewidth.RuneWidth(r)
	}
	if w > n {
		return strings.Repeat(" ", w-n)
	}
	return ""
}
