package termsurface

import "github.com/charmbracelet/lipgloss"

// Styles controls how menus are drawn.
type Styles struct {
	Menu  lipgloss.Style
	Title lipgloss.Style
	Item  lipgloss.Style
}

// Theme is the colour set a Styles value is built from. Empty fields fall
// back to the defaults.
type Theme struct {
	Accent string
	Text   string
	Border string
	Muted  string
}

// DefaultTheme matches the palette used by the demo application.
func DefaultTheme() Theme {
	return Theme{
		Accent: "#7D56F4",
		Text:   "#FAFAFA",
		Border: "#874BFD",
		Muted:  "#626262",
	}
}

// DefaultStyles returns NewStyles(DefaultTheme()).
func DefaultStyles() Styles { return NewStyles(DefaultTheme()) }

// NewStyles builds menu styles from a theme.
func NewStyles(theme Theme) Styles {
	def := DefaultTheme()
	if theme.Accent == "" {
		theme.Accent = def.Accent
	}
	if theme.Text == "" {
		theme.Text = def.Text
	}
	if theme.Border == "" {
		theme.Border = def.Border
	}
	if theme.Muted == "" {
		theme.Muted = def.Muted
	}
	return Styles{
		Menu: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Border)).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Accent)),
		Item: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Text)),
	}
}

// frame returns the left and top offsets of the menu content inside its
// border and padding.
func (st Styles) frame() (left, top int) {
	left = st.Menu.GetBorderLeftSize() + st.Menu.GetPaddingLeft()
	top = st.Menu.GetBorderTopSize() + st.Menu.GetPaddingTop()
	return left, top
}
