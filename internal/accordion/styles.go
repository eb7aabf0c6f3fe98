package accordion

import "github.com/charmbracelet/lipgloss"

// Styles controls how headers and content regions render. Every style is
// picked from the item's open state at render time.
type Styles struct {
	Header        lipgloss.Style
	HeaderOpen    lipgloss.Style
	HeaderFocused lipgloss.Style
	Indicator     lipgloss.Style
	IndicatorOpen lipgloss.Style
	Content       lipgloss.Style
}

// DefaultStyles uses the Catppuccin Mocha palette.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cdd6f4")).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("#45475a")).
			Padding(0, 1),
		HeaderOpen: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#89b4fa")).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("#89b4fa")).
			Padding(0, 1),
		HeaderFocused: lipgloss.NewStyle().
			Background(lipgloss.Color("#313244")),
		Indicator:     lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")),
		IndicatorOpen: lipgloss.NewStyle().Foreground(lipgloss.Color("#cba6f7")).Bold(true),
		Content: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bac2de")).
			PaddingLeft(3).
			PaddingBottom(1),
	}
}
