package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/resumind/internal/accordion"
	"github.com/jask/resumind/internal/feedback"
	"github.com/jask/resumind/internal/prefs"
)

// Palette holds the semantic colors of one theme.
type Palette struct {
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Surface lipgloss.Color
	Mantle  lipgloss.Color
	Accent  lipgloss.Color
	Focus   lipgloss.Color
	Success lipgloss.Color
	Info    lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Brand   lipgloss.Color
}

// Catppuccin Mocha
var darkPalette = Palette{
	Text:    "#cdd6f4",
	Subtext: "#bac2de",
	Muted:   "#7f849c",
	Border:  "#585b70",
	Surface: "#313244",
	Mantle:  "#181825",
	Accent:  "#89b4fa",
	Focus:   "#b4befe",
	Success: "#a6e3a1",
	Info:    "#89b4fa",
	Warning: "#f9e2af",
	Error:   "#f38ba8",
	Brand:   "#cba6f7",
}

// Catppuccin Latte
var lightPalette = Palette{
	Text:    "#4c4f69",
	Subtext: "#5c5f77",
	Muted:   "#8c8fa1",
	Border:  "#bcc0cc",
	Surface: "#ccd0da",
	Mantle:  "#e6e9ef",
	Accent:  "#1e66f5",
	Focus:   "#7287fd",
	Success: "#40a02b",
	Info:    "#1e66f5",
	Warning: "#df8e1d",
	Error:   "#d20f39",
	Brand:   "#8839ef",
}

func paletteFor(t prefs.Theme) Palette {
	if t.Dark() {
		return darkPalette
	}
	return lightPalette
}

// Band maps a score band to a palette color.
func (p Palette) Band(b feedback.Band) lipgloss.Color {
	switch b {
	case feedback.BandExcellent:
		return p.Success
	case feedback.BandGood:
		return p.Info
	case feedback.BandAverage:
		return p.Warning
	default:
		return p.Error
	}
}

// Styles is everything the views render with. It is rebuilt on theme change.
type Styles struct {
	Palette Palette

	App       lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Muted     lipgloss.Style
	Navbar    lipgloss.Style
	Brand     lipgloss.Style
	NavActive lipgloss.Style
	NavIdle   lipgloss.Style
	Card      lipgloss.Style
	CardFocus lipgloss.Style
	Panel     lipgloss.Style
	Key       lipgloss.Style
	KeyDesc   lipgloss.Style
	Footer    lipgloss.Style
	Status    lipgloss.Style
	StatusErr lipgloss.Style
	TipGood   lipgloss.Style
	TipFix    lipgloss.Style
	Label     lipgloss.Style
	Accordion accordion.Styles
}

func newStyles(t prefs.Theme) Styles {
	p := paletteFor(t)
	s := Styles{Palette: p}

	s.App = lipgloss.NewStyle().Foreground(p.Text)
	s.Title = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	s.Subtitle = lipgloss.NewStyle().Foreground(p.Subtext)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	s.Navbar = lipgloss.NewStyle().Background(p.Mantle).Foreground(p.Text)
	s.Brand = lipgloss.NewStyle().Background(p.Mantle).Foreground(p.Brand).Bold(true)
	s.NavActive = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Accent).
		Bold(true).
		Padding(0, 1)
	s.NavIdle = lipgloss.NewStyle().
		Background(p.Mantle).
		Foreground(p.Muted).
		Padding(0, 1)
	s.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	s.CardFocus = s.Card.BorderForeground(p.Focus)
	s.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	s.Key = lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Background(p.Mantle)
	s.KeyDesc = lipgloss.NewStyle().Foreground(p.Muted).Background(p.Mantle)
	s.Footer = lipgloss.NewStyle().Background(p.Mantle)
	s.Status = lipgloss.NewStyle().Foreground(p.Success).Background(p.Surface)
	s.StatusErr = lipgloss.NewStyle().Foreground(p.Error).Background(p.Surface)
	s.TipGood = lipgloss.NewStyle().Foreground(p.Success)
	s.TipFix = lipgloss.NewStyle().Foreground(p.Warning)
	s.Label = lipgloss.NewStyle().Foreground(p.Subtext).Bold(true)

	s.Accordion = accordion.Styles{
		Header: lipgloss.NewStyle().
			Foreground(p.Text).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(p.Border).
			Padding(0, 1),
		HeaderOpen: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(p.Accent).
			Padding(0, 1),
		HeaderFocused: lipgloss.NewStyle().Background(p.Surface),
		Indicator:     lipgloss.NewStyle().Foreground(p.Muted),
		IndicatorOpen: lipgloss.NewStyle().Foreground(p.Brand).Bold(true),
		Content: lipgloss.NewStyle().
			Foreground(p.Subtext).
			PaddingLeft(3).
			PaddingBottom(1),
	}
	return s
}

func (s Styles) band(b feedback.Band) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.Palette.Band(b)).Bold(true)
}
