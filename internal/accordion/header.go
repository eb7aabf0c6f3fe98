package accordion

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	indicatorClosed = "▸"
	indicatorOpen   = "▾"
)

// IconPosition places the indicator relative to the title.
type IconPosition int

const (
	IconRight IconPosition = iota
	IconLeft
)

// Header is the activatable control of one item.
type Header struct {
	item     Item
	styles   Styles
	position IconPosition
	closed   string
	open     string
}

// HeaderOption configures a Header.
type HeaderOption func(*Header)

// WithIconPosition moves the indicator to the left or right of the title.
func WithIconPosition(p IconPosition) HeaderOption {
	return func(h *Header) { h.position = p }
}

// WithIcons replaces the default ▸/▾ glyphs.
func WithIcons(closed, open string) HeaderOption {
	return func(h *Header) {
		h.closed = closed
		h.open = open
	}
}

// WithHeaderStyles overrides DefaultStyles.
func WithHeaderStyles(s Styles) HeaderOption {
	return func(h *Header) { h.styles = s }
}

// NewHeader binds a header to item.
func NewHeader(item Item, opts ...HeaderOption) Header {
	h := Header{
		item:     item,
		styles:   DefaultStyles(),
		position: IconRight,
		closed:   indicatorClosed,
		open:     indicatorOpen,
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

func (h Header) Item() Item { return h.item }

// Activate toggles the bound item once.
func (h Header) Activate() {
	h.item.Toggle()
}

// HandleKey activates the header on enter or space and reports whether the
// key was consumed.
func (h Header) HandleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEnter, tea.KeySpace:
		h.Activate()
		return true
	}
	if msg.String() == " " {
		h.Activate()
		return true
	}
	return false
}

// Indicator returns the glyph for the current state.
func (h Header) Indicator() string {
	if h.item.IsOpen() {
		return h.open
	}
	return h.closed
}

// View renders title and indicator across width cells.
func (h Header) View(title string, width int, focused bool) string {
	isOpen := h.item.IsOpen()

	style := h.styles.Header
	iconStyle := h.styles.Indicator
	icon := h.closed
	if isOpen {
		style = h.styles.HeaderOpen
		iconStyle = h.styles.IndicatorOpen
		icon = h.open
	}
	if focused {
		style = style.Inherit(h.styles.HeaderFocused)
	}
	icon = iconStyle.Render(icon)

	inner := width - style.GetHorizontalFrameSize()
	var line string
	switch h.position {
	case IconLeft:
		line = icon + " " + title
	default:
		gap := inner - lipgloss.Width(title) - lipgloss.Width(icon)
		if gap < 1 {
			gap = 1
		}
		line = title + strings.Repeat(" ", gap) + icon
	}
	if width > 0 {
		style = style.Width(width - style.GetHorizontalBorderSize())
	}
	return style.Render(line)
}
