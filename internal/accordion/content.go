package accordion

import "github.com/charmbracelet/lipgloss"

// Content renders the body of one item. It only reads group state.
type Content struct {
	item  Item
	style lipgloss.Style
}

// ContentOption configures a Content.
type ContentOption func(*Content)

// WithContentStyle overrides the default body style.
func WithContentStyle(s lipgloss.Style) ContentOption {
	return func(c *Content) { c.style = s }
}

// NewContent binds a content region to item.
func NewContent(item Item, opts ...ContentOption) Content {
	c := Content{item: item, style: DefaultStyles().Content}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Content) Item() Item { return c.item }

// Visible reports whether the body takes part in layout.
func (c Content) Visible() bool {
	return c.item.IsOpen()
}

// View renders body when the item is open. A closed region renders to the
// empty string so it occupies no lines.
func (c Content) View(body string, width int) string {
	if !c.Visible() {
		return ""
	}
	style := c.style
	if width > 0 {
		style = style.Width(width - style.GetHorizontalBorderSize())
	}
	return style.Render(body)
}
