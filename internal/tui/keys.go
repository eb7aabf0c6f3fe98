package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	scopeAll    = "*"
	scopeHome   = "home"
	scopeDetail = "detail"
	scopeUpload = "upload"
	scopeFilter = "filter"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
	Hidden      bool

	binding key.Binding
}

// KeyRegistry resolves key presses to actions per view scope.
type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	out := slices.Clone(bindings)
	for i := range out {
		out[i].binding = compileBinding(out[i])
	}
	return &KeyRegistry{bindings: out}
}

// compileBinding turns b into a bubbles binding. "space" also matches the
// literal " " bubbletea reports for the space bar.
func compileBinding(b KeyBinding) key.Binding {
	keys := make([]string, 0, len(b.Keys)+1)
	for _, k := range b.Keys {
		keys = append(keys, k)
		if k == "space" {
			keys = append(keys, " ")
		}
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(b.Keys, "/"), b.Description),
	)
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// Action returns the first action bound to msg in scope, or "".
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) string {
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) && key.Matches(msg, b.binding) {
			return b.Action
		}
	}
	return ""
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == scopeAll || s == scope {
			return true
		}
	}
	return false
}

const (
	actQuit        = "quit"
	actTheme       = "theme"
	actUp          = "up"
	actDown        = "down"
	actOpen        = "open"
	actBack        = "back"
	actUpload      = "upload"
	actFilter      = "filter"
	actDelete      = "delete"
	actReload      = "reload"
	actToggle      = "toggle"
	actPageUp      = "page-up"
	actPageDown    = "page-down"
	actNextField   = "next-field"
	actPrevField   = "prev-field"
	actSubmit      = "submit"
	actClearFile   = "clear-file"
	actFilterDone  = "filter-done"
	actFilterClear = "filter-clear"
)

func defaultBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"ctrl+c"}, Action: actQuit, Description: "quit", Scopes: []string{scopeAll}, Hidden: true},
		{Keys: []string{"q"}, Action: actQuit, Description: "quit", Scopes: []string{scopeHome, scopeDetail}},
		{Keys: []string{"ctrl+t"}, Action: actTheme, Description: "theme", Scopes: []string{scopeAll}},

		{Keys: []string{"up", "k"}, Action: actUp, Description: "up", Scopes: []string{scopeHome, scopeDetail}},
		{Keys: []string{"down", "j"}, Action: actDown, Description: "down", Scopes: []string{scopeHome, scopeDetail}},
		{Keys: []string{"enter"}, Action: actOpen, Description: "open", Scopes: []string{scopeHome}},
		{Keys: []string{"u"}, Action: actUpload, Description: "upload", Scopes: []string{scopeHome}},
		{Keys: []string{"/"}, Action: actFilter, Description: "filter", Scopes: []string{scopeHome}},
		{Keys: []string{"d"}, Action: actDelete, Description: "delete", Scopes: []string{scopeHome}},
		{Keys: []string{"r"}, Action: actReload, Description: "reload", Scopes: []string{scopeHome}},

		{Keys: []string{"enter", "space"}, Action: actToggle, Description: "expand/collapse", Scopes: []string{scopeDetail}},
		{Keys: []string{"pgup", "ctrl+u"}, Action: actPageUp, Description: "scroll up", Scopes: []string{scopeDetail}},
		{Keys: []string{"pgdown", "ctrl+d"}, Action: actPageDown, Description: "scroll down", Scopes: []string{scopeDetail}},
		{Keys: []string{"esc", "backspace"}, Action: actBack, Description: "back", Scopes: []string{scopeDetail}},
		{Keys: []string{"esc"}, Action: actBack, Description: "cancel", Scopes: []string{scopeUpload}},

		{Keys: []string{"tab"}, Action: actNextField, Description: "next field", Scopes: []string{scopeUpload}},
		{Keys: []string{"shift+tab"}, Action: actPrevField, Description: "prev field", Scopes: []string{scopeUpload}},
		{Keys: []string{"ctrl+s"}, Action: actSubmit, Description: "analyze", Scopes: []string{scopeUpload}},
		{Keys: []string{"ctrl+x"}, Action: actClearFile, Description: "clear file", Scopes: []string{scopeUpload}},

		{Keys: []string{"enter"}, Action: actFilterDone, Description: "apply", Scopes: []string{scopeFilter}},
		{Keys: []string{"esc"}, Action: actFilterClear, Description: "clear", Scopes: []string{scopeFilter}},
	}
}

// renderFooter draws the help line for scope.
func renderFooter(keys *KeyRegistry, scope string, st Styles, width int) string {
	bindings := keys.BindingsForScope(scope)
	space := st.Footer.Render(" ")
	sep := st.Footer.Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 || b.Hidden {
			continue
		}
		h := b.binding.Help()
		parts = append(parts, st.Key.Render(h.Key)+space+st.KeyDesc.Render(h.Desc))
	}
	line := strings.Join(parts, sep)
	if line == "" {
		line = st.KeyDesc.Render("No shortcuts")
	}
	return renderBar(st.Footer, max(1, width), line)
}

func renderBar(style lipgloss.Style, width int, text string) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += style.Render(strings.Repeat(" ", width-w))
	}
	return line
}
