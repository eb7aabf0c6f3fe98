package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/resumind/internal/prefs"
)

func TestKeyRegistryScopeMatch(t *testing.T) {
	reg := NewKeyRegistry([]KeyBinding{
		{Keys: []string{"ctrl+k"}, Action: "palette", Scopes: []string{"detail"}},
		{Keys: []string{"q"}, Action: "quit", Scopes: []string{"*"}},
	})
	require.Equal(t, "palette", reg.Action(tea.KeyMsg{Type: tea.KeyCtrlK}, "detail"))
	require.Empty(t, reg.Action(tea.KeyMsg{Type: tea.KeyCtrlK}, "home"))
	require.Equal(t, "quit", reg.Action(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, "upload"))
}

func TestDefaultBindingsPerScope(t *testing.T) {
	reg := NewKeyRegistry(defaultBindings())

	require.Equal(t, actToggle, reg.Action(tea.KeyMsg{Type: tea.KeySpace}, scopeDetail))
	require.Equal(t, actToggle, reg.Action(tea.KeyMsg{Type: tea.KeyEnter}, scopeDetail))
	require.Equal(t, actOpen, reg.Action(tea.KeyMsg{Type: tea.KeyEnter}, scopeHome))
	require.Equal(t, actTheme, reg.Action(tea.KeyMsg{Type: tea.KeyCtrlT}, scopeUpload))
	// Typing into upload fields must not quit.
	require.Empty(t, reg.Action(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, scopeUpload))
	require.Empty(t, reg.Action(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, scopeFilter))
	require.Empty(t, reg.Action(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, scopeUpload))
	require.Equal(t, actClearFile, reg.Action(tea.KeyMsg{Type: tea.KeyCtrlX}, scopeUpload))
	require.Equal(t, actQuit, reg.Action(tea.KeyMsg{Type: tea.KeyCtrlC}, scopeUpload))
}

func TestRegistryCopiesBindings(t *testing.T) {
	bindings := []KeyBinding{{Keys: []string{"space"}, Action: "jump", Description: "jump"}}
	reg := NewKeyRegistry(bindings)
	bindings[0].Action = "changed"

	require.Equal(t, "jump", reg.Action(tea.KeyMsg{Type: tea.KeySpace}, "any"))
	got := reg.BindingsForScope("any")
	require.Len(t, got, 1)
	require.Equal(t, "space", got[0].binding.Help().Key)
	require.Equal(t, "jump", got[0].binding.Help().Desc)
}

func TestFooterListsScopeBindings(t *testing.T) {
	reg := NewKeyRegistry(defaultBindings())
	out := renderFooter(reg, scopeDetail, newStyles(prefs.ThemeDark), 200)

	require.Contains(t, out, "expand/collapse")
	require.Contains(t, out, "enter/space")
	require.NotContains(t, out, "ctrl+c")
	require.NotContains(t, out, "analyze")
}

func TestMatchesQuery(t *testing.T) {
	require.True(t, matchesQuery("", "Acme"))
	require.True(t, matchesQuery("acm", "Acme Corp", ""))
	require.True(t, matchesQuery("desiner", "Globex", "Product Designer"))
	require.False(t, matchesQuery("zzz", "Acme", "SRE"))
}
