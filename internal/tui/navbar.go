package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/resumind/internal/prefs"
)

type viewID int

const (
	viewHome viewID = iota
	viewDetail
	viewUpload
)

func (v viewID) String() string {
	switch v {
	case viewDetail:
		return "Review"
	case viewUpload:
		return "Upload"
	default:
		return "Resumes"
	}
}

func (v viewID) scope() string {
	switch v {
	case viewDetail:
		return scopeDetail
	case viewUpload:
		return scopeUpload
	default:
		return scopeHome
	}
}

func renderNavbar(active viewID, theme prefs.Theme, st Styles, width int) string {
	var b strings.Builder
	b.WriteString(st.Brand.Render(" RESUMIND "))
	for _, v := range []viewID{viewHome, viewDetail, viewUpload} {
		if v == active {
			b.WriteString(st.NavActive.Render(v.String()))
		} else {
			b.WriteString(st.NavIdle.Render(v.String()))
		}
	}
	icon := "☀ light"
	if theme.Dark() {
		icon = "☾ dark"
	}
	right := st.NavIdle.Render(icon)
	left := b.String()
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap > 0 {
		left += st.Navbar.Render(strings.Repeat(" ", gap))
	}
	return renderBar(st.Navbar, max(1, width), left+right)
}

func renderStatus(status StatusMsg, st Styles, width int) string {
	if status.Text == "" {
		return ""
	}
	style := st.Status
	if status.IsErr {
		style = st.StatusErr
	}
	return renderBar(style, max(1, width), style.Render(" "+status.Text))
}
