package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jask/resumind/internal/accordion"
	"github.com/jask/resumind/internal/database/repository"
	"github.com/jask/resumind/internal/feedback"
)

const atsFooter = "Keep refining your resume to improve your chances of getting past ATS filters and into the hands of recruiters."

// detailView shows one resume's feedback. Each opened resume gets a fresh
// accordion group, so open sections never leak between resumes.
type detailView struct {
	resume   repository.Resume
	preview  bool
	group    *accordion.Group
	focus    int
	viewport viewport.Model

	headerLines []int
}

func newDetailView(res repository.Resume, preview bool, d accordion.Discipline, defaultOpen string) *detailView {
	vp := viewport.New(80, 20)
	vp.SetContent("")
	return &detailView{
		resume:   res,
		preview:  preview,
		group:    accordion.New(d, accordion.WithInitialOpen(defaultOpen)),
		viewport: vp,
	}
}

func (v *detailView) sections() []feedback.Section {
	if v.resume.Feedback == nil {
		return nil
	}
	return v.resume.Feedback.Sections()
}

func (v *detailView) header(id string, st Styles) accordion.Header {
	return accordion.NewHeader(v.group.Item(id), accordion.WithHeaderStyles(st.Accordion))
}

func (v *detailView) content(id string, st Styles) accordion.Content {
	return accordion.NewContent(v.group.Item(id), accordion.WithContentStyle(st.Accordion.Content))
}

func (v *detailView) setSize(width, height int, st Styles) {
	v.viewport.Width = max(20, width)
	v.viewport.Height = max(3, height)
	v.refresh(st)
}

// handle applies a resolved key action and reports whether it was consumed.
func (v *detailView) handle(msg tea.KeyMsg, action string, st Styles) bool {
	secs := v.sections()
	switch action {
	case actUp:
		if v.focus > 0 {
			v.focus--
		}
	case actDown:
		if v.focus < len(secs)-1 {
			v.focus++
		}
	case actToggle:
		if len(secs) == 0 {
			return false
		}
		if !v.header(secs[v.focus].ID, st).HandleKey(msg) {
			return false
		}
	case actPageUp:
		v.viewport.HalfViewUp()
		return true
	case actPageDown:
		v.viewport.HalfViewDown()
		return true
	default:
		return false
	}
	v.refresh(st)
	v.revealFocus()
	return true
}

func (v *detailView) focusedID() string {
	secs := v.sections()
	if v.focus < 0 || v.focus >= len(secs) {
		return ""
	}
	return secs[v.focus].ID
}

func (v *detailView) refresh(st Styles) {
	v.viewport.SetContent(v.render(st, v.viewport.Width))
}

// revealFocus scrolls so the focused header is on screen.
func (v *detailView) revealFocus() {
	if v.focus >= len(v.headerLines) {
		return
	}
	line := v.headerLines[v.focus]
	top := v.viewport.YOffset
	bottom := top + v.viewport.Height - 1
	switch {
	case line < top:
		v.viewport.SetYOffset(line)
	case line+1 > bottom:
		v.viewport.SetYOffset(line + 2 - v.viewport.Height)
	}
}

func (v *detailView) view() string {
	return v.viewport.View()
}

func (v *detailView) render(st Styles, width int) string {
	width = max(20, width)
	var b strings.Builder

	title := v.resume.Title()
	b.WriteString(st.Title.Render("Resume Review"))
	b.WriteString("\n")
	b.WriteString(st.Subtitle.Render(title))
	b.WriteString("\n")
	if v.preview {
		b.WriteString(st.Muted.Render("preview: " + v.resume.ImagePath))
	} else {
		b.WriteString(st.Muted.Render("no preview available"))
	}
	b.WriteString("\n\n")

	fb := v.resume.Feedback
	if fb == nil {
		b.WriteString(st.Muted.Render("Analyzing… feedback has not been attached to this resume yet."))
		v.headerLines = nil
		return b.String()
	}

	b.WriteString(renderSummary(*fb, st, width))
	b.WriteString("\n")
	b.WriteString(renderATS(fb.ATS, st, width))
	b.WriteString("\n")

	offset := lipgloss.Height(b.String()) - 1
	v.headerLines = v.headerLines[:0]
	for i, sec := range fb.Sections() {
		label := fmt.Sprintf("%s %s  %s", feedback.SectionIcon(sec.Title, sec.Score), sec.Title, renderBadge(sec.Score, st))
		head := v.header(sec.ID, st).View(label, width, i == v.focus)
		body := v.content(sec.ID, st).View(renderTips(sec.Tips, st, width-4), width)

		v.headerLines = append(v.headerLines, offset)
		b.WriteString(head)
		b.WriteString("\n")
		offset += lipgloss.Height(head)
		if body != "" {
			b.WriteString(body)
			b.WriteString("\n")
			offset += lipgloss.Height(body)
		}
	}
	return b.String()
}

func renderSummary(fb feedback.Feedback, st Styles, width int) string {
	grade := feedback.Gauge(fb.OverallScore)
	msg := feedback.Overall(fb.OverallScore)

	bar := progress.New(
		progress.WithSolidFill(string(st.Palette.Band(grade.Band))),
		progress.WithoutPercentage(),
		progress.WithWidth(max(10, width/2)),
	)
	lines := []string{
		st.Label.Render("Your Resume Score"),
		fmt.Sprintf("%s %s  %s",
			st.band(grade.Band).Render(fmt.Sprintf("%d/100", fb.OverallScore)),
			grade.Icon,
			st.band(grade.Band).Render(grade.Label)),
		bar.ViewAs(float64(fb.OverallScore) / 100),
		st.band(msg.Band).Render(msg.Icon + " " + msg.Text),
		"",
	}
	for _, row := range fb.SummaryRows() {
		lines = append(lines, fmt.Sprintf("%-20s %s  %s", row.Title, renderBadge(row.Score, st),
			st.Muted.Render(fmt.Sprintf("%d/100", row.Score))))
	}
	return st.Panel.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func renderBadge(score int, st Styles) string {
	g := feedback.Badge(score)
	dots := feedback.BadgeDots(score)
	return st.band(g.Band).Render(strings.Repeat("●", dots)+strings.Repeat("○", 3-dots)) +
		" " + st.band(g.Band).Render(g.Label)
}

func renderATS(ats feedback.ATS, st Styles, width int) string {
	verdict := feedback.ATSVerdict(ats.Score)
	lines := []string{
		st.Label.Render(fmt.Sprintf("ATS Score - %d/100", ats.Score)),
		st.band(verdict.Band).Render(verdict.Subtitle),
		wordwrap.String(verdict.Description, max(10, width-4)),
	}
	if len(ats.Tips) > 0 {
		lines = append(lines, "", st.Label.Render("Suggestions"))
		for _, tip := range ats.Tips {
			lines = append(lines, tipLine(tip, st, width-4))
		}
	}
	lines = append(lines, "", st.Muted.Render(wordwrap.String(atsFooter, max(10, width-4))))
	return st.Panel.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func tipLine(tip feedback.Tip, st Styles, width int) string {
	mark, style := "!", st.TipFix
	if tip.Type == feedback.TipGood {
		mark, style = "✓", st.TipGood
	}
	return style.Render(mark) + " " + wordwrap.String(tip.Tip, max(10, width-2))
}

func renderTips(tips []feedback.Tip, st Styles, width int) string {
	if len(tips) == 0 {
		return st.Muted.Render("No tips for this section.")
	}
	blocks := make([]string, 0, len(tips))
	for _, tip := range tips {
		lines := []string{tipLine(tip, st, width)}
		if tip.Explanation != "" {
			lines = append(lines, "  "+strings.ReplaceAll(
				wordwrap.String(tip.Explanation, max(10, width-2)), "\n", "\n  "))
		}
		style := st.TipFix
		if tip.Type == feedback.TipGood {
			style = st.TipGood
		}
		lines = append(lines, "  "+style.Italic(true).Render(feedback.TipLabel(tip.Type)))
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}
