package tui

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/resumind/internal/database/repository"
	"github.com/jask/resumind/internal/feedback"
)

type homeView struct {
	resumes   []repository.Resume
	visible   []int
	cursor    int
	filter    textinput.Model
	filtering bool
	loaded    bool
}

func newHomeView() *homeView {
	ti := textinput.New()
	ti.Placeholder = "company or job title"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return &homeView{filter: ti}
}

func (h *homeView) setResumes(list []repository.Resume) {
	h.resumes = list
	h.loaded = true
	h.applyFilter()
}

func (h *homeView) applyFilter() {
	query := h.filter.Value()
	h.visible = h.visible[:0]
	for i, r := range h.resumes {
		if matchesQuery(query, r.CompanyName, r.JobTitle) {
			h.visible = append(h.visible, i)
		}
	}
	if h.cursor >= len(h.visible) {
		h.cursor = max(0, len(h.visible)-1)
	}
}

func (h *homeView) selected() (repository.Resume, bool) {
	if h.cursor < 0 || h.cursor >= len(h.visible) {
		return repository.Resume{}, false
	}
	return h.resumes[h.visible[h.cursor]], true
}

func (h *homeView) move(delta int) {
	if len(h.visible) == 0 {
		return
	}
	h.cursor = min(max(0, h.cursor+delta), len(h.visible)-1)
}

// matchesQuery is a forgiving filter: substring match on either field, or
// any word within a small edit distance of the query.
func matchesQuery(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	limit := max(1, len(q)/4)
	for _, f := range fields {
		f = strings.ToLower(f)
		if strings.Contains(f, q) {
			return true
		}
		for _, word := range strings.Fields(f) {
			if levenshtein.ComputeDistance(q, word) <= limit {
				return true
			}
		}
	}
	return false
}

func (h *homeView) view(st Styles, width, height int) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Track Your Applications & Resume Ratings"))
	b.WriteString("\n")
	if h.loaded && len(h.resumes) == 0 {
		b.WriteString(st.Subtitle.Render("No resumes found. Upload your first resume to get feedback."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(st.Subtitle.Render("Review your submissions and check AI-powered feedback."))
	b.WriteString("\n")
	if h.filtering || h.filter.Value() != "" {
		b.WriteString(h.filter.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if !h.loaded {
		b.WriteString(st.Muted.Render("Loading resumes…"))
		return b.String()
	}
	if len(h.visible) == 0 {
		b.WriteString(st.Muted.Render(fmt.Sprintf("No resumes match %q.", h.filter.Value())))
		return b.String()
	}

	cardWidth := max(24, min(width-2, 60))
	used := lipgloss.Height(b.String())
	start := 0
	// Cards are five lines tall with their border.
	if perPage := max(1, (height-used)/5); h.cursor >= perPage {
		start = h.cursor - perPage + 1
	}
	for n, idx := range h.visible[start:] {
		if used+5 > height && n > 0 {
			break
		}
		b.WriteString(renderCard(h.resumes[idx], st, cardWidth, start+n == h.cursor))
		b.WriteString("\n")
		used += 5
	}
	return b.String()
}

func renderCard(r repository.Resume, st Styles, width int, focused bool) string {
	style := st.Card
	if focused {
		style = st.CardFocus
	}
	company := r.CompanyName
	if company == "" {
		company = "Resume"
	}
	score := st.Muted.Render("pending")
	if r.Feedback != nil {
		g := feedback.Gauge(r.Feedback.OverallScore)
		lit := feedback.GaugeSegments(r.Feedback.OverallScore)
		segments := strings.Repeat("▰", lit) + strings.Repeat("▱", 5-lit)
		score = fmt.Sprintf("%s %s", g.Icon, st.band(g.Band).Render(fmt.Sprintf("%s %d/100", segments, r.Feedback.OverallScore)))
	}
	gap := max(1, width-4-lipgloss.Width(company)-lipgloss.Width(score))
	top := st.Label.Render(company) + strings.Repeat(" ", gap) + score
	job := st.Subtitle.Render(r.JobTitle)
	meta := st.Muted.Render(r.CreatedAt.Format("Jan 2, 2006"))
	return style.Width(width - 2).Render(top + "\n" + job + "\n" + meta)
}
