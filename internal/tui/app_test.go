package tui

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/resumind/internal/config"
	"github.com/jask/resumind/internal/database/repository"
	"github.com/jask/resumind/internal/feedback"
	"github.com/jask/resumind/internal/prefs"
	"github.com/jask/resumind/internal/service"
)

type fakeResumes struct {
	mu       sync.Mutex
	uploads  int
	resumes  []repository.Resume
	imported []string
	deleted  []string
}

func (f *fakeResumes) List(context.Context) ([]repository.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]repository.Resume(nil), f.resumes...), nil
}

func (f *fakeResumes) Get(_ context.Context, id string) (repository.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.resumes {
		if r.ID == id {
			return r, nil
		}
	}
	return repository.Resume{}, service.ErrNotFound
}

func (f *fakeResumes) Upload(_ context.Context, req service.UploadRequest) (repository.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	r := repository.Resume{ID: "new", CompanyName: req.CompanyName, JobTitle: req.JobTitle, Feedback: req.Feedback}
	f.resumes = append(f.resumes, r)
	return r, nil
}

func (f *fakeResumes) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeResumes) Preview(context.Context, repository.Resume) []byte { return nil }

func (f *fakeResumes) CheckUpload(path string) (os.FileInfo, error) { return os.Stat(path) }

func (f *fakeResumes) ImportFeedbackFile(_ context.Context, path string) (repository.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imported = append(f.imported, path)
	return repository.Resume{ID: path}, nil
}

type memKV map[string]string

func (m memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memKV) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func sampleFeedback() *feedback.Feedback {
	return &feedback.Feedback{
		OverallScore: 72,
		ATS:          feedback.ATS{Score: 55, Tips: []feedback.Tip{{Type: feedback.TipImprove, Tip: "Add keywords"}}},
		ToneAndStyle: feedback.Category{Score: 80, Tips: []feedback.Tip{{Type: feedback.TipGood, Tip: "Confident voice", Explanation: "Strong verbs throughout."}}},
		Content:      feedback.Category{Score: 60, Tips: []feedback.Tip{{Type: feedback.TipImprove, Tip: "Quantify impact", Explanation: "Numbers help recruiters."}}},
		Structure:    feedback.Category{Score: 45},
		Skills:       feedback.Category{Score: 30},
	}
}

func newTestApp(t *testing.T, mode string) (*App, *fakeResumes, memKV) {
	t.Helper()
	svc := &fakeResumes{resumes: []repository.Resume{
		{ID: "a", CompanyName: "Acme", JobTitle: "SRE", Feedback: sampleFeedback(), CreatedAt: time.Now()},
		{ID: "b", CompanyName: "Globex", JobTitle: "Designer", CreatedAt: time.Now()},
	}}
	kv := memKV{}
	cfg := config.Config{
		Storage: config.StorageConfig{MaxUploadMB: 20},
		UI:      config.UIConfig{AccordionMode: mode},
	}
	app := New(context.Background(), cfg, svc, prefs.NewThemeStore(kv), prefs.ThemeDark, nil)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app.Update(app.Init()())
	return app, svc, kv
}

func press(a *App, msg tea.KeyMsg) tea.Cmd {
	_, cmd := a.Update(msg)
	return cmd
}

func openFirst(t *testing.T, a *App) {
	t.Helper()
	cmd := press(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	a.Update(cmd())
	require.Equal(t, viewDetail, a.active)
	require.NotNil(t, a.detail)
}

func TestHomeListsResumes(t *testing.T) {
	a, _, _ := newTestApp(t, "multiple")

	require.Len(t, a.home.visible, 2)
	out := a.View()
	require.Contains(t, out, "Acme")
	require.Contains(t, out, "Globex")
	require.Contains(t, out, "72/100")
	require.Contains(t, out, "▰▰▰▱▱")
	require.Contains(t, out, "pending")
}

func TestDetailTogglesSectionsThroughAccordion(t *testing.T) {
	a, _, _ := newTestApp(t, "multiple")
	openFirst(t, a)

	require.Empty(t, a.detail.group.OpenIDs())
	require.NotContains(t, a.detail.view(), "Confident voice")

	press(a, tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, []string{feedback.SectionToneStyle}, a.detail.group.OpenIDs())

	press(a, tea.KeyMsg{Type: tea.KeyDown})
	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, []string{feedback.SectionContent, feedback.SectionToneStyle}, a.detail.group.OpenIDs())

	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, []string{feedback.SectionToneStyle}, a.detail.group.OpenIDs())
}

func TestDetailExclusiveModeKeepsOneOpen(t *testing.T) {
	a, _, _ := newTestApp(t, "exclusive")
	openFirst(t, a)

	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	press(a, tea.KeyMsg{Type: tea.KeyDown})
	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, []string{feedback.SectionContent}, a.detail.group.OpenIDs())

	// Activating the only open section closes everything.
	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Empty(t, a.detail.group.OpenIDs())
}

func TestDetailStateIsPerResume(t *testing.T) {
	a, _, _ := newTestApp(t, "multiple")
	openFirst(t, a)
	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, a.detail.group.OpenIDs(), 1)

	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, viewHome, a.active)
	press(a, tea.KeyMsg{Type: tea.KeyDown})
	cmd := press(a, tea.KeyMsg{Type: tea.KeyEnter})
	a.Update(cmd())

	require.Equal(t, "b", a.detail.resume.ID)
	require.Empty(t, a.detail.group.OpenIDs())
	require.Contains(t, a.detail.view(), "Analyzing")
}

func TestThemeToggleIsSaved(t *testing.T) {
	a, _, kv := newTestApp(t, "multiple")

	cmd := press(a, tea.KeyMsg{Type: tea.KeyCtrlT})
	require.Equal(t, prefs.ThemeLight, a.theme)
	require.NotNil(t, cmd)
	a.Update(cmd())
	require.Equal(t, "light", kv[prefs.ThemeKey])
	require.Contains(t, a.View(), "light")
}

func TestInboxImportsAndReloads(t *testing.T) {
	a, svc, _ := newTestApp(t, "multiple")

	_, cmd := a.Update(InboxMsg{Paths: []string{"/inbox/one.json", "/inbox/two.json"}})
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, importedMsg{count: 2}, msg)
	require.Equal(t, []string{"/inbox/one.json", "/inbox/two.json"}, svc.imported)
}

func TestFilterNarrowsCards(t *testing.T) {
	a, _, _ := newTestApp(t, "multiple")

	press(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	require.True(t, a.home.filtering)
	for _, r := range "globx" {
		press(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	require.Len(t, a.home.visible, 1)
	res, ok := a.home.selected()
	require.True(t, ok)
	require.Equal(t, "b", res.ID)

	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, a.home.filtering)
	require.Len(t, a.home.visible, 2)
}

func TestDeleteSelected(t *testing.T) {
	a, svc, _ := newTestApp(t, "multiple")

	cmd := press(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	require.NotNil(t, cmd)
	a.Update(cmd())
	require.Equal(t, []string{"a"}, svc.deleted)
}

func TestUploadRequiresFile(t *testing.T) {
	a, _, _ := newTestApp(t, "multiple")

	press(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	require.Equal(t, viewUpload, a.active)
	press(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, "choose a PDF first", a.upload.err)
	require.True(t, strings.Contains(a.View(), "choose a PDF first"))

	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, viewHome, a.active)
	require.Nil(t, a.upload)
}

func TestUploadSubmitStoresFeedbackInOneWrite(t *testing.T) {
	a, svc, _ := newTestApp(t, "multiple")
	dir := t.TempDir()
	pdf := dir + "/cv.pdf"
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF"), 0o600))
	doc := dir + "/fb.json"
	require.NoError(t, os.WriteFile(doc, []byte(`{"overallScore": 88}`), 0o600))

	press(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	a.upload.selectFile(pdf, svc.CheckUpload)
	a.upload.inputs[fieldCompany].SetValue("Initech")
	a.upload.inputs[fieldFeedback].SetValue(doc)

	cmd := press(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, a.upload.busy)
	a.Update(cmd())

	require.Equal(t, viewDetail, a.active)
	require.Equal(t, "Initech", a.detail.resume.CompanyName)
	require.Equal(t, 88, a.detail.resume.Feedback.OverallScore)
	got, err := svc.Get(context.Background(), "new")
	require.NoError(t, err)
	require.Equal(t, 88, got.Feedback.OverallScore)
	require.Equal(t, 1, svc.uploads)
}

func TestUploadBadFeedbackStoresNothing(t *testing.T) {
	a, svc, _ := newTestApp(t, "multiple")
	dir := t.TempDir()
	pdf := dir + "/cv.pdf"
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF"), 0o600))
	doc := dir + "/fb.json"
	require.NoError(t, os.WriteFile(doc, []byte(`{"overallScore": 300}`), 0o600))

	press(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	a.upload.selectFile(pdf, svc.CheckUpload)
	a.upload.inputs[fieldFeedback].SetValue(doc)

	cmd := press(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	a.Update(cmd())

	require.Equal(t, viewUpload, a.active)
	require.Zero(t, svc.uploads)
	require.NotEmpty(t, a.upload.err)
}

func TestUploadCtrlXClearsFile(t *testing.T) {
	a, svc, _ := newTestApp(t, "multiple")
	pdf := t.TempDir() + "/cv.pdf"
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF"), 0o600))

	press(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	a.upload.selectFile(pdf, svc.CheckUpload)
	require.Equal(t, pdf, a.upload.file)

	press(a, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.Empty(t, a.upload.file)
	require.Equal(t, viewUpload, a.active)
}
