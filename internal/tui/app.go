package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jask/resumind/internal/config"
	"github.com/jask/resumind/internal/database/repository"
	"github.com/jask/resumind/internal/feedback"
	"github.com/jask/resumind/internal/prefs"
	"github.com/jask/resumind/internal/service"
)

// Resumes is the service surface the dashboard drives.
type Resumes interface {
	List(ctx context.Context) ([]repository.Resume, error)
	Get(ctx context.Context, id string) (repository.Resume, error)
	Upload(ctx context.Context, req service.UploadRequest) (repository.Resume, error)
	Delete(ctx context.Context, id string) error
	Preview(ctx context.Context, res repository.Resume) []byte
	CheckUpload(path string) (os.FileInfo, error)
	ImportFeedbackFile(ctx context.Context, path string) (repository.Resume, error)
}

// App ties together views.
type App struct {
	ctx    context.Context
	cfg    config.Config
	svc    Resumes
	themes *prefs.ThemeStore
	log    *zap.Logger
	keys   *KeyRegistry

	theme  prefs.Theme
	styles Styles
	active viewID
	home   *homeView
	detail *detailView
	upload *uploadForm
	status StatusMsg

	width  int
	height int
}

// New builds the dashboard. theme is the value ThemeStore.Load returned.
func New(ctx context.Context, cfg config.Config, svc Resumes, themes *prefs.ThemeStore, theme prefs.Theme, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	if theme == "" {
		theme = prefs.ThemeDark
	}
	return &App{
		ctx:    ctx,
		cfg:    cfg,
		svc:    svc,
		themes: themes,
		log:    log,
		keys:   NewKeyRegistry(defaultBindings()),
		theme:  theme,
		styles: newStyles(theme),
		home:   newHomeView(),
		width:  80,
		height: 24,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadResumes()
}

func (a *App) loadResumes() tea.Cmd {
	return func() tea.Msg {
		list, err := a.svc.List(a.ctx)
		return resumesLoadedMsg{resumes: list, err: err}
	}
}

// loadDetail fetches one resume. A refresh updates the detail view in place
// without switching to it.
func (a *App) loadDetail(id string, refresh bool) tea.Cmd {
	return func() tea.Msg {
		res, err := a.svc.Get(a.ctx, id)
		if err != nil {
			return detailLoadedMsg{err: err, refresh: refresh}
		}
		return detailLoadedMsg{resume: res, preview: len(a.svc.Preview(a.ctx, res)) > 0, refresh: refresh}
	}
}

func (a *App) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: a.svc.Delete(a.ctx, id)}
	}
}

func (a *App) saveThemeCmd(t prefs.Theme) tea.Cmd {
	if a.themes == nil {
		return nil
	}
	return func() tea.Msg {
		return themeSavedMsg{theme: t, err: a.themes.Set(a.ctx, t)}
	}
}

// uploadCmd decodes the optional feedback document before anything is
// stored, then writes the resume and its feedback in one row.
func (a *App) uploadCmd(req uploadRequest) tea.Cmd {
	return func() tea.Msg {
		upload := req.UploadRequest
		if req.FeedbackPath != "" {
			f, err := os.Open(req.FeedbackPath)
			if err != nil {
				return uploadDoneMsg{err: fmt.Errorf("open feedback: %w", err)}
			}
			decoded, err := feedback.Decode(f)
			f.Close()
			if err != nil {
				return uploadDoneMsg{err: err}
			}
			upload.Feedback = &decoded
		}
		res, err := a.svc.Upload(a.ctx, upload)
		if err != nil {
			return uploadDoneMsg{err: err}
		}
		return uploadDoneMsg{resume: res}
	}
}

func (a *App) importCmd(paths []string) tea.Cmd {
	return func() tea.Msg {
		out := importedMsg{}
		for _, p := range paths {
			if _, err := a.svc.ImportFeedbackFile(a.ctx, p); err != nil {
				out.errs = append(out.errs, err)
				continue
			}
			out.count++
		}
		return out
	}
}

func (a *App) bodyHeight() int {
	// navbar, status and footer
	return max(3, a.height-3)
}

func (a *App) scope() string {
	if a.active == viewHome && a.home.filtering {
		return scopeFilter
	}
	return a.active.scope()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		if a.detail != nil {
			a.detail.setSize(a.width, a.bodyHeight(), a.styles)
		}
		if a.upload != nil {
			a.upload.setHeight(a.bodyHeight())
		}
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	case StatusMsg:
		a.status = m
		return a, nil
	case resumesLoadedMsg:
		if m.err != nil {
			a.log.Warn("load resumes", zap.Error(m.err))
			return a, ErrorCmd(m.err)
		}
		a.home.setResumes(m.resumes)
		return a, nil
	case detailLoadedMsg:
		if m.err != nil {
			return a, ErrorCmd(m.err)
		}
		if m.refresh {
			if a.detail != nil && a.detail.resume.ID == m.resume.ID {
				a.detail.resume = m.resume
				a.detail.preview = m.preview
				a.detail.refresh(a.styles)
			}
			return a, nil
		}
		a.openDetail(m.resume, m.preview)
		return a, nil
	case uploadDoneMsg:
		if a.upload != nil {
			a.upload.busy = false
		}
		if m.err != nil {
			a.log.Warn("upload failed", zap.Error(m.err))
			if a.upload != nil {
				a.upload.err = m.err.Error()
			}
			return a, nil
		}
		a.upload = nil
		a.openDetail(m.resume, false)
		return a, tea.Batch(a.loadResumes(), StatusCmd("Uploaded "+m.resume.Title()))
	case deletedMsg:
		if m.err != nil {
			return a, ErrorCmd(m.err)
		}
		return a, tea.Batch(a.loadResumes(), StatusCmd("Deleted resume"))
	case themeSavedMsg:
		if m.err != nil {
			a.log.Warn("save theme", zap.String("theme", string(m.theme)), zap.Error(m.err))
			return a, ErrorCmd(fmt.Errorf("theme not saved: %w", m.err))
		}
		return a, nil
	case InboxMsg:
		a.log.Debug("inbox changed", zap.Strings("paths", m.Paths))
		return a, a.importCmd(m.Paths)
	case importedMsg:
		cmds := []tea.Cmd{a.loadResumes()}
		if a.detail != nil {
			cmds = append(cmds, a.loadDetail(a.detail.resume.ID, true))
		}
		if len(m.errs) > 0 {
			for _, err := range m.errs {
				a.log.Warn("import feedback", zap.Error(err))
			}
			cmds = append(cmds, ErrorCmd(errors.Join(m.errs...)))
		} else {
			cmds = append(cmds, StatusCmd(fmt.Sprintf("Imported %d feedback file(s)", m.count)))
		}
		return a, tea.Batch(cmds...)
	}

	switch a.active {
	case viewUpload:
		if a.upload != nil {
			return a, a.upload.update(msg, a.svc.CheckUpload)
		}
	case viewHome:
		if a.home.filtering {
			var cmd tea.Cmd
			a.home.filter, cmd = a.home.filter.Update(msg)
			return a, cmd
		}
	}
	return a, nil
}

func (a *App) openDetail(res repository.Resume, preview bool) {
	// Reopening the resume already on screen keeps its open sections.
	if a.detail != nil && a.detail.resume.ID == res.ID {
		a.detail.resume = res
		a.detail.preview = preview
	} else {
		a.detail = newDetailView(res, preview, a.cfg.Discipline(), a.cfg.UI.DefaultOpen)
	}
	a.active = viewDetail
	a.detail.setSize(a.width, a.bodyHeight(), a.styles)
}

func (a *App) toggleTheme() tea.Cmd {
	a.theme = a.theme.Opposite()
	a.styles = newStyles(a.theme)
	if a.detail != nil {
		a.detail.refresh(a.styles)
	}
	a.log.Debug("theme toggled", zap.String("theme", string(a.theme)))
	return a.saveThemeCmd(a.theme)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := a.keys.Action(msg, a.scope())
	switch action {
	case actQuit:
		return a, tea.Quit
	case actTheme:
		return a, a.toggleTheme()
	}
	switch a.active {
	case viewDetail:
		return a.handleDetailKey(msg, action)
	case viewUpload:
		return a.handleUploadKey(msg, action)
	default:
		return a.handleHomeKey(msg, action)
	}
}

func (a *App) handleHomeKey(msg tea.KeyMsg, action string) (tea.Model, tea.Cmd) {
	h := a.home
	if h.filtering {
		switch action {
		case actFilterDone:
			h.filtering = false
			h.filter.Blur()
			return a, nil
		case actFilterClear:
			h.filtering = false
			h.filter.Blur()
			h.filter.Reset()
			h.applyFilter()
			return a, nil
		}
		var cmd tea.Cmd
		h.filter, cmd = h.filter.Update(msg)
		h.applyFilter()
		return a, cmd
	}
	switch action {
	case actUp:
		h.move(-1)
	case actDown:
		h.move(1)
	case actOpen:
		if res, ok := h.selected(); ok {
			return a, a.loadDetail(res.ID, false)
		}
	case actFilter:
		h.filtering = true
		return a, h.filter.Focus()
	case actUpload:
		dir, err := os.Getwd()
		if err != nil {
			a.log.Debug("no working directory for picker", zap.Error(err))
		}
		a.upload = newUploadForm(dir, a.cfg.MaxUploadBytes())
		a.upload.setHeight(a.bodyHeight())
		a.active = viewUpload
		return a, a.upload.init()
	case actDelete:
		if res, ok := h.selected(); ok {
			if a.detail != nil && a.detail.resume.ID == res.ID {
				a.detail = nil
			}
			return a, a.deleteCmd(res.ID)
		}
	case actReload:
		return a, a.loadResumes()
	}
	return a, nil
}

func (a *App) handleDetailKey(msg tea.KeyMsg, action string) (tea.Model, tea.Cmd) {
	if action == actBack || a.detail == nil {
		a.active = viewHome
		return a, nil
	}
	a.detail.handle(msg, action, a.styles)
	return a, nil
}

func (a *App) handleUploadKey(msg tea.KeyMsg, action string) (tea.Model, tea.Cmd) {
	f := a.upload
	if f.busy {
		return a, nil
	}
	switch action {
	case actBack:
		a.upload = nil
		a.active = viewHome
		return a, nil
	case actNextField:
		return a, f.setFocus(f.focus + 1)
	case actPrevField:
		return a, f.setFocus(f.focus - 1)
	case actClearFile:
		f.clearFile()
		return a, nil
	case actSubmit:
		req, err := f.request()
		if err != nil {
			f.err = err.Error()
			return a, nil
		}
		f.busy = true
		f.err = ""
		return a, a.uploadCmd(req)
	}
	return a, f.update(msg, a.svc.CheckUpload)
}

func (a *App) View() string {
	st := a.styles
	var body string
	switch a.active {
	case viewDetail:
		if a.detail != nil {
			body = a.detail.view()
		}
	case viewUpload:
		if a.upload != nil {
			body = a.upload.view(st, a.width)
		}
	default:
		body = a.home.view(st, a.width, a.bodyHeight())
	}
	body = lipgloss.NewStyle().Height(a.bodyHeight()).MaxHeight(a.bodyHeight()).Render(body)

	return strings.Join([]string{
		renderNavbar(a.active, a.theme, st, a.width),
		body,
		renderStatus(a.status, st, a.width),
		renderFooter(a.keys, a.scope(), st, a.width),
	}, "\n")
}
