package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/resumind/internal/service"
)

const (
	fieldFile = iota
	fieldCompany
	fieldJob
	fieldFeedback
	fieldCount
)

// uploadForm collects a PDF and its job details.
type uploadForm struct {
	picker   filepicker.Model
	inputs   [fieldCount]textinput.Model
	focus    int
	file     string
	fileInfo string
	err      string
	busy     bool
	limit    int64
}

type uploadRequest struct {
	service.UploadRequest
	FeedbackPath string
}

func newUploadForm(dir string, limit int64) *uploadForm {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".pdf", ".PDF"}
	if dir != "" {
		fp.CurrentDirectory = dir
	}
	fp.AutoHeight = false
	fp.Height = 10

	f := &uploadForm{picker: fp, limit: limit}
	placeholders := [fieldCount]string{
		fieldCompany:  "Company name",
		fieldJob:      "Job title",
		fieldFeedback: "Feedback JSON (optional)",
	}
	for i := fieldCompany; i < fieldCount; i++ {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		f.inputs[i] = ti
	}
	return f
}

func (f *uploadForm) init() tea.Cmd {
	return f.picker.Init()
}

func (f *uploadForm) setHeight(h int) {
	f.picker.Height = max(3, h-16)
}

func (f *uploadForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := fieldCompany; j < fieldCount; j++ {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// selectFile validates path with check and remembers it.
func (f *uploadForm) selectFile(path string, check func(string) (os.FileInfo, error)) {
	info, err := check(path)
	if err != nil {
		f.file, f.fileInfo = "", ""
		f.err = err.Error()
		return
	}
	f.file = path
	f.fileInfo = fmt.Sprintf("%s (%s)", filepath.Base(path), service.FormatSize(info.Size()))
	f.err = ""
}

func (f *uploadForm) clearFile() {
	f.file, f.fileInfo = "", ""
}

// update forwards msg to the focused component.
func (f *uploadForm) update(msg tea.Msg, check func(string) (os.FileInfo, error)) tea.Cmd {
	if f.focus != fieldFile {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
			return cmd
		}
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	f.picker, cmd = f.picker.Update(msg)
	cmds = append(cmds, cmd)
	if ok, path := f.picker.DidSelectFile(msg); ok {
		f.selectFile(path, check)
	} else if ok, path := f.picker.DidSelectDisabledFile(msg); ok {
		f.err = fmt.Sprintf("%s: %s", service.ErrNotPDF, filepath.Base(path))
	}
	if f.focus != fieldFile {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// request builds the submission, or an error message when incomplete.
func (f *uploadForm) request() (uploadRequest, error) {
	if f.file == "" {
		return uploadRequest{}, fmt.Errorf("choose a PDF first")
	}
	return uploadRequest{
		UploadRequest: service.UploadRequest{
			Path:        f.file,
			CompanyName: strings.TrimSpace(f.inputs[fieldCompany].Value()),
			JobTitle:    strings.TrimSpace(f.inputs[fieldJob].Value()),
		},
		FeedbackPath: strings.TrimSpace(f.inputs[fieldFeedback].Value()),
	}, nil
}

func (f *uploadForm) view(st Styles, width int) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Smart feedback for your dream job"))
	b.WriteString("\n")
	if f.busy {
		b.WriteString(st.Subtitle.Render("Uploading your resume…"))
		return b.String()
	}
	b.WriteString(st.Subtitle.Render("Drop your resume for an ATS score and improvement tips"))
	b.WriteString("\n")
	if f.err != "" {
		b.WriteString(st.StatusErr.Render(f.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	label := func(i int, text string) string {
		if f.focus == i {
			return st.Title.Render("▸ " + text)
		}
		return st.Label.Render("  " + text)
	}
	b.WriteString(label(fieldFile, "Resume (PDF, max "+service.FormatSize(f.limit)+")"))
	b.WriteString("\n")
	if f.file != "" {
		b.WriteString("  " + st.TipGood.Render("✓ "+f.fileInfo) + st.Muted.Render("  ctrl+x to clear"))
		b.WriteString("\n")
	}
	if f.focus == fieldFile {
		b.WriteString(st.Panel.Width(max(20, width-2)).Render(f.picker.View()))
		b.WriteString("\n")
	}
	names := [fieldCount]string{fieldCompany: "Company Name", fieldJob: "Job Title", fieldFeedback: "Feedback"}
	for i := fieldCompany; i < fieldCount; i++ {
		b.WriteString(label(i, names[i]))
		b.WriteString("\n  ")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	return b.String()
}
