package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/resumind/internal/accordion"
	"github.com/jask/resumind/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestImportListAndTheme(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RESUMIND_CONFIG", filepath.Join(home, "missing.toml"))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cv.pdf"), []byte("%PDF-1.7"), 0o600))
	doc := filepath.Join(dir, "acme.json")
	require.NoError(t, os.WriteFile(doc, []byte(`{
	  "companyName": "Acme",
	  "jobTitle": "Platform Engineer",
	  "resumePath": "cv.pdf",
	  "feedback": {"overallScore": 83}
	}`), 0o600))

	out, err := execute(t, "import", doc)
	require.NoError(t, err)
	require.Contains(t, out, "Acme · Platform Engineer")

	out, err = execute(t, "list")
	require.NoError(t, err)
	require.Contains(t, out, "Acme")
	require.Contains(t, out, "83")
	require.Contains(t, out, "Excellent")

	out, err = execute(t, "theme", "light")
	require.NoError(t, err)
	require.Contains(t, out, "light")

	out, err = execute(t, "theme", "toggle")
	require.NoError(t, err)
	require.Contains(t, out, "dark")

	out, err = execute(t, "theme")
	require.NoError(t, err)
	require.Contains(t, out, "dark")

	out, err = execute(t, "settings")
	require.NoError(t, err)
	require.Contains(t, out, "resumind-theme=dark")

	_, err = execute(t, "theme", "sepia")
	require.Error(t, err)

	require.FileExists(t, filepath.Join(home, ".local", "share", "resumind", "resumind.db"))
	require.FileExists(t, filepath.Join(home, ".local", "share", "resumind", "resumind.log"))
}

func TestImportReportsFailures(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RESUMIND_CONFIG", filepath.Join(home, "missing.toml"))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"feedback": {"overallScore": 250}}`), 0o600))

	out, err := execute(t, "import", bad)
	require.Error(t, err)
	require.Contains(t, out, "invalid feedback")
}

func TestConfigInitAndSet(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "conf", "resumind.toml")
	t.Setenv("RESUMIND_CONFIG", path)

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	require.Contains(t, out, path)
	require.FileExists(t, path)

	_, err = execute(t, "config", "init")
	require.Error(t, err)

	out, err = execute(t, "config", "set", "ui.accordion_mode", "exclusive")
	require.NoError(t, err)
	require.Contains(t, out, "ui.accordion_mode=exclusive")
	_, err = execute(t, "config", "set", "ui.default_open", "skills")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, accordion.Exclusive, cfg.Discipline())
	require.Equal(t, "skills", cfg.UI.DefaultOpen)

	_, err = execute(t, "config", "set", "ui.accordion_mode", "sometimes")
	require.Error(t, err)
	_, err = execute(t, "config", "set", "colour", "red")
	require.Error(t, err)

	cfg, err = config.Load(path)
	require.NoError(t, err)
	require.Equal(t, accordion.Exclusive, cfg.Discipline())
}

func TestAttachFeedback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RESUMIND_CONFIG", filepath.Join(home, "missing.toml"))

	dir := t.TempDir()
	doc := filepath.Join(dir, "initech.json")
	require.NoError(t, os.WriteFile(doc, []byte(`{"companyName": "Initech", "jobTitle": "Analyst", "feedback": {"overallScore": 30}}`), 0o600))
	out, err := execute(t, "import", doc)
	require.NoError(t, err)
	id := strings.Fields(out)[0]

	fb := filepath.Join(dir, "fb.json")
	require.NoError(t, os.WriteFile(fb, []byte(`{"overallScore": 91}`), 0o600))
	out, err = execute(t, "attach", id[:8], fb)
	require.NoError(t, err)
	require.Contains(t, out, "91/100")

	out, err = execute(t, "list")
	require.NoError(t, err)
	require.Contains(t, out, "91")

	_, err = execute(t, "attach", "zzzz", fb)
	require.Error(t, err)
}
