package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/resumind/internal/config"
	"github.com/jask/resumind/internal/database"
	"github.com/jask/resumind/internal/database/repository"
	"github.com/jask/resumind/internal/logging"
	"github.com/jask/resumind/internal/prefs"
	"github.com/jask/resumind/internal/service"
	"github.com/jask/resumind/internal/storage"
	"github.com/jask/resumind/internal/tui"
	"github.com/jask/resumind/internal/watcher"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "resumind",
	Short: "Terminal dashboard for resume feedback",
	Long: `resumind keeps your resumes and their analysis in one place.

Run without arguments to open the dashboard. Feedback documents dropped into
the inbox directory are imported while it runs.`,
	SilenceUsage: true,
	RunE:         runDashboard,
}

var importCmd = &cobra.Command{
	Use:   "import [feedback.json...]",
	Short: "Import feedback documents",
	Long: `Each document is a JSON object:

  {"companyName": "...", "jobTitle": "...", "resumePath": "cv.pdf", "feedback": {...}}

resumePath is optional and relative to the document. Importing the same file
again updates the resume in place.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored resumes",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var attachCmd = &cobra.Command{
	Use:   "attach <id> <feedback.json>",
	Short: "Attach an analysis to a stored resume",
	Long:  `id may be any unique prefix of the id printed by list or import.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runAttach,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print stored preferences",
	Args:  cobra.NoArgs,
	RunE:  runSettings,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective config to the config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one dashboard setting in the config file",
	Long: `Supported keys:

  ui.accordion_mode     multiple or exclusive
  ui.default_open       section id opened first (empty for none)
  ui.theme              dark, light or empty
  storage.max_upload_mb upload limit in megabytes`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var forceInit bool

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or change the saved theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"dark", "light", "toggle"},
	RunE:      runTheme,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HOME/.config/resumind/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configSetCmd)
	rootCmd.AddCommand(importCmd, listCmd, attachCmd, themeCmd, settingsCmd, configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// env is everything a command needs, opened from config.
type env struct {
	cfg    config.Config
	log    *zap.Logger
	db     *sql.DB
	svc    *service.ResumeService
	themes *prefs.ThemeStore
}

func openEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger, err := logging.New(cfg.Log, verbose)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(cfg.Database.Path, cfg.Database.Migrations); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	files, err := storage.NewFS(cfg.Storage.Root)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}

	var themeOpts []prefs.ThemeOption
	if cfg.UI.Theme != "" {
		t, err := prefs.ParseTheme(cfg.UI.Theme)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		themeOpts = append(themeOpts, prefs.WithFallback(t))
	}

	logger.Debug("environment ready",
		zap.String("db", cfg.Database.Path),
		zap.String("files", files.Root()),
		zap.Stringer("accordion", cfg.Discipline()))
	return &env{
		cfg: cfg,
		log: logger,
		db:  db,
		svc: &service.ResumeService{
			Resumes:        repository.NewResumeRepo(db),
			Files:          files,
			MaxUploadBytes: cfg.MaxUploadBytes(),
			Log:            logger,
		},
		themes: prefs.NewThemeStore(repository.NewSettingsRepo(db), themeOpts...),
	}, nil
}

func (e *env) Close() {
	_ = e.db.Close()
	_ = e.log.Sync()
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	theme, err := e.themes.Load(ctx)
	if err != nil {
		e.log.Warn("theme", zap.Error(err))
		theme = prefs.ThemeDark
	}

	app := tui.New(ctx, e.cfg, e.svc, e.themes, theme, e.log)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	w, err := watcher.New(e.cfg.Storage.Inbox, watcher.DefaultConfig(), func(paths []string) {
		p.Send(tui.InboxMsg{Paths: paths})
	}, e.log)
	if err != nil {
		e.log.Warn("inbox watcher disabled", zap.Error(err))
	} else {
		go func() {
			if err := w.Run(ctx); err != nil {
				e.log.Warn("inbox watcher stopped", zap.Error(err))
			}
		}()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
