package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/resumind/internal/config"
	"github.com/jask/resumind/internal/database/repository"
	"github.com/jask/resumind/internal/feedback"
	"github.com/jask/resumind/internal/prefs"
)

func runImport(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	var failed int
	for _, path := range args {
		res, err := e.svc.ImportFeedbackFile(cmd.Context(), path)
		if err != nil {
			failed++
			e.log.Warn("import failed", zap.String("path", path), zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "%s  %s\n", res.ID, res.Title())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(args))
	}
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	list, err := e.svc.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No resumes yet.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "COMPANY", "JOB", "SCORE", "GRADE", "ADDED")
	for _, r := range list {
		score, grade := "-", "pending"
		if r.Feedback != nil {
			score = strconv.Itoa(r.Feedback.OverallScore)
			grade = feedback.Gauge(r.Feedback.OverallScore).Label
		}
		t.Row(r.ID[:min(8, len(r.ID))], r.CompanyName, r.JobTitle, score, grade, r.CreatedAt.Format("2006-01-02"))
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}

func runAttach(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	list, err := e.svc.List(ctx)
	if err != nil {
		return err
	}
	var matches []repository.Resume
	for _, r := range list {
		if strings.HasPrefix(r.ID, args[0]) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return fmt.Errorf("no resume matches %q", args[0])
	case 1:
	default:
		return fmt.Errorf("%q matches %d resumes", args[0], len(matches))
	}

	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("open feedback: %w", err)
	}
	defer f.Close()
	fb, err := feedback.Decode(f)
	if err != nil {
		return err
	}
	res := matches[0]
	if err := e.svc.AttachFeedback(ctx, res.ID, fb); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d/100\n", res.ID, res.Title(), fb.OverallScore)
	return nil
}

func runTheme(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	current, err := e.themes.Load(ctx)
	if err != nil {
		return err
	}
	next := current
	if len(args) == 1 {
		switch args[0] {
		case "toggle":
			next, err = e.themes.Toggle(ctx, current)
		default:
			next, err = prefs.ParseTheme(args[0])
			if err == nil {
				err = e.themes.Set(ctx, next)
			}
		}
		if err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), next)
	return nil
}

func runSettings(cmd *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	settings, err := repository.NewSettingsRepo(e.db).List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list settings: %w", err)
	}
	for _, s := range settings {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", s.Key, s.Value)
	}
	return nil
}

func configFile() string {
	if configPath != "" {
		return configPath
	}
	return config.Path()
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configFile()
	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	key, value := args[0], args[1]
	switch key {
	case "ui.accordion_mode":
		cfg.UI.AccordionMode = value
	case "ui.default_open":
		cfg.UI.DefaultOpen = value
	case "ui.theme":
		cfg.UI.Theme = value
	case "storage.max_upload_mb":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		cfg.Storage.MaxUploadMB = n
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(configFile(), cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, value)
	return nil
}
