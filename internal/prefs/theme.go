// Package prefs persists small process-wide preferences such as the theme.
package prefs

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeKey is the settings key the theme is stored under.
const ThemeKey = "resumind-theme"

// KV is the get/set store preferences live in.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

func (t Theme) Dark() bool { return t == ThemeDark }

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeStore reads the theme once at startup and writes it on toggle.
type ThemeStore struct {
	kv       KV
	fallback Theme
	detect   func() bool
}

// ThemeOption configures a ThemeStore.
type ThemeOption func(*ThemeStore)

// WithFallback uses t instead of terminal detection when nothing is stored.
func WithFallback(t Theme) ThemeOption {
	return func(s *ThemeStore) { s.fallback = t }
}

// WithDetector replaces lipgloss.HasDarkBackground.
func WithDetector(fn func() bool) ThemeOption {
	return func(s *ThemeStore) { s.detect = fn }
}

func NewThemeStore(kv KV, opts ...ThemeOption) *ThemeStore {
	s := &ThemeStore{kv: kv, detect: lipgloss.HasDarkBackground}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the stored theme. When nothing valid is stored the fallback,
// or else the terminal background, decides and the choice is saved.
func (s *ThemeStore) Load(ctx context.Context) (Theme, error) {
	raw, ok, err := s.kv.Get(ctx, ThemeKey)
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	if ok {
		if t, err := ParseTheme(raw); err == nil {
			return t, nil
		}
	}
	t := s.fallback
	if t == "" {
		t = ThemeLight
		if s.detect() {
			t = ThemeDark
		}
	}
	if err := s.Set(ctx, t); err != nil {
		return "", err
	}
	return t, nil
}

func (s *ThemeStore) Set(ctx context.Context, t Theme) error {
	if err := s.kv.Set(ctx, ThemeKey, string(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Toggle persists and returns the opposite of current.
func (s *ThemeStore) Toggle(ctx context.Context, current Theme) (Theme, error) {
	next := current.Opposite()
	if err := s.Set(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}
