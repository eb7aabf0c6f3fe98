// Package watcher reports feedback documents dropped into the inbox directory.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type Config struct {
	DebounceWindow time.Duration
	MaxBatchSize   int
	Patterns       []string
}

func DefaultConfig() Config {
	return Config{
		DebounceWindow: 300 * time.Millisecond,
		MaxBatchSize:   50,
		Patterns:       []string{"**/*.json"},
	}
}

// Watcher watches one directory (not recursively) and hands debounced
// batches of matching paths to the callback.
type Watcher struct {
	dir       string
	config    Config
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	log       *zap.Logger
}

func New(dir string, config Config, onBatch func([]string), log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir inbox: %w", err)
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	w := &Watcher{
		dir:       dir,
		config:    config,
		fsWatcher: fsWatcher,
		log:       log.With(zap.String("component", "watcher")),
	}
	w.debouncer = NewDebouncer(config.DebounceWindow, config.MaxBatchSize, onBatch)
	return w, nil
}

// Run blocks until ctx is done or the underlying watcher fails, then releases
// everything.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.debouncer.Stop()
	defer w.fsWatcher.Close()

	w.log.Info("watching inbox", zap.String("dir", w.dir))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.Matches(event.Name) {
				continue
			}
			w.log.Debug("inbox event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			w.debouncer.Add(event.Name)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

// Matches reports whether path, relative to the watched directory, matches
// any configured pattern.
func (w *Watcher) Matches(path string) bool {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.config.Patterns {
		if match, _ := doublestar.Match(pattern, rel); match {
			return true
		}
	}
	return false
}
