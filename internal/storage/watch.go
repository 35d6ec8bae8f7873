package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"stopwatch/internal/ui/preferences"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the settings file whenever it is written and passes the
// result to onChange. Watching stops when ctx is cancelled.
func Watch(ctx context.Context, path string, logger *zap.Logger, onChange func(preferences.Settings)) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	// The directory is watched so editors that replace the file are seen.
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				settings, err := LoadSettings(path)
				if err != nil {
					logger.Warn("reload settings", zap.String("path", path), zap.Error(err))
					continue
				}
				logger.Debug("settings reloaded", zap.String("path", path))
				onChange(settings)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("settings watcher", zap.Error(err))
			}
		}
	}()
	return nil
}
