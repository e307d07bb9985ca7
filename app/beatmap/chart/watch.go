package chart

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors path and calls onChange with the reloaded Chart each time the
// file is written. It runs until ctx is cancelled.
//
// A chart that fails to load is logged and skipped, onChange only ever sees valid charts.
func Watch(ctx context.Context, path string, onChange func(*Chart)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("chart: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("chart: watch %s: %w", path, err)
	}

	slog.Info("chart: watching for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Editors often save by rename, which shows up as Create
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			c, err := Load(path)
			if err != nil {
				slog.Error("chart: reload failed", "path", path, "err", err)
				continue
			}

			slog.Info("chart: reloaded", "path", path, "title", c.Title)
			onChange(c)

			// Re-add the file in case an atomic save replaced the inode
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Error("chart: watcher error", "err", err)
		}
	}
}
