package snapshot

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/fsnotify/fsnotify"
)

// Watch monitors path and calls onChange with the freshly loaded snapshot,
// or with the load error, each time the file changes. It runs until ctx is
// cancelled.
func Watch(ctx context.Context, path string, onChange func(model.RawInputs, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	// Watch the directory so editors that save by rename are still seen.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	slog.Info("snapshot: watching for changes", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			raw, err := Load(abs)
			if err != nil {
				slog.Debug("snapshot: reload failed", "path", abs, "err", err)
			} else {
				slog.Debug("snapshot: reloaded", "path", abs)
			}
			onChange(raw, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("snapshot: watcher error", "err", err)
		}
	}
}
