// Watches the photo directory to rebuild the index on change.

package assets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn every time files in dir change, coalescing bursts of events
// within debounce. It blocks until ctx is done and returns nil then.
//
// fn runs on the watching goroutine, one call at a time. An error from fn is
// logged and watching continues.
func Watch(ctx context.Context, dir string, debounce time.Duration, fn func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if isTemp(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "Error watching photos", "err", err)
		case <-timer.C:
			if err := fn(); err != nil {
				slog.ErrorContext(ctx, "Rebuild failed", "err", err)
			}
		}
	}
}

// isTemp matches the temporary files written by atomic saves.
func isTemp(name string) bool {
	return strings.HasSuffix(name, ".tmp")
}
