package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 200 * time.Millisecond

// Watch starts an fsnotify watcher on dir and reloads the catalog whenever a
// descriptor file changes, until ctx is cancelled. Bursts of events (editor
// save dances, bulk copies) coalesce into a single reload.
func Watch(ctx context.Context, dir string, cat *FSCatalog, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}
	logger.Info("catalog: watcher started", slog.String("dir", dir))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time
	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(reloadDebounce)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(reloadDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("catalog: watcher stopped")
			return nil

		case <-reloadCh:
			if err := cat.Reload(); err != nil {
				logger.Warn("catalog: reload failed", slog.String("error", err.Error()))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isDescriptor(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("catalog: watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

func isDescriptor(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
