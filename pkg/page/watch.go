package page

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watch reports every change to the snapshot file at path as one observed
// batch. The parent directory is watched so that editors and capture tools
// that replace the file by rename keep being followed. The channel closes
// when ctx is done or the watcher fails. Watcher errors are reported to logger,
// or to the default logger when it is nil.
func Watch(ctx context.Context, path string, logger *log.Logger) (<-chan struct{}, error) {
	if logger == nil {
		logger = log.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("page: resolve snapshot path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("page: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("page: watch %s: %w", filepath.Dir(abs), err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Warn("snapshot watcher close failed", "err", err)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("snapshot watcher error", "path", abs, "err", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
					// A batch is already queued; the detector coalesces anyway.
				}
			}
		}
	}()
	return changes, nil
}
