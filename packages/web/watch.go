package web

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/abdul-hamid-achik/userportal/packages/core/config"
)

// WatchDebounceDelay collapses bursts of write events from editors.
const WatchDebounceDelay = 300 * time.Millisecond

// Watch reloads the config file at path whenever it changes, until ctx is
// done. The parent directory is watched so that editors that replace the
// file on save are picked up. A file that fails to load or validate is
// logged and the previous configuration stays active.
func (s *Server) Watch(ctx context.Context, path string) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	var mu sync.Mutex
	var debounceTimer *time.Timer
	defer func() {
		mu.Lock()
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			mu.Lock()
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				s.reload(path)
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.WithError(err).Warn("config watcher error")
		}
	}
}

func (s *Server) reload(path string) {
	cfg, err := config.LoadConfig(path)
	if err == nil {
		err = s.Apply(cfg)
	}
	if err != nil {
		s.logger.WithError(err).WithField("path", path).Warn("config reload failed; keeping previous config")
		return
	}
	s.logger.WithField("path", path).Info("config reloaded")
}
