package content

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces bursts of editor writes into one reload.
const reloadDebounce = 300 * time.Millisecond

// Watch reloads the store whenever a file under its content directory
// changes. It blocks until ctx is cancelled. Reload failures are logged and
// the previous snapshot stays in place.
func Watch(ctx context.Context, s *Store, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("component", "watch", "dir", s.Dir())

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer w.Close()
	if err := addDirsRecursive(w, s.Dir(), log); err != nil {
		return err
	}

	reloadReq := make(chan struct{}, 1)
	var mu sync.Mutex
	var timer *time.Timer
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(reloadDebounce, func() {
			select {
			case reloadReq <- struct{}{}:
			default:
			}
		})
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	// Reloads run one at a time; a change during a reload queues exactly
	// one more.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-reloadReq:
				log.Info("change detected, reloading content")
				if err := s.Reload(ctx); err != nil {
					log.Warn("content reload failed", "error", err)
				}
			}
		}
	}()
	defer wg.Wait()

	log.Info("watching content")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ignoreEvent(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = addDirsRecursive(w, ev.Name, log)
				}
			}
			log.Debug("file change", "path", ev.Name, "op", ev.Op.String())
			trigger()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)
		}
	}
}

func addDirsRecursive(w *fsnotify.Watcher, root string, log *slog.Logger) error {
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				log.Warn("watch add failed", "dir", path, "error", err)
			}
		}
		return nil
	})
}

// ignoreEvent filters hidden files, editor temp files and chmod-only events.
func ignoreEvent(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return true
	}
	base := filepath.Base(ev.Name)
	return strings.HasPrefix(base, ".") ||
		strings.HasPrefix(base, "#") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx")
}
