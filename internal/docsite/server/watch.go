package server

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/microsoft/retina-site/internal/docsite/logger"
)

// Watcher calls onChange once a burst of file changes below the watched
// trees has settled for the debounce period.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	onChange func()
	log      *logger.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher with no watched paths.
func NewWatcher(debounce time.Duration, log *logger.Logger, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{fs: fw, debounce: debounce, onChange: onChange, log: log}, nil
}

// AddTree watches root and every directory below it. fsnotify is not
// recursive, so each directory is added on its own. A missing root is skipped.
func (w *Watcher) AddTree(root string) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		w.log.Debug("not watching missing " + root)
		return
	}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			w.log.WithFields(map[string]any{"path": p}).Error(err, "walking watch tree")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fs.Add(p); err != nil {
			w.log.WithFields(map[string]any{"path": p}).Error(err, "failed to watch")
		}
		return nil
	})
	if err != nil {
		w.log.WithFields(map[string]any{"path": root}).Error(err, "walking watch tree")
	}
}

// Run processes events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.log.WithFields(map[string]any{"path": event.Name, "op": event.Op.String()}).Debug("change detected")

			// New directories are not covered by existing watches.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.AddTree(event.Name)
				}
			}
			w.schedule()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error(err, "watcher error")
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.onChange)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.fs.Close()
}
