// Package watcher provides debounced file system watching for the todo directory.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay is the time to wait after the last file event before triggering
// a callback. Saves touch a temp file and then rename it, and archiving moves
// lines across two files, so bursts collapse into a single notification.
const debounceDelay = 100 * time.Millisecond

// Watcher watches the todo directory and invokes a callback when one of the
// data files changes. It watches the directory rather than the files
// themselves: the rename that replaces a file on save would silently detach
// a watch placed on the file.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]struct{}
	mu       sync.Mutex
	timer    *time.Timer
	callback func()
}

// New creates a Watcher that monitors dir for changes to the named files.
// Names are matched by base name, e.g. "todo.txt".
func New(dir string, files []string, callback func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	watched := make(map[string]struct{}, len(files))
	for _, f := range files {
		watched[filepath.Base(f)] = struct{}{}
	}

	return &Watcher{
		fsw:      fsw,
		files:    watched,
		callback: callback,
	}, nil
}

// Run starts the watch loop. It blocks until the context is canceled.
// Errors from the underlying watcher are passed to the optional errFn callback.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// Only react to meaningful operations.
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if _, watched := w.files[filepath.Base(event.Name)]; !watched {
				continue
			}
			w.debounce()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, w.callback)
}
