package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bloodmagesoftware/summit/converter"
	"github.com/fsnotify/fsnotify"
)

// Debounce is the window in which repeated events for one file are merged.
const Debounce = 100 * time.Millisecond

// Watcher reports changes to map documents. Directories are watched rather
// than files so that atomic rename-into-place saves are seen.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	dirs    map[string]bool
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New watches the given map files, or every .json file in the given
// directories.
func New(paths ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]bool)
	dirs := make(map[string]bool)
	watched := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		if isMapFile(abs) {
			files[abs] = true
			watched[filepath.Dir(abs)] = true
		} else {
			dirs[abs] = true
			watched[abs] = true
		}
	}
	for dir := range watched {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	watcher := &Watcher{
		watcher: w,
		files:   files,
		dirs:    dirs,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Events and Errors are closed once the
// background loop has exited.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Errors)
	defer close(w.Events)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.wants(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < Debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			default:
				// drop; the consumer has not read the previous error
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) wants(name string) bool {
	if !isMapFile(name) {
		return false
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return w.files[abs] || w.dirs[filepath.Dir(abs)]
}

func isMapFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json") && !converter.IsHashCache(path)
}

// Run calls fn for every change until ctx is cancelled. Watcher errors are
// passed to onErr when it is non-nil.
func Run(ctx context.Context, w *Watcher, fn func(path string), onErr func(error)) error {
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			fn(path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if onErr != nil {
				onErr(err)
			}
		}
	}
}
