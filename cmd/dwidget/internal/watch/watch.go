// Package watch reloads files when they change on disk.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before a change fires.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes of a set of files. It watches the parent
// directories so that editors replacing a file by rename are seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	onChange func(path string)
	onError  func(error)
}

// Options configures a Watcher.
type Options struct {
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// OnChange is called once per quiet period with the changed file.
	OnChange func(path string)
	OnError  func(error)
}

// New watches paths. Call Run to deliver events and Close when done.
func New(opts Options, paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]bool),
		debounce: opts.Debounce,
		onChange: opts.OnChange,
		onError:  opts.OnError,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
		dirs[dir] = true
	}
	return w, nil
}

// Run delivers events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]bool)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			path, _ := filepath.Abs(event.Name)
			if !w.files[path] {
				continue
			}
			// Write, create and rename cover in-place and atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending[path] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			timerC = timer.C

		case <-timerC:
			timer, timerC = nil, nil
			for path := range pending {
				delete(pending, path)
				if w.onChange != nil {
					w.onChange(path)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// Close stops watching. Run returns after Close.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
