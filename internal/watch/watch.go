// Package watch re-runs an action whenever one of a set of files changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/railwayapp/envman/internal/logging"
)

// DefaultDebounce groups the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// Watcher calls OnChange after any watched file is written, created,
// renamed or removed. Parent directories are watched rather than the files
// themselves so that editors that save by replacing the file are followed.
type Watcher struct {
	paths    map[string]bool
	dirs     map[string]bool
	debounce time.Duration
	onChange func(path string)
}

// New returns a Watcher for paths.
func New(paths []string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	w := &Watcher{
		paths:    make(map[string]bool, len(paths)),
		dirs:     make(map[string]bool, len(paths)),
		debounce: debounce,
		onChange: onChange,
	}

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve %s", path)
		}
		w.paths[abs] = true
		w.dirs[filepath.Dir(abs)] = true
	}
	return w, nil
}

// Run blocks until ctx is done or the underlying watcher fails. OnChange is
// called from the Run goroutine only, one call at a time.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create file watcher")
	}
	defer fsw.Close()

	for dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return errors.Wrapf(err, "watch %s", dir)
		}
	}

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	var pending string

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			pending = filepath.Clean(event.Name)
			timer.Reset(w.debounce)

		case <-timer.C:
			logging.WithFile(pending).Debug("file changed")
			w.onChange(pending)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logging.WithError(err).Warn("file watcher error")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !w.paths[filepath.Clean(event.Name)] {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}
