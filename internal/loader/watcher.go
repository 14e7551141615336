package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-parses a single OBJ file whenever it is written or recreated.
// Bursts of events within the debounce window collapse into one parse.
type Watcher struct {
	loader   *Loader
	path     string
	debounce time.Duration
	log      *zap.Logger

	fsnotify *fsnotify.Watcher
	results  chan Result
	reload   chan struct{}
	done     chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewWatcher starts watching path. The file's directory is watched rather
// than the file itself so editors that replace the file on save still
// trigger a reload.
func NewWatcher(l *Loader, path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		loader:   l,
		path:     abs,
		debounce: debounce,
		log:      l.log.Named("watch").With(zap.String("path", abs)),
		fsnotify: fsWatch,
		results:  make(chan Result),
		reload:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Results delivers one Result per completed parse. It is closed by Close.
func (w *Watcher) Results() <-chan Result {
	return w.results
}

// Reload requests a parse without waiting for a file event.
func (w *Watcher) Reload() {
	select {
	case w.reload <- struct{}{}:
	default:
	}
}

// Close stops watching and waits for the event loop to exit. A parse that is
// still running finishes in the background; its result is dropped.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		err = w.fsnotify.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer close(w.results)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	var fire <-chan time.Time
	var pending <-chan Result

	arm := func() {
		timer.Reset(w.debounce)
		fire = timer.C
	}

	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.log.Debug("file changed", zap.Stringer("op", e.Op))
				arm()
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-w.reload:
			arm()

		case <-fire:
			fire = nil
			if pending != nil {
				// The previous result has not been forwarded yet.
				w.log.Debug("result pending, deferring parse")
				arm()
				continue
			}
			ch, err := w.loader.Load(w.path)
			if errors.Is(err, ErrBusy) {
				w.log.Debug("parse in progress, retrying")
				arm()
				continue
			}
			pending = ch

		case res, ok := <-pending:
			if !ok {
				pending = nil
				continue
			}
			select {
			case w.results <- res:
			case <-w.done:
				return
			}

		case <-w.done:
			return
		}
	}
}
