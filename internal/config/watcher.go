package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce coalesces bursts of write events from editors that
// save in multiple steps.
const defaultDebounce = 100 * time.Millisecond

// Watcher reloads a Manager's bindings when its file changes on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	manager  *Manager
	path     string
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer

	errs    chan error
	reloads chan int

	closeOnce sync.Once
	closeCh   chan struct{}
	wg        sync.WaitGroup
}

// Watch starts watching the manager's bindings file for changes.
// The file's directory is watched so the file may be replaced atomically.
func (m *Manager) Watch() (*Watcher, error) {
	absPath, err := filepath.Abs(m.path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		manager:  m,
		path:     absPath,
		debounce: defaultDebounce,
		errs:     make(chan error, 16),
		reloads:  make(chan int, 16),
		closeCh:  make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Errors returns watcher and reload errors.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Reloads reports the binding count after each completed reload.
func (w *Watcher) Reloads() <-chan int {
	return w.reloads
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.wg.Wait()

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
	})
	return err
}

// loop consumes fsnotify events until closed.
func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// scheduleReload debounces change events before reloading.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.closeCh:
		return
	default:
	}

	n, err := w.manager.Reload()
	if err != nil {
		w.sendError(err)
		return
	}

	select {
	case w.reloads <- n:
	default:
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
