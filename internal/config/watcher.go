package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"kp-dashboard/internal/logger"
)

const (
	// debounceDelay coalesces the event bursts editors produce when
	// rewriting a file.
	debounceDelay = 250 * time.Millisecond

	// selfSaveWindow is how recently the store must have saved for an
	// event to be attributed to the store's own write.
	selfSaveWindow = time.Second
)

// Watcher reloads the store when its file changes on disk. The parent
// directory is watched rather than the file itself so replace-on-write
// editors and a not-yet-created file both work.
type Watcher struct {
	store *Store
	log   logger.Logger

	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup

	mu      sync.Mutex
	pending *time.Timer
	started bool
}

func NewWatcher(store *Store, log logger.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &Watcher{
		store: store,
		log:   log,
		fsw:   fsw,
		done:  make(chan struct{}),
	}, nil
}

func (w *Watcher) Start() error {
	dir := filepath.Dir(w.store.Path())
	if err := w.fsw.Add(dir); err != nil {
		// Stop returns early when Start never succeeded, so release the
		// fsnotify handle here.
		w.fsw.Close()
		return err
	}

	w.mu.Lock()
	w.started = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop()

	w.log.Info("ConfigWatcher", "watching for configuration changes", map[string]interface{}{
		"path": w.store.Path(),
	})
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	target := w.store.Path()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("ConfigWatcher", err, nil)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	if w.store.SinceSave() < selfSaveWindow {
		return
	}

	w.log.Info("ConfigWatcher", "configuration file changed, reloading", map[string]interface{}{
		"path": w.store.Path(),
	})
	w.store.Reload()
}

// Stop halts watching. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	w.fsw.Close()
	w.wg.Wait()
}

// Shutdown satisfies the shutdown manager's component interface.
func (w *Watcher) Shutdown() {
	w.Stop()
}
