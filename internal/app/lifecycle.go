package app

import (
	"fyne.io/fyne/v2"

	"kp-dashboard/internal/config"
	"kp-dashboard/internal/logger"
	"kp-dashboard/internal/shutdown"
)

// Lifecycle runs the close-time sequence: capture window geometry into the
// store, then hand off to the shutdown manager (which flushes the store as
// its last component).
type Lifecycle struct {
	store       *config.Store
	shutdownMgr *shutdown.Manager
	window      fyne.Window
	log         logger.Logger
	isShutdown  bool
}

func NewLifecycle(store *config.Store, mgr *shutdown.Manager, window fyne.Window, log logger.Logger) *Lifecycle {
	return &Lifecycle{
		store:       store,
		shutdownMgr: mgr,
		window:      window,
		log:         log,
	}
}

func (l *Lifecycle) Shutdown() {
	if l.isShutdown {
		return
	}
	l.isShutdown = true

	l.saveWindowGeometry()
	l.shutdownMgr.Shutdown()
	l.log.Info("Lifecycle", "shutdown sequence completed", nil)
}

func (l *Lifecycle) saveWindowGeometry() {
	size := l.window.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		l.store.Set("app", "window_size", []any{int(size.Width), int(size.Height)})
	}
}
