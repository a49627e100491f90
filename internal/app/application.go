package app

import (
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"kp-dashboard/internal/config"
	"kp-dashboard/internal/export"
	"kp-dashboard/internal/generator"
	"kp-dashboard/internal/gui"
	"kp-dashboard/internal/logger"
	"kp-dashboard/internal/shutdown"
)

const (
	AppName    = "KP Astrology Dashboard"
	AppID      = "com.kpastrology.dashboard"
	AppVersion = "1.0.0"
)

type Application struct {
	fyneApp     fyne.App
	window      fyne.Window
	store       *config.Store
	watcher     *config.Watcher
	guiManager  *gui.Manager
	generator   *generator.Generator
	writer      *export.Writer
	shutdownMgr *shutdown.Manager
	lifecycle   *Lifecycle
	log         logger.Logger
}

func NewApplication() (*Application, error) {
	log := newLogger()

	store := config.New(config.WithLogger(log))
	store.Load()

	fyneApp := fyneapp.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)

	width, height := windowSize(store)
	window.Resize(fyne.NewSize(width, height))
	// Fyne offers no programmatic window placement, so app.window_position
	// is persisted for other frontends but not applied here.
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":     AppVersion,
		"config_path": store.Path(),
		"first_run":   store.GetBool("app", "first_run", true),
	})

	guiManager := gui.NewManager(window, store, generator.LocationNames(), log)
	gen := generator.New(log)
	writer := export.NewWriter(log)

	watcher, err := config.NewWatcher(store, log)
	if err != nil {
		// The watcher is a convenience; the app runs fine without it.
		log.Error("Application", err, map[string]interface{}{
			"detail": "configuration live reload disabled",
		})
		watcher = nil
	}

	shutdownMgr := shutdown.NewManager(log)
	lifecycle := NewLifecycle(store, shutdownMgr, window, log)

	application := &Application{
		fyneApp:     fyneApp,
		window:      window,
		store:       store,
		watcher:     watcher,
		guiManager:  guiManager,
		generator:   gen,
		writer:      writer,
		shutdownMgr: shutdownMgr,
		lifecycle:   lifecycle,
		log:         log,
	}

	application.setupHandlers()
	application.registerShutdown()

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func (a *Application) setupHandlers() {
	handlers := NewHandlers(a.store, a.generator, a.writer, a.guiManager, a.log)

	a.guiManager.SetGenerateHandler(handlers.HandleGenerate)
	a.guiManager.SetExportHandler(handlers.HandleExport)
}

func (a *Application) registerShutdown() {
	if a.watcher != nil {
		a.shutdownMgr.Register("config-watcher", a.watcher)
	}
	a.shutdownMgr.Register("gui-manager", a.guiManager)
	a.shutdownMgr.Register("config-store", storeFlusher{store: a.store})
}

func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.log.Info("Application", "shutdown requested", nil)
		a.lifecycle.Shutdown()
		a.window.Close()
	})

	if a.watcher != nil {
		if err := a.watcher.Start(); err != nil {
			a.log.Error("Application", err, map[string]interface{}{
				"detail": "configuration live reload disabled",
			})
		}
	}
	a.shutdownMgr.Listen()

	a.window.SetContent(a.guiManager.GetMainContainer())
	a.window.Show()

	a.log.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	return nil
}

// storeFlusher adapts the config store to the shutdown manager: the tree is
// flushed to disk exactly once, at teardown.
type storeFlusher struct {
	store *config.Store
}

func (f storeFlusher) Shutdown() {
	f.store.Set("app", "first_run", false)
	f.store.Save()
}

// windowSize reads app.window_size, falling back to 1024x768 when the
// persisted value is missing or has fewer than two elements.
func windowSize(store *config.Store) (float32, float32) {
	size := store.GetInts("app", "window_size", []int{1024, 768})
	if len(size) < 2 {
		size = []int{1024, 768}
	}
	return float32(size[0]), float32(size[1])
}

func newLogger() logger.Logger {
	level := zerolog.InfoLevel
	if os.Getenv("KP_DEBUG") == "true" {
		level = zerolog.DebugLevel
	}

	if os.Getenv("KP_JSON_LOGS") == "true" {
		return logger.NewJSONLogger(level)
	}
	return logger.NewConsoleLogger(level)
}
