// Package gui builds the dashboard window: a tabbed layout with the
// dashboard, settings and export panels over a shared status bar.
package gui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"kp-dashboard/internal/config"
	"kp-dashboard/internal/gui/components"
	"kp-dashboard/internal/logger"
	"kp-dashboard/internal/models"
)

type Manager struct {
	window     fyne.Window
	store      *config.Store
	log        logger.Logger
	isShutdown bool

	messagePanel  *components.MessagePanel
	exportPanel   *components.ExportPanel
	settingsPanel *components.SettingsPanel
	statusBar     *components.StatusBar

	locationSelect *widget.Select
	dateLabel      *widget.Label
	generateButton *widget.Button

	generateHandler func(location string)
	exportHandler   func(models.ExportOptions)

	unsubscribe func()
}

func NewManager(window fyne.Window, store *config.Store, locations []string, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}

	manager := &Manager{
		window:        window,
		store:         store,
		log:           log,
		messagePanel:  components.NewMessagePanel("Welcome to the KP Astrology Dashboard.\nPick a location and generate a report."),
		exportPanel:   components.NewExportPanel(window),
		settingsPanel: components.NewSettingsPanel(store),
		statusBar:     components.NewStatusBar(),
	}

	manager.locationSelect = widget.NewSelect(locations, func(name string) {
		manager.statusBar.SetLocation(name)
	})
	if len(locations) > 0 {
		manager.locationSelect.SetSelected(locations[0])
	}

	manager.dateLabel = widget.NewLabel("Report date: " + time.Now().Format("2006-01-02"))

	manager.generateButton = widget.NewButton("Generate Report", manager.onGenerate)
	manager.generateButton.Importance = widget.HighImportance

	manager.exportPanel.SetExportHandler(manager.onExport)
	manager.settingsPanel.SetSavedHandler(func() {
		manager.ShowMessage(components.SeveritySuccess, "Settings saved.")
	})
	manager.settingsPanel.SetResetHandler(func() {
		manager.ShowMessage(components.SeverityInfo, "Settings reset to defaults.")
	})

	// Live reloads and resets republish the whole tree; rebind the
	// settings form when that happens.
	manager.unsubscribe = store.Subscribe(func(e config.Event) {
		if e.Section != "" {
			return
		}
		fyne.Do(func() {
			manager.settingsPanel.RefreshFromStore()
		})
	})

	log.Info("GUIManager", "initialized", map[string]interface{}{
		"locations": len(locations),
	})

	return manager
}

func (m *Manager) GetMainContainer() fyne.CanvasObject {
	dashboardTab := container.NewVBox(
		m.messagePanel.GetContainer(),
		widget.NewSeparator(),
		container.NewGridWithColumns(2,
			widget.NewLabel("Location:"), m.locationSelect,
		),
		m.dateLabel,
		m.generateButton,
	)

	tabs := container.NewAppTabs(
		container.NewTabItem("Dashboard", dashboardTab),
		container.NewTabItem("Settings", m.settingsPanel.GetContainer()),
		container.NewTabItem("Export", container.NewVScroll(m.exportPanel.GetContainer())),
	)

	return container.NewBorder(
		nil,
		m.statusBar.GetContainer(),
		nil, nil,
		tabs,
	)
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

func (m *Manager) SetGenerateHandler(handler func(location string)) {
	m.generateHandler = handler
}

func (m *Manager) SetExportHandler(handler func(models.ExportOptions)) {
	m.exportHandler = handler
}

// SelectedLocation returns the dashboard's current location choice.
func (m *Manager) SelectedLocation() string {
	return m.locationSelect.Selected
}

// NewProgressDialog builds a modal progress dialog over the main window.
func (m *Manager) NewProgressDialog(title, message string) *components.ProgressDialog {
	return components.NewProgressDialog(title, message, m.window)
}

// ShowMessage updates the dashboard message panel. Safe to call from any
// goroutine.
func (m *Manager) ShowMessage(severity components.Severity, message string) {
	fyne.Do(func() {
		m.messagePanel.Show(severity, message)
	})
}

func (m *Manager) UpdateStatus(status string) {
	fyne.Do(func() {
		m.statusBar.SetStatus(status)
	})
}

func (m *Manager) SetLastExport(path string) {
	fyne.Do(func() {
		m.statusBar.SetLastExport(path)
	})
}

func (m *Manager) ShowError(title string, err error) {
	m.log.Error("GUIManager", err, map[string]interface{}{
		"title": title,
	})

	fyne.Do(func() {
		dialog.ShowError(err, m.window)
	})
}

func (m *Manager) onGenerate() {
	if m.generateHandler != nil {
		m.generateHandler(m.locationSelect.Selected)
	}
}

func (m *Manager) onExport(opts models.ExportOptions) {
	m.log.Info("GUIManager", "export requested", map[string]interface{}{
		"format": string(opts.Format),
		"sheets": len(opts.Sheets()),
	})

	if m.exportHandler != nil {
		m.exportHandler(opts)
	}
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.log.Info("GUIManager", "shutdown initiated", nil)
}
