package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container     *fyne.Container
	statusLabel   *widget.Label
	locationLabel *widget.Label
	exportLabel   *widget.Label
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Ready")
	locationLabel := widget.NewLabel("Location: --")
	exportLabel := widget.NewLabel("Last export: --")

	infoContainer := container.NewHBox(
		locationLabel,
		widget.NewSeparator(),
		exportLabel,
	)

	mainContainer := container.NewBorder(
		nil, nil,
		statusLabel,
		infoContainer,
	)

	return &StatusBar{
		container:     mainContainer,
		statusLabel:   statusLabel,
		locationLabel: locationLabel,
		exportLabel:   exportLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) SetLocation(name string) {
	sb.locationLabel.SetText("Location: " + name)
}

func (sb *StatusBar) SetLastExport(path string) {
	sb.exportLabel.SetText("Last export: " + path)
}
