package components

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"kp-dashboard/internal/models"
)

// ExportPanel presents export format, file and content options and emits
// an ExportOptions payload when the user requests an export.
type ExportPanel struct {
	container *fyne.Container
	window    fyne.Window

	formatSelect  *widget.Select
	filenameEntry *widget.Entry

	planetsCheck  *widget.Check
	housesCheck   *widget.Check
	aspectsCheck  *widget.Check
	horaCheck     *widget.Check
	transitsCheck *widget.Check
	yogasCheck    *widget.Check

	highlightCheck  *widget.Check
	colorCheck      *widget.Check
	autofilterCheck *widget.Check
	sheetsCheck     *widget.Check

	exportButton *widget.Button

	exportHandler func(models.ExportOptions)
}

func NewExportPanel(window fyne.Window) *ExportPanel {
	panel := &ExportPanel{window: window}
	panel.setupControls()
	return panel
}

func (ep *ExportPanel) setupControls() {
	defaults := models.DefaultExportOptions()

	formatLabels := []string{
		models.FormatExcel.Label(),
		models.FormatCSV.Label(),
		models.FormatHTML.Label(),
	}
	ep.formatSelect = widget.NewSelect(formatLabels, nil)
	ep.formatSelect.SetSelected(defaults.Format.Label())

	ep.filenameEntry = widget.NewEntry()
	ep.filenameEntry.SetText(defaults.Filename)

	browseButton := widget.NewButton("Browse...", ep.onBrowse)

	fileGroup := widget.NewCard("File Options", "", container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Export Format:"), ep.formatSelect,
		),
		container.NewBorder(nil, nil, widget.NewLabel("File Name:"), browseButton, ep.filenameEntry),
	))

	ep.planetsCheck = newCheckedCheck("Planet Positions")
	ep.housesCheck = newCheckedCheck("House Data")
	ep.aspectsCheck = newCheckedCheck("Aspects")
	ep.horaCheck = newCheckedCheck("Hora Timings")
	ep.transitsCheck = newCheckedCheck("Planet Transits")
	ep.yogasCheck = newCheckedCheck("Yogas")

	contentGroup := widget.NewCard("Content to Export", "", container.NewVBox(
		ep.planetsCheck,
		ep.housesCheck,
		ep.aspectsCheck,
		ep.horaCheck,
		ep.transitsCheck,
		ep.yogasCheck,
	))

	ep.highlightCheck = newCheckedCheck("Highlight Current Time")
	ep.colorCheck = newCheckedCheck("Use Color Coding")
	ep.autofilterCheck = newCheckedCheck("Include AutoFilter")
	ep.sheetsCheck = newCheckedCheck("Use Separate Sheets")

	formatGroup := widget.NewCard("Formatting Options", "", container.NewVBox(
		ep.highlightCheck,
		ep.colorCheck,
		ep.autofilterCheck,
		ep.sheetsCheck,
	))

	ep.exportButton = widget.NewButton("Export", ep.onExport)
	ep.exportButton.Importance = widget.HighImportance

	ep.container = container.NewVBox(
		widget.NewLabelWithStyle("Export Options", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		fileGroup,
		contentGroup,
		formatGroup,
		ep.exportButton,
	)
}

func newCheckedCheck(label string) *widget.Check {
	check := widget.NewCheck(label, nil)
	check.SetChecked(true)
	return check
}

func (ep *ExportPanel) GetContainer() *fyne.Container {
	return ep.container
}

func (ep *ExportPanel) SetExportHandler(handler func(models.ExportOptions)) {
	ep.exportHandler = handler
}

// Options collects the current panel state.
func (ep *ExportPanel) Options() models.ExportOptions {
	format := models.FormatFromLabel(ep.formatSelect.Selected)

	filename := strings.TrimSpace(ep.filenameEntry.Text)
	filename = strings.TrimSuffix(filename, "."+format.Extension())

	return models.ExportOptions{
		Format:   format,
		Filename: filename,
		Content: models.ExportContent{
			Planets:  ep.planetsCheck.Checked,
			Houses:   ep.housesCheck.Checked,
			Aspects:  ep.aspectsCheck.Checked,
			Hora:     ep.horaCheck.Checked,
			Transits: ep.transitsCheck.Checked,
			Yogas:    ep.yogasCheck.Checked,
		},
		Formatting: models.ExportFormatting{
			HighlightCurrent: ep.highlightCheck.Checked,
			ColorCoding:      ep.colorCheck.Checked,
			AutoFilter:       ep.autofilterCheck.Checked,
			SeparateSheets:   ep.sheetsCheck.Checked,
		},
	}
}

// onBrowse lets the user pick the save location; the chosen path replaces
// the file name field with its extension stripped.
func (ep *ExportPanel) onBrowse() {
	format := models.FormatFromLabel(ep.formatSelect.Selected)
	extension := "." + format.Extension()

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}

		path := writer.URI().Path()
		writer.Close()

		ep.filenameEntry.SetText(strings.TrimSuffix(path, extension))
	}, ep.window)

	name := ep.filenameEntry.Text
	if !strings.HasSuffix(name, extension) {
		name += extension
	}
	saveDialog.SetFileName(name)
	saveDialog.SetFilter(storage.NewExtensionFileFilter([]string{extension}))
	saveDialog.Show()
}

func (ep *ExportPanel) onExport() {
	if ep.exportHandler != nil {
		ep.exportHandler(ep.Options())
	}
}
