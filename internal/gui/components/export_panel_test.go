package components

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kp-dashboard/internal/models"
)

func TestExportPanelDefaultOptions(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	panel := NewExportPanel(a.NewWindow("test"))

	opts := panel.Options()
	assert.Equal(t, models.DefaultExportOptions(), opts)
}

func TestExportPanelCollectsToggledState(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	panel := NewExportPanel(a.NewWindow("test"))
	panel.formatSelect.SetSelected(models.FormatHTML.Label())
	panel.horaCheck.SetChecked(false)
	panel.yogasCheck.SetChecked(false)
	panel.colorCheck.SetChecked(false)
	panel.filenameEntry.SetText("MyReport")

	opts := panel.Options()
	assert.Equal(t, models.FormatHTML, opts.Format)
	assert.Equal(t, "MyReport", opts.Filename)
	assert.False(t, opts.Content.Hora)
	assert.False(t, opts.Content.Yogas)
	assert.True(t, opts.Content.Planets)
	assert.False(t, opts.Formatting.ColorCoding)
	assert.True(t, opts.Formatting.SeparateSheets)
}

func TestExportPanelStripsExtension(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	panel := NewExportPanel(a.NewWindow("test"))
	panel.formatSelect.SetSelected(models.FormatCSV.Label())
	panel.filenameEntry.SetText("report.csv")

	assert.Equal(t, "report", panel.Options().Filename)
}

func TestExportPanelEmitsPayload(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	panel := NewExportPanel(a.NewWindow("test"))

	var got *models.ExportOptions
	panel.SetExportHandler(func(opts models.ExportOptions) {
		got = &opts
	})

	test.Tap(panel.exportButton)

	require.NotNil(t, got)
	assert.Equal(t, models.FormatExcel, got.Format)
}
