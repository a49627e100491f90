package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultExportOptions(t *testing.T) {
	opts := DefaultExportOptions()

	assert.Equal(t, FormatExcel, opts.Format)
	assert.Equal(t, "KP_Astrology_Report", opts.Filename)
	assert.True(t, opts.Content.Planets)
	assert.True(t, opts.Content.Yogas)
	assert.True(t, opts.Formatting.SeparateSheets)
}

func TestSheetsFollowsContentFlags(t *testing.T) {
	opts := DefaultExportOptions()
	assert.Equal(t, []string{
		SheetPlanets, SheetHouses, SheetAspects,
		SheetHora, SheetTransits, SheetYogas,
	}, opts.Sheets())

	opts.Content = ExportContent{Aspects: true, Yogas: true}
	assert.Equal(t, []string{SheetAspects, SheetYogas}, opts.Sheets())

	opts.Content = ExportContent{}
	assert.Empty(t, opts.Sheets())
}

func TestFormatLabelsRoundTrip(t *testing.T) {
	for _, f := range []ExportFormat{FormatExcel, FormatCSV, FormatHTML} {
		assert.Equal(t, f, FormatFromLabel(f.Label()))
	}

	assert.Equal(t, FormatCSV, FormatFromLabel("unknown"))
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, "csv", FormatCSV.Extension())
	assert.Equal(t, "xlsx", FormatExcel.Extension())
	assert.Equal(t, "html", FormatHTML.Extension())
}

func TestWantsSheet(t *testing.T) {
	req := GenerationRequest{Sheets: []string{SheetPlanets, SheetYogas}}

	assert.True(t, req.WantsSheet(SheetPlanets))
	assert.False(t, req.WantsSheet(SheetHora))
}

func TestReportSheetLookup(t *testing.T) {
	report := ReportData{Sheets: []Sheet{{Name: SheetHora}}}

	_, ok := report.Sheet(SheetHora)
	assert.True(t, ok)
	_, ok = report.Sheet(SheetPlanets)
	assert.False(t, ok)
}
