package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"

	"kp-dashboard/internal/config"
	"kp-dashboard/internal/export"
	"kp-dashboard/internal/generator"
	"kp-dashboard/internal/gui"
	"kp-dashboard/internal/gui/components"
	"kp-dashboard/internal/logger"
	"kp-dashboard/internal/models"
)

type Handlers struct {
	store      *config.Store
	generator  *generator.Generator
	writer     *export.Writer
	guiManager *gui.Manager
	log        logger.Logger
}

func NewHandlers(store *config.Store, gen *generator.Generator, writer *export.Writer, gm *gui.Manager, log logger.Logger) *Handlers {
	return &Handlers{
		store:      store,
		generator:  gen,
		writer:     writer,
		guiManager: gm,
		log:        log,
	}
}

// HandleGenerate runs a full report generation for the dashboard, with a
// modal progress dialog the user can cancel.
func (h *Handlers) HandleGenerate(locationName string) {
	req, err := h.buildRequest(locationName, models.DefaultExportOptions().Sheets())
	if err != nil {
		h.guiManager.ShowError("Generation Error", err)
		return
	}

	h.runGeneration(req, func(report models.ReportData) {
		h.guiManager.ShowMessage(components.SeveritySuccess,
			fmt.Sprintf("Report generated for %s (%d sheets).", req.Location.Name, len(report.Sheets)))
	})
}

// HandleExport receives the export panel payload: generate the selected
// sheets, then write them in the requested format.
func (h *Handlers) HandleExport(opts models.ExportOptions) {
	req, err := h.buildRequest(h.guiManager.SelectedLocation(), opts.Sheets())
	if err != nil {
		h.guiManager.ShowError("Export Error", err)
		return
	}

	h.runGeneration(req, func(report models.ReportData) {
		h.guiManager.UpdateStatus("Exporting...")

		path, err := h.writer.Write(opts, report)
		if err != nil {
			h.guiManager.ShowError("Export Error", err)
			h.guiManager.UpdateStatus("Ready")
			return
		}

		h.store.Set("app", "last_export_path", path)
		h.guiManager.SetLastExport(path)
		h.guiManager.UpdateStatus("Ready")
		h.guiManager.ShowMessage(components.SeveritySuccess, "Report exported to "+path)
	})
}

// runGeneration starts the generator on its own goroutine behind a
// cancellable progress dialog, then invokes done with the result.
func (h *Handlers) runGeneration(req models.GenerationRequest, done func(models.ReportData)) {
	progress := h.guiManager.NewProgressDialog("Generating Report", "Please wait...")

	ctx, cancel := context.WithCancel(context.Background())
	progress.SetCancelHandler(cancel)

	h.generator.SetProgressCallback(func(percent int, message string) {
		fyne.Do(func() {
			progress.UpdateProgress(percent, message)
		})
	})
	h.generator.SetStatusCallback(h.guiManager.UpdateStatus)

	progress.Show()

	go func() {
		defer cancel()

		report, err := h.generator.Generate(ctx, req)
		if err != nil {
			fyne.Do(progress.Hide)
			if errors.Is(err, context.Canceled) {
				h.guiManager.ShowMessage(components.SeverityWarning, "Generation cancelled.")
				h.guiManager.UpdateStatus("Ready")
				return
			}
			h.guiManager.ShowError("Generation Error", err)
			h.guiManager.UpdateStatus("Ready")
			return
		}

		done(report)
	}()
}

// buildRequest assembles a generation request from the selected location
// and the stored calculation and yoga settings.
func (h *Handlers) buildRequest(locationName string, sheets []string) (models.GenerationRequest, error) {
	loc, ok := generator.LocationByName(locationName)
	if !ok {
		return models.GenerationRequest{}, fmt.Errorf("location %q not found", locationName)
	}

	now := time.Now()
	req := models.GenerationRequest{
		Location:      loc,
		Start:         now,
		Sheets:        sheets,
		Aspects:       h.store.GetInts("calculation", "aspects", []int{0, 90, 180}),
		AspectPlanets: h.store.GetStrings("calculation", "aspect_planets", nil),
	}

	if req.WantsSheet(models.SheetYogas) {
		req.Yoga = &models.YogaRange{
			Start:           now.AddDate(0, 0, -h.store.GetInt("yoga", "days_past", 7)),
			End:             now.AddDate(0, 0, h.store.GetInt("yoga", "days_future", 30)),
			IntervalMinutes: h.store.GetInt("yoga", "interval_minutes", 30),
		}
	}

	return req, nil
}
