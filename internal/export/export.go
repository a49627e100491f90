// Package export writes generated reports to disk in the format chosen on
// the export panel.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kp-dashboard/internal/logger"
	"kp-dashboard/internal/models"
)

const component = "ExportWriter"

// Writer turns report data into files.
type Writer struct {
	log logger.Logger
}

func NewWriter(log logger.Logger) *Writer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Writer{log: log}
}

// Write exports the sheets selected in opts and returns the primary output
// path. Errors are logged before being returned.
func (w *Writer) Write(opts models.ExportOptions, data models.ReportData) (string, error) {
	sheets := selectSheets(opts, data)
	if len(sheets) == 0 {
		err := fmt.Errorf("no content selected for export")
		w.log.Error(component, err, nil)
		return "", err
	}

	base := strings.TrimSuffix(opts.Filename, "."+opts.Format.Extension())

	var path string
	var err error
	switch opts.Format {
	case models.FormatHTML:
		path, err = w.writeHTML(base, opts, data, sheets)
	case models.FormatExcel:
		path, err = w.writeXLSX(base, opts, data, sheets)
	default:
		path, err = w.writeCSV(base, opts, sheets)
	}

	if err != nil {
		w.log.Error(component, err, map[string]interface{}{"format": string(opts.Format)})
		return "", err
	}

	w.log.Info(component, "export complete", map[string]interface{}{
		"path":   path,
		"sheets": len(sheets),
	})
	return path, nil
}

func selectSheets(opts models.ExportOptions, data models.ReportData) []models.Sheet {
	var out []models.Sheet
	for _, name := range opts.Sheets() {
		if sheet, ok := data.Sheet(name); ok {
			out = append(out, sheet)
		}
	}
	return out
}

// writeCSV emits one file per sheet when separate sheets are requested,
// otherwise a single file with sheet-name header rows.
func (w *Writer) writeCSV(base string, opts models.ExportOptions, sheets []models.Sheet) (string, error) {
	if opts.Formatting.SeparateSheets && len(sheets) > 1 {
		primary := ""
		for _, sheet := range sheets {
			path := fmt.Sprintf("%s_%s.csv", base, sanitize(sheet.Name))
			if err := writeCSVFile(path, []models.Sheet{sheet}, false); err != nil {
				return "", err
			}
			if primary == "" {
				primary = path
			}
		}
		return primary, nil
	}

	path := base + ".csv"
	return path, writeCSVFile(path, sheets, len(sheets) > 1)
}

func writeCSVFile(path string, sheets []models.Sheet, withTitles bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	for _, sheet := range sheets {
		if withTitles {
			if err := cw.Write([]string{sheet.Name}); err != nil {
				return err
			}
		}
		if err := cw.Write(sheet.Columns); err != nil {
			return err
		}
		for _, row := range sheet.Rows {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func sanitize(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}
