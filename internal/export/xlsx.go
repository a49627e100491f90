package export

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"kp-dashboard/internal/models"
)

// writeXLSX builds a workbook honoring the formatting flags: one worksheet
// per sheet when SeparateSheets is set (a single "Report" worksheet
// otherwise), header styling and row banding with ColorCoding, an
// autofilter over each header row with AutoFilter, and the row covering
// the report's generation time highlighted with HighlightCurrent.
func (w *Writer) writeXLSX(base string, opts models.ExportOptions, data models.ReportData, sheets []models.Sheet) (string, error) {
	path := base + ".xlsx"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newXLSXStyles(f, opts.Formatting)
	if err != nil {
		return "", err
	}

	if opts.Formatting.SeparateSheets {
		for i, sheet := range sheets {
			name := worksheetName(sheet.Name)
			if i == 0 {
				if err := f.SetSheetName("Sheet1", name); err != nil {
					return "", err
				}
			} else {
				if _, err := f.NewSheet(name); err != nil {
					return "", err
				}
			}

			if err := writeWorksheet(f, name, sheet, 1, opts, data, styles); err != nil {
				return "", err
			}
		}
	} else {
		const name = "Report"
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return "", err
		}

		row := 1
		for _, sheet := range sheets {
			titleCell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetCellValue(name, titleCell, sheet.Name); err != nil {
				return "", err
			}
			if styles.title != 0 {
				f.SetCellStyle(name, titleCell, titleCell, styles.title)
			}

			if err := writeWorksheet(f, name, sheet, row+1, opts, data, styles); err != nil {
				return "", err
			}
			row += len(sheet.Rows) + 3 // title + header + blank spacer
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

type xlsxStyles struct {
	title     int
	header    int
	band      int
	highlight int
}

func newXLSXStyles(f *excelize.File, formatting models.ExportFormatting) (xlsxStyles, error) {
	var styles xlsxStyles
	var err error

	if formatting.ColorCoding {
		styles.title, err = f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 13},
		})
		if err != nil {
			return styles, err
		}

		styles.header, err = f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		})
		if err != nil {
			return styles, err
		}

		styles.band, err = f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#F7F7F7"}, Pattern: 1},
		})
		if err != nil {
			return styles, err
		}
	}

	if formatting.HighlightCurrent {
		styles.highlight, err = f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFF2CC"}, Pattern: 1},
		})
		if err != nil {
			return styles, err
		}
	}

	return styles, nil
}

// writeWorksheet writes one sheet's header and rows starting at startRow
// and applies the formatting flags.
func writeWorksheet(f *excelize.File, name string, sheet models.Sheet, startRow int, opts models.ExportOptions, data models.ReportData, styles xlsxStyles) error {
	width := len(sheet.Columns)

	for col, header := range sheet.Columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, startRow)
		if err := f.SetCellValue(name, cell, header); err != nil {
			return err
		}
	}
	if styles.header != 0 {
		first, _ := excelize.CoordinatesToCellName(1, startRow)
		last, _ := excelize.CoordinatesToCellName(width, startRow)
		f.SetCellStyle(name, first, last, styles.header)
	}

	timeCol := timeColumnIndex(sheet.Columns)
	now := data.GeneratedAt.Format("15:04")

	for i, row := range sheet.Rows {
		rowNum := startRow + 1 + i

		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(name, cell, value); err != nil {
				return err
			}
		}

		first, _ := excelize.CoordinatesToCellName(1, rowNum)
		last, _ := excelize.CoordinatesToCellName(width, rowNum)

		switch {
		case styles.highlight != 0 && timeCol >= 0 && timeCol < len(row) && sameHour(row[timeCol], now):
			f.SetCellStyle(name, first, last, styles.highlight)
		case styles.band != 0 && i%2 == 1:
			f.SetCellStyle(name, first, last, styles.band)
		}
	}

	if opts.Formatting.AutoFilter && len(sheet.Rows) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, startRow)
		last, _ := excelize.CoordinatesToCellName(width, startRow+len(sheet.Rows))
		if err := f.AutoFilter(name, first+":"+last, nil); err != nil {
			return err
		}
	}

	return nil
}

// timeColumnIndex finds the column carrying HH:MM values, if any.
func timeColumnIndex(columns []string) int {
	for i, col := range columns {
		if col == "Time" || col == "Start" {
			return i
		}
	}
	return -1
}

// sameHour reports whether an HH:MM cell falls in the same hour as now.
func sameHour(cell, now string) bool {
	return len(cell) >= 2 && len(now) >= 2 && cell[:2] == now[:2]
}

// worksheetName fits a sheet name into Excel's 31-character limit.
func worksheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
