package models

// ExportFormat selects the report output type.
type ExportFormat string

const (
	FormatExcel ExportFormat = "excel"
	FormatCSV   ExportFormat = "csv"
	FormatHTML  ExportFormat = "html"
)

// Extension returns the file extension without a leading dot.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatExcel:
		return "xlsx"
	case FormatHTML:
		return "html"
	default:
		return "csv"
	}
}

// Label returns the format as shown in the export panel's selector.
func (f ExportFormat) Label() string {
	switch f {
	case FormatExcel:
		return "Excel (.xlsx)"
	case FormatCSV:
		return "CSV (.csv)"
	case FormatHTML:
		return "HTML (.html)"
	default:
		return string(f)
	}
}

// FormatFromLabel maps a selector label back to its format. Unknown labels
// fall back to CSV.
func FormatFromLabel(label string) ExportFormat {
	for _, f := range []ExportFormat{FormatExcel, FormatCSV, FormatHTML} {
		if f.Label() == label {
			return f
		}
	}
	return FormatCSV
}

// ExportContent flags which report sheets are included.
type ExportContent struct {
	Planets  bool
	Houses   bool
	Aspects  bool
	Hora     bool
	Transits bool
	Yogas    bool
}

// ExportFormatting carries presentation flags for the writers.
type ExportFormatting struct {
	HighlightCurrent bool
	ColorCoding      bool
	AutoFilter       bool
	SeparateSheets   bool
}

// ExportOptions is the payload the export panel emits upward when the user
// requests an export.
type ExportOptions struct {
	Format     ExportFormat
	Filename   string
	Content    ExportContent
	Formatting ExportFormatting
}

// DefaultExportOptions mirrors the panel's initial state: every content and
// formatting option on, Excel format.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:   FormatExcel,
		Filename: "KP_Astrology_Report",
		Content: ExportContent{
			Planets:  true,
			Houses:   true,
			Aspects:  true,
			Hora:     true,
			Transits: true,
			Yogas:    true,
		},
		Formatting: ExportFormatting{
			HighlightCurrent: true,
			ColorCoding:      true,
			AutoFilter:       true,
			SeparateSheets:   true,
		},
	}
}

// Sheet names shared by the generator and the writers.
const (
	SheetPlanets  = "Planet Positions"
	SheetHouses   = "House Data"
	SheetAspects  = "Aspects"
	SheetHora     = "Hora Timing"
	SheetTransits = "Planet Transits"
	SheetYogas    = "Yogas"
)

// Sheets lists the sheet names selected by the content flags, in report
// order.
func (o ExportOptions) Sheets() []string {
	var sheets []string
	for _, entry := range []struct {
		name     string
		selected bool
	}{
		{SheetPlanets, o.Content.Planets},
		{SheetHouses, o.Content.Houses},
		{SheetAspects, o.Content.Aspects},
		{SheetHora, o.Content.Hora},
		{SheetTransits, o.Content.Transits},
		{SheetYogas, o.Content.Yogas},
	} {
		if entry.selected {
			sheets = append(sheets, entry.name)
		}
	}
	return sheets
}
