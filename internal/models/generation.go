package models

import "time"

// Location is a named place with the coordinates and timezone the
// calculations need.
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
	Timezone  string
}

// YogaRange bounds the yoga scan around the report date.
type YogaRange struct {
	Start           time.Time
	End             time.Time
	IntervalMinutes int
}

// GenerationRequest describes one report generation run.
type GenerationRequest struct {
	Location      Location
	Start         time.Time
	Sheets        []string
	Aspects       []int
	AspectPlanets []string
	Yoga          *YogaRange
}

// WantsSheet reports whether the request selected the named sheet.
func (r GenerationRequest) WantsSheet(name string) bool {
	for _, s := range r.Sheets {
		if s == name {
			return true
		}
	}
	return false
}

// Sheet is one tabular section of a generated report.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// ReportData is the generator's output, consumed by the export writers.
type ReportData struct {
	GeneratedAt time.Time
	Location    Location
	Sheets      []Sheet
}

// Sheet returns the named sheet if present.
func (r ReportData) Sheet(name string) (Sheet, bool) {
	for _, s := range r.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}
