// Package generator produces the dashboard's report sheets in the
// background, streaming percent/message progress to the GUI.
package generator

import (
	"context"
	"fmt"
	"math"
	"time"

	"kp-dashboard/internal/logger"
	"kp-dashboard/internal/models"
)

const component = "Generator"

// Mean daily motion in degrees, used for the approximate longitudes the
// placeholder sheets are built from. Rahu and Ketu are retrograde.
var meanMotion = map[string]float64{
	"Sun":     0.9856,
	"Moon":    13.1764,
	"Mercury": 1.3833,
	"Venus":   1.2000,
	"Mars":    0.5240,
	"Jupiter": 0.0831,
	"Saturn":  0.0334,
	"Rahu":    -0.0529,
	"Ketu":    -0.0529,
	"Uranus":  0.0117,
	"Neptune": 0.0060,
}

// Longitudes at the reference epoch (2000-01-01 UTC), degrees.
var epochLongitude = map[string]float64{
	"Sun":     280.46,
	"Moon":    218.32,
	"Mercury": 252.25,
	"Venus":   181.98,
	"Mars":    355.43,
	"Jupiter": 34.35,
	"Saturn":  50.08,
	"Rahu":    125.04,
	"Ketu":    305.04,
	"Uranus":  314.05,
	"Neptune": 304.35,
}

var signs = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Weekday ruler starting the hora sequence at sunrise.
var weekdayRuler = [7]string{"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn"}

var horaSequence = [7]string{"Sun", "Venus", "Mercury", "Moon", "Saturn", "Jupiter", "Mars"}

var transitPlanets = []string{
	"Moon", "Ascendant", "Sun", "Mercury", "Venus",
	"Mars", "Jupiter", "Saturn", "Rahu", "Ketu",
	"Uranus", "Neptune",
}

// Generator builds report sheets for a request. Progress and status
// callbacks are optional and invoked from the generating goroutine.
type Generator struct {
	log              logger.Logger
	progressCallback func(percent int, message string)
	statusCallback   func(status string)
}

func New(log logger.Logger) *Generator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Generator{log: log}
}

func (g *Generator) SetProgressCallback(cb func(percent int, message string)) {
	g.progressCallback = cb
}

func (g *Generator) SetStatusCallback(cb func(status string)) {
	g.statusCallback = cb
}

func (g *Generator) progress(percent int, message string) {
	if g.progressCallback != nil {
		g.progressCallback(percent, message)
	}
}

func (g *Generator) status(message string) {
	if g.statusCallback != nil {
		g.statusCallback(message)
	}
}

// Generate builds the requested sheets. It honors ctx cancellation between
// sheets and returns ctx.Err() when cancelled.
func (g *Generator) Generate(ctx context.Context, req models.GenerationRequest) (models.ReportData, error) {
	started := time.Now()
	g.log.Info(component, "generation started", map[string]interface{}{
		"location": req.Location.Name,
		"sheets":   len(req.Sheets),
	})

	g.progress(5, "Initializing data generator...")
	g.status("Generating report...")

	report := models.ReportData{
		GeneratedAt: started,
		Location:    req.Location,
	}

	end := time.Date(req.Start.Year(), req.Start.Month(), req.Start.Day(),
		23, 55, 0, 0, req.Start.Location())

	type stage struct {
		name    string
		percent int
		build   func() models.Sheet
	}

	stages := []stage{
		{models.SheetPlanets, 10, func() models.Sheet { return g.planetPositions(req) }},
		{models.SheetHouses, 12, func() models.Sheet { return g.houseData(req) }},
		{models.SheetAspects, 15, func() models.Sheet { return g.aspects(req) }},
		{models.SheetHora, 18, func() models.Sheet { return g.horaTimings(req, end) }},
	}

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return models.ReportData{}, err
		}
		if !req.WantsSheet(st.name) {
			continue
		}
		g.progress(st.percent, fmt.Sprintf("Generating %s...", st.name))
		report.Sheets = append(report.Sheets, st.build())
	}

	if req.WantsSheet(models.SheetTransits) {
		// Transits cover the bulk of the bar, 20 through 60.
		current := 20.0
		step := 40.0 / float64(len(transitPlanets))
		var sheet models.Sheet
		sheet.Name = models.SheetTransits
		sheet.Columns = []string{"Planet", "Time", "Longitude", "Sign"}

		for _, planet := range transitPlanets {
			if err := ctx.Err(); err != nil {
				return models.ReportData{}, err
			}
			g.progress(int(current), fmt.Sprintf("Generating %s data...", planet))
			sheet.Rows = append(sheet.Rows, g.transitRows(planet, req, end)...)
			current += step
		}
		report.Sheets = append(report.Sheets, sheet)
	}

	if req.WantsSheet(models.SheetYogas) && req.Yoga != nil {
		if err := ctx.Err(); err != nil {
			return models.ReportData{}, err
		}
		g.progress(65, "Calculating Yogas...")
		sheet, err := g.yogas(ctx, *req.Yoga)
		if err != nil {
			return models.ReportData{}, err
		}
		report.Sheets = append(report.Sheets, sheet)
	}

	g.progress(100, "Report complete")
	g.status("Ready")
	g.log.Info(component, "generation finished", map[string]interface{}{
		"duration_ms": time.Since(started).Milliseconds(),
		"sheets":      len(report.Sheets),
	})

	return report, nil
}

// longitudeAt returns the approximate ecliptic longitude of a body. The
// ascendant advances a full circle per sidereal day and shifts with the
// observer's longitude.
func longitudeAt(body string, at time.Time, loc models.Location) float64 {
	epoch := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	days := at.Sub(epoch).Hours() / 24

	if body == "Ascendant" {
		deg := 360.985647*days + loc.Longitude
		return normalize(deg)
	}

	return normalize(epochLongitude[body] + meanMotion[body]*days)
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func signOf(longitude float64) string {
	return signs[int(longitude/30)%12]
}

func degreeInSign(longitude float64) float64 {
	return math.Mod(longitude, 30)
}

func (g *Generator) planetPositions(req models.GenerationRequest) models.Sheet {
	sheet := models.Sheet{
		Name:    models.SheetPlanets,
		Columns: []string{"Planet", "Longitude", "Sign", "Degree"},
	}
	for _, planet := range transitPlanets {
		lon := longitudeAt(planet, req.Start, req.Location)
		sheet.Rows = append(sheet.Rows, []string{
			planet,
			fmt.Sprintf("%.4f", lon),
			signOf(lon),
			fmt.Sprintf("%.2f", degreeInSign(lon)),
		})
	}
	return sheet
}

func (g *Generator) houseData(req models.GenerationRequest) models.Sheet {
	sheet := models.Sheet{
		Name:    models.SheetHouses,
		Columns: []string{"House", "Cusp", "Sign"},
	}
	asc := longitudeAt("Ascendant", req.Start, req.Location)
	for house := 1; house <= 12; house++ {
		cusp := normalize(asc + float64(house-1)*30)
		sheet.Rows = append(sheet.Rows, []string{
			fmt.Sprintf("%d", house),
			fmt.Sprintf("%.4f", cusp),
			signOf(cusp),
		})
	}
	return sheet
}

func (g *Generator) aspects(req models.GenerationRequest) models.Sheet {
	sheet := models.Sheet{
		Name:    models.SheetAspects,
		Columns: []string{"Planet A", "Planet B", "Aspect", "Orb"},
	}

	const orb = 6.0
	planets := req.AspectPlanets
	for i := 0; i < len(planets); i++ {
		for j := i + 1; j < len(planets); j++ {
			a := longitudeAt(planets[i], req.Start, req.Location)
			b := longitudeAt(planets[j], req.Start, req.Location)
			sep := math.Abs(a - b)
			if sep > 180 {
				sep = 360 - sep
			}
			for _, aspect := range req.Aspects {
				diff := math.Abs(sep - float64(aspect))
				if diff <= orb {
					sheet.Rows = append(sheet.Rows, []string{
						planets[i],
						planets[j],
						fmt.Sprintf("%d°", aspect),
						fmt.Sprintf("%.2f", diff),
					})
				}
			}
		}
	}
	return sheet
}

func (g *Generator) horaTimings(req models.GenerationRequest, end time.Time) models.Sheet {
	sheet := models.Sheet{
		Name:    models.SheetHora,
		Columns: []string{"Start", "End", "Ruler"},
	}

	// Horas run hourly from 06:00; the weekday ruler opens the sequence.
	sunrise := time.Date(req.Start.Year(), req.Start.Month(), req.Start.Day(),
		6, 0, 0, 0, req.Start.Location())

	offset := 0
	for i, ruler := range horaSequence {
		if ruler == weekdayRuler[int(req.Start.Weekday())] {
			offset = i
			break
		}
	}

	for hora := 0; ; hora++ {
		start := sunrise.Add(time.Duration(hora) * time.Hour)
		if start.After(end) {
			break
		}
		sheet.Rows = append(sheet.Rows, []string{
			start.Format("15:04"),
			start.Add(time.Hour).Format("15:04"),
			horaSequence[(offset+hora)%len(horaSequence)],
		})
	}
	return sheet
}

func (g *Generator) transitRows(planet string, req models.GenerationRequest, end time.Time) [][]string {
	var rows [][]string
	// Hourly samples keep the sheet readable for slow movers too.
	for at := req.Start; !at.After(end); at = at.Add(time.Hour) {
		lon := longitudeAt(planet, at, req.Location)
		rows = append(rows, []string{
			planet,
			at.Format("15:04"),
			fmt.Sprintf("%.4f", lon),
			signOf(lon),
		})
	}
	return rows
}

func (g *Generator) yogas(ctx context.Context, yr models.YogaRange) (models.Sheet, error) {
	sheet := models.Sheet{
		Name:    models.SheetYogas,
		Columns: []string{"Date", "Yoga", "Type"},
	}

	names := []struct {
		name string
		typ  string
	}{
		{"Gaja Kesari", "positive"},
		{"Budha Aditya", "positive"},
		{"Kemadruma", "negative"},
		{"Shakata", "negative"},
		{"Amala", "neutral"},
	}

	total := int(yr.End.Sub(yr.Start).Hours()/24) + 1
	day := 0
	for at := yr.Start; !at.After(yr.End); at = at.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return models.Sheet{}, err
		}

		entry := names[day%len(names)]
		sheet.Rows = append(sheet.Rows, []string{
			at.Format("2006-01-02"),
			entry.name,
			entry.typ,
		})

		// Yogas own the 65-95 span of the progress bar.
		if total > 0 {
			g.progress(65+30*day/total, fmt.Sprintf("Calculating Yogas for %s...", at.Format("2006-01-02")))
		}
		day++
	}

	return sheet, nil
}
