package components

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"kp-dashboard/internal/config"
)

var (
	ayanamsaOptions    = []string{"Krishnamurti", "Lahiri", "Raman", "Fagan-Bradley"}
	houseSystemOptions = []string{"Placidus", "Koch", "Equal", "Whole Sign"}
	aspectOptions      = []string{"0", "30", "60", "90", "120", "150", "180"}
	planetOptions      = []string{
		"Sun", "Moon", "Mercury", "Venus", "Mars",
		"Jupiter", "Saturn", "Rahu", "Ketu",
	}
	yogaTypeOptions = []string{"positive", "negative", "neutral"}
)

// SettingsPanel is the tabbed settings form. It reads its initial state
// from the Store and writes back through SaveSettings in one batch when
// the user saves.
type SettingsPanel struct {
	container *fyne.Container
	store     *config.Store

	latitudeEntry  *widget.Entry
	longitudeEntry *widget.Entry
	timezoneEntry  *widget.Entry

	ayanamsaSelect *widget.Select
	houseSelect    *widget.Select
	intervalEntry  *widget.Entry
	aspectsGroup   *widget.CheckGroup
	planetsGroup   *widget.CheckGroup

	daysPastEntry     *widget.Entry
	daysFutureEntry   *widget.Entry
	yogaIntervalEntry *widget.Entry
	yogaTypesGroup    *widget.CheckGroup

	showAspectsCheck *widget.Check
	dignitiesCheck   *widget.Check
	northIndianCheck *widget.Check
	use24hrCheck     *widget.Check
	secondsCheck     *widget.Check

	kpDataEntry    *widget.Entry
	ephemerisEntry *widget.Entry

	cacheEntry    *widget.Entry
	parallelCheck *widget.Check
	threadsEntry  *widget.Entry

	saveButton  *widget.Button
	resetButton *widget.Button

	savedHandler func()
	resetHandler func()
}

func NewSettingsPanel(store *config.Store) *SettingsPanel {
	panel := &SettingsPanel{store: store}
	panel.setupControls()
	panel.RefreshFromStore()
	return panel
}

func (sp *SettingsPanel) setupControls() {
	sp.latitudeEntry = widget.NewEntry()
	sp.longitudeEntry = widget.NewEntry()
	sp.timezoneEntry = widget.NewEntry()

	locationTab := widget.NewForm(
		widget.NewFormItem("Latitude", sp.latitudeEntry),
		widget.NewFormItem("Longitude", sp.longitudeEntry),
		widget.NewFormItem("Timezone", sp.timezoneEntry),
	)

	sp.ayanamsaSelect = widget.NewSelect(ayanamsaOptions, nil)
	sp.houseSelect = widget.NewSelect(houseSystemOptions, nil)
	sp.intervalEntry = widget.NewEntry()
	sp.aspectsGroup = widget.NewCheckGroup(aspectOptions, nil)
	sp.aspectsGroup.Horizontal = true
	sp.planetsGroup = widget.NewCheckGroup(planetOptions, nil)
	sp.planetsGroup.Horizontal = true

	calculationTab := widget.NewForm(
		widget.NewFormItem("Ayanamsa", sp.ayanamsaSelect),
		widget.NewFormItem("House System", sp.houseSelect),
		widget.NewFormItem("Interval (minutes)", sp.intervalEntry),
		widget.NewFormItem("Aspects", sp.aspectsGroup),
		widget.NewFormItem("Aspect Planets", sp.planetsGroup),
	)

	sp.daysPastEntry = widget.NewEntry()
	sp.daysFutureEntry = widget.NewEntry()
	sp.yogaIntervalEntry = widget.NewEntry()
	sp.yogaTypesGroup = widget.NewCheckGroup(yogaTypeOptions, nil)
	sp.yogaTypesGroup.Horizontal = true

	yogaTab := widget.NewForm(
		widget.NewFormItem("Days Past", sp.daysPastEntry),
		widget.NewFormItem("Days Future", sp.daysFutureEntry),
		widget.NewFormItem("Interval (minutes)", sp.yogaIntervalEntry),
		widget.NewFormItem("Types", sp.yogaTypesGroup),
	)

	sp.showAspectsCheck = widget.NewCheck("Show Aspects", nil)
	sp.dignitiesCheck = widget.NewCheck("Show Dignities", nil)
	sp.northIndianCheck = widget.NewCheck("North Indian Chart Style", nil)
	sp.use24hrCheck = widget.NewCheck("Use 24-hour Time", nil)
	sp.secondsCheck = widget.NewCheck("Show Seconds", nil)

	displayTab := container.NewVBox(
		sp.showAspectsCheck,
		sp.dignitiesCheck,
		sp.northIndianCheck,
		sp.use24hrCheck,
		sp.secondsCheck,
	)

	sp.kpDataEntry = widget.NewEntry()
	sp.ephemerisEntry = widget.NewEntry()

	pathsTab := widget.NewForm(
		widget.NewFormItem("KP Data File", sp.kpDataEntry),
		widget.NewFormItem("Ephemeris Directory", sp.ephemerisEntry),
	)

	sp.cacheEntry = widget.NewEntry()
	sp.parallelCheck = widget.NewCheck("Parallel Calculations", nil)
	sp.threadsEntry = widget.NewEntry()

	advancedTab := widget.NewForm(
		widget.NewFormItem("Cache Size (MB)", sp.cacheEntry),
		widget.NewFormItem("Parallel", sp.parallelCheck),
		widget.NewFormItem("Max Threads", sp.threadsEntry),
	)

	tabs := container.NewAppTabs(
		container.NewTabItem("Location", locationTab),
		container.NewTabItem("Calculation", calculationTab),
		container.NewTabItem("Yoga", yogaTab),
		container.NewTabItem("Display", displayTab),
		container.NewTabItem("Paths", pathsTab),
		container.NewTabItem("Advanced", advancedTab),
	)

	sp.saveButton = widget.NewButton("Save Settings", sp.onSave)
	sp.saveButton.Importance = widget.HighImportance
	sp.resetButton = widget.NewButton("Reset to Defaults", sp.onReset)

	sp.container = container.NewBorder(
		nil,
		container.NewHBox(sp.resetButton, sp.saveButton),
		nil, nil,
		tabs,
	)
}

func (sp *SettingsPanel) GetContainer() *fyne.Container {
	return sp.container
}

func (sp *SettingsPanel) SetSavedHandler(handler func()) {
	sp.savedHandler = handler
}

func (sp *SettingsPanel) SetResetHandler(handler func()) {
	sp.resetHandler = handler
}

// RefreshFromStore rebinds every widget from the store's current values.
// Called at construction, after a reset and after a live reload.
func (sp *SettingsPanel) RefreshFromStore() {
	s := sp.store

	sp.latitudeEntry.SetText(formatFloat(s.GetFloat("location", "latitude", 0)))
	sp.longitudeEntry.SetText(formatFloat(s.GetFloat("location", "longitude", 0)))
	sp.timezoneEntry.SetText(s.GetString("location", "timezone", ""))

	sp.ayanamsaSelect.SetSelected(s.GetString("calculation", "ayanamsa", "Krishnamurti"))
	sp.houseSelect.SetSelected(s.GetString("calculation", "house_system", "Placidus"))
	sp.intervalEntry.SetText(strconv.Itoa(s.GetInt("calculation", "interval_minutes", 10)))

	aspects := s.GetInts("calculation", "aspects", nil)
	selectedAspects := make([]string, 0, len(aspects))
	for _, a := range aspects {
		selectedAspects = append(selectedAspects, strconv.Itoa(a))
	}
	sp.aspectsGroup.SetSelected(selectedAspects)
	sp.planetsGroup.SetSelected(s.GetStrings("calculation", "aspect_planets", nil))

	sp.daysPastEntry.SetText(strconv.Itoa(s.GetInt("yoga", "days_past", 7)))
	sp.daysFutureEntry.SetText(strconv.Itoa(s.GetInt("yoga", "days_future", 30)))
	sp.yogaIntervalEntry.SetText(strconv.Itoa(s.GetInt("yoga", "interval_minutes", 30)))
	sp.yogaTypesGroup.SetSelected(s.GetStrings("yoga", "types", nil))

	sp.showAspectsCheck.SetChecked(s.GetBool("display", "show_aspects", true))
	sp.dignitiesCheck.SetChecked(s.GetBool("display", "show_dignities", true))
	sp.northIndianCheck.SetChecked(s.GetBool("display", "north_indian_style", false))
	sp.use24hrCheck.SetChecked(s.GetBool("display", "use_24hr", false))
	sp.secondsCheck.SetChecked(s.GetBool("display", "show_seconds", true))

	sp.kpDataEntry.SetText(s.GetString("paths", "kp_data", ""))
	sp.ephemerisEntry.SetText(s.GetString("paths", "ephemeris", ""))

	sp.cacheEntry.SetText(strconv.Itoa(s.GetInt("advanced", "cache_size_mb", 100)))
	sp.parallelCheck.SetChecked(s.GetBool("advanced", "parallel_calculations", true))
	sp.threadsEntry.SetText(strconv.Itoa(s.GetInt("advanced", "max_threads", 4)))
}

// collectSettings gathers the form into the nested shape SaveSettings
// expects. Unparseable numeric entries keep the stored value.
func (sp *SettingsPanel) collectSettings() map[string]any {
	s := sp.store

	aspects := make([]any, 0, len(sp.aspectsGroup.Selected))
	for _, sel := range sp.aspectsGroup.Selected {
		if n, err := strconv.Atoi(sel); err == nil {
			aspects = append(aspects, n)
		}
	}

	planets := make([]any, 0, len(sp.planetsGroup.Selected))
	for _, sel := range sp.planetsGroup.Selected {
		planets = append(planets, sel)
	}

	yogaTypes := make([]any, 0, len(sp.yogaTypesGroup.Selected))
	for _, sel := range sp.yogaTypesGroup.Selected {
		yogaTypes = append(yogaTypes, sel)
	}

	return map[string]any{
		"location": map[string]any{
			"latitude":  parseFloat(sp.latitudeEntry.Text, s.GetFloat("location", "latitude", 0)),
			"longitude": parseFloat(sp.longitudeEntry.Text, s.GetFloat("location", "longitude", 0)),
			"timezone":  sp.timezoneEntry.Text,
		},
		"calculation": map[string]any{
			"ayanamsa":         sp.ayanamsaSelect.Selected,
			"house_system":     sp.houseSelect.Selected,
			"interval_minutes": parseInt(sp.intervalEntry.Text, s.GetInt("calculation", "interval_minutes", 10)),
			"aspects":          aspects,
			"aspect_planets":   planets,
		},
		"yoga": map[string]any{
			"days_past":        parseInt(sp.daysPastEntry.Text, s.GetInt("yoga", "days_past", 7)),
			"days_future":      parseInt(sp.daysFutureEntry.Text, s.GetInt("yoga", "days_future", 30)),
			"interval_minutes": parseInt(sp.yogaIntervalEntry.Text, s.GetInt("yoga", "interval_minutes", 30)),
			"types":            yogaTypes,
		},
		"display": map[string]any{
			"show_aspects":       sp.showAspectsCheck.Checked,
			"show_dignities":     sp.dignitiesCheck.Checked,
			"north_indian_style": sp.northIndianCheck.Checked,
			"use_24hr":           sp.use24hrCheck.Checked,
			"show_seconds":       sp.secondsCheck.Checked,
		},
		"paths": map[string]any{
			"kp_data":   sp.kpDataEntry.Text,
			"ephemeris": sp.ephemerisEntry.Text,
		},
		"advanced": map[string]any{
			"cache_size_mb":         parseInt(sp.cacheEntry.Text, s.GetInt("advanced", "cache_size_mb", 100)),
			"parallel_calculations": sp.parallelCheck.Checked,
			"max_threads":           parseInt(sp.threadsEntry.Text, s.GetInt("advanced", "max_threads", 4)),
		},
	}
}

func (sp *SettingsPanel) onSave() {
	sp.store.SaveSettings(sp.collectSettings())
	if sp.savedHandler != nil {
		sp.savedHandler()
	}
}

func (sp *SettingsPanel) onReset() {
	sp.store.ResetToDefaults()
	sp.RefreshFromStore()
	if sp.resetHandler != nil {
		sp.resetHandler()
	}
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.4f", f)
}

func parseFloat(text string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	return fallback
}

func parseInt(text string, fallback int) int {
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	return fallback
}
