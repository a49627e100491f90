package components

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kp-dashboard/internal/config"
)

func newTestSettingsStore(t *testing.T) *config.Store {
	t.Helper()
	s := config.New(config.WithPath(filepath.Join(t.TempDir(), config.FileName)))
	s.Load()
	return s
}

func TestSettingsPanelBindsFromStore(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	store := newTestSettingsStore(t)
	panel := NewSettingsPanel(store)

	assert.Equal(t, "19.0760", panel.latitudeEntry.Text)
	assert.Equal(t, "Asia/Kolkata", panel.timezoneEntry.Text)
	assert.Equal(t, "Placidus", panel.houseSelect.Selected)
	assert.Equal(t, "10", panel.intervalEntry.Text)
	assert.True(t, panel.secondsCheck.Checked)
	assert.ElementsMatch(t, []string{"0", "90", "180"}, panel.aspectsGroup.Selected)
}

func TestSettingsPanelSavePersistsBatch(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	store := newTestSettingsStore(t)
	panel := NewSettingsPanel(store)

	panel.houseSelect.SetSelected("Koch")
	panel.use24hrCheck.SetChecked(true)
	panel.intervalEntry.SetText("15")

	saved := false
	panel.SetSavedHandler(func() { saved = true })
	panel.onSave()

	assert.True(t, saved)
	assert.Equal(t, "Koch", store.GetString("calculation", "house_system", ""))
	assert.True(t, store.GetBool("display", "use_24hr", false))
	assert.Equal(t, 15, store.GetInt("calculation", "interval_minutes", 0))

	// One Save call persisted the whole batch.
	fresh := config.New(config.WithPath(store.Path()))
	fresh.Load()
	assert.Equal(t, "Koch", fresh.GetString("calculation", "house_system", ""))
}

func TestSettingsPanelUnparseableEntryKeepsStoredValue(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	store := newTestSettingsStore(t)
	panel := NewSettingsPanel(store)

	panel.intervalEntry.SetText("not a number")
	panel.onSave()

	assert.Equal(t, 10, store.GetInt("calculation", "interval_minutes", 0))
}

func TestSettingsPanelResetRebinds(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	store := newTestSettingsStore(t)
	panel := NewSettingsPanel(store)

	panel.houseSelect.SetSelected("Koch")
	panel.onSave()
	require.Equal(t, "Koch", store.GetString("calculation", "house_system", ""))

	panel.onReset()

	assert.Equal(t, "Placidus", store.GetString("calculation", "house_system", ""))
	assert.Equal(t, "Placidus", panel.houseSelect.Selected)
}
