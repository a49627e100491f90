package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A store loaded from JSON sees float64 for every number; the typed
// accessors must coerce.
func TestAccessorsCoerceJSONNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeConfigFile(t, path, map[string]any{
		"calculation": map[string]any{
			"interval_minutes": 25,
			"aspects":          []any{0, 60, 120},
		},
		"location": map[string]any{
			"latitude": 51.5074,
		},
	})

	s := New(WithPath(path))
	s.Load()

	assert.Equal(t, 25, s.GetInt("calculation", "interval_minutes", 0))
	assert.Equal(t, []int{0, 60, 120}, s.GetInts("calculation", "aspects", nil))
	assert.InDelta(t, 51.5074, s.GetFloat("location", "latitude", 0), 1e-9)
}

func TestAccessorFallbacks(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	assert.Equal(t, "fb", s.GetString("nope", "nope", "fb"))
	assert.Equal(t, 7, s.GetInt("nope", "nope", 7))
	assert.True(t, s.GetBool("nope", "nope", true))
	assert.Equal(t, []int{1}, s.GetInts("nope", "nope", []int{1}))
	assert.Equal(t, []string{"x"}, s.GetStrings("nope", "nope", []string{"x"}))
}

func TestAccessorTypeMismatchFallsBack(t *testing.T) {
	s := newTestStore(t)
	s.Load()
	s.Set("location", "timezone", 123)
	s.Set("calculation", "aspects", []any{"not", "numbers"})

	assert.Equal(t, "fb", s.GetString("location", "timezone", "fb"))
	assert.Equal(t, []int{0}, s.GetInts("calculation", "aspects", []int{0}))
}

func TestGetStringsDefaults(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	planets := s.GetStrings("calculation", "aspect_planets", nil)
	require.NotEmpty(t, planets)
	assert.Equal(t, "Sun", planets[0])
	assert.Contains(t, planets, "Ketu")
}
