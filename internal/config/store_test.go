package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(WithPath(filepath.Join(t.TempDir(), FileName)))
}

func writeConfigFile(t *testing.T, path string, tree map[string]any) {
	t.Helper()
	data, err := json.Marshal(tree)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	defaults := defaultTree()
	for section, keys := range defaults {
		for key, want := range keys.(map[string]any) {
			got := s.Get(section, key, "sentinel")
			assert.Equal(t, want, got, "%s.%s", section, key)
		}
	}
}

func TestLoadOverridesSubsetKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeConfigFile(t, path, map[string]any{
		"display": map[string]any{"use_24hr": true},
		"calculation": map[string]any{
			"house_system": "Koch",
		},
	})

	s := New(WithPath(path))
	s.Load()

	assert.True(t, s.GetBool("display", "use_24hr", false))
	assert.True(t, s.GetBool("display", "show_seconds", false), "default two levels deep preserved")
	assert.Equal(t, "Koch", s.GetString("calculation", "house_system", ""))
	assert.Equal(t, "Krishnamurti", s.GetString("calculation", "ayanamsa", ""))
}

func TestLoadInvalidJSONKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := New(WithPath(path))
	s.Load()

	assert.Equal(t, "Placidus", s.GetString("calculation", "house_system", ""))
}

func TestGetMissingReturnsDefault(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	assert.Equal(t, "fallback", s.Get("nonexistent", "key", "fallback"))
	assert.Equal(t, "fallback", s.Get("display", "no_such_key", "fallback"))
}

func TestSetThenGet(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	s.Set("calculation", "house_system", "Koch")
	assert.Equal(t, "Koch", s.Get("calculation", "house_system", nil))

	s.Set("brand_new_section", "key", 42)
	assert.Equal(t, 42, s.Get("brand_new_section", "key", nil))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	s := New(WithPath(path))
	s.Load()
	s.Set("calculation", "house_system", "Koch")
	s.Set("display", "use_24hr", true)
	require.True(t, s.Save())

	fresh := New(WithPath(path))
	fresh.Load()

	assert.Equal(t, "Koch", fresh.GetString("calculation", "house_system", ""))
	assert.True(t, fresh.GetBool("display", "use_24hr", false))
	assert.True(t, fresh.GetBool("display", "show_seconds", false))

	lastRun := fresh.GetString("app", "last_run", "")
	require.NotEmpty(t, lastRun)
	_, err := time.Parse(time.RFC3339, lastRun)
	assert.NoError(t, err)
}

func TestSaveWritesIndentedJSON(t *testing.T) {
	s := newTestStore(t)
	s.Load()
	require.True(t, s.Save())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "\n    \""), "expected 4-space indentation")
}

func TestSaveCreatesTargetDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", FileName)

	s := New(WithPath(path))
	require.True(t, s.Save())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveFailureLeavesTreeUntouched(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	// Target "directory" is a regular file, so MkdirAll fails.
	s := New(WithPath(filepath.Join(blocker, FileName)))
	s.Set("calculation", "house_system", "Koch")

	assert.False(t, s.Save())
	assert.Equal(t, "Koch", s.GetString("calculation", "house_system", ""))
	assert.Nil(t, s.Get("app", "last_run", nil), "failed save must not stamp last_run")
}

func TestResetToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	s := New(WithPath(path))
	s.Load()
	s.Set("calculation", "house_system", "Koch")
	require.True(t, s.Save())

	s.ResetToDefaults()

	assert.Equal(t, "Placidus", s.GetString("calculation", "house_system", ""))

	fresh := New(WithPath(path))
	fresh.Load()
	assert.Equal(t, "Placidus", fresh.GetString("calculation", "house_system", ""),
		"file on disk must reflect defaults after reset")
}

func TestSaveSettingsNested(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	ok := s.SaveSettings(map[string]any{
		"display": map[string]any{
			"use_24hr":     true,
			"show_seconds": false,
		},
		"location": map[string]any{
			"timezone": "Europe/London",
		},
	})

	require.True(t, ok)
	assert.True(t, s.GetBool("display", "use_24hr", false))
	assert.False(t, s.GetBool("display", "show_seconds", true))
	assert.Equal(t, "Europe/London", s.GetString("location", "timezone", ""))
}

func TestSaveSettingsFlatRoutesToAppSection(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	require.True(t, s.SaveSettings(map[string]any{"theme": "dark"}))
	assert.Equal(t, "dark", s.GetString("app", "theme", ""))
}

func TestUnknownKeysPreserved(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeConfigFile(t, path, map[string]any{
		"plugins": map[string]any{"extra": "kept"},
		"display": map[string]any{"future_flag": true},
	})

	s := New(WithPath(path))
	s.Load()
	require.True(t, s.Save())

	fresh := New(WithPath(path))
	fresh.Load()
	assert.Equal(t, "kept", fresh.GetString("plugins", "extra", ""))
	assert.True(t, fresh.GetBool("display", "future_flag", false))
}

func TestResolvePathPrefersAppDir(t *testing.T) {
	appDir := t.TempDir()
	appPath := filepath.Join(appDir, FileName)
	require.NoError(t, os.WriteFile(appPath, []byte("{}"), 0o644))

	s := New(WithAppDir(appDir))
	assert.Equal(t, appPath, s.Path())
}

func TestResolvePathFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homePath := filepath.Join(home, "."+FileName)
	require.NoError(t, os.WriteFile(homePath, []byte("{}"), 0o644))

	s := New(WithAppDir(t.TempDir()))
	assert.Equal(t, homePath, s.Path())
}

func TestResolvePathDefaultsToAppDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	appDir := t.TempDir()

	s := New(WithAppDir(appDir))
	assert.Equal(t, filepath.Join(appDir, FileName), s.Path())
}

func TestGetReturnsDetachedCopies(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	size, ok := s.Get("app", "window_size", nil).([]any)
	require.True(t, ok)
	size[0] = 1

	assert.Equal(t, []int{1024, 768}, s.GetInts("app", "window_size", nil))

	s.Set("export", "last_options", map[string]any{"format": "excel"})
	opts, ok := s.Get("export", "last_options", nil).(map[string]any)
	require.True(t, ok)
	opts["format"] = "csv"

	stored := s.Get("export", "last_options", nil).(map[string]any)
	assert.Equal(t, "excel", stored["format"])
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := newTestStore(t)
	s.Load()

	snap := s.Snapshot()
	snap["display"].(map[string]any)["use_24hr"] = true

	assert.False(t, s.GetBool("display", "use_24hr", false))
}
