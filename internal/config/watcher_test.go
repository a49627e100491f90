package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	s := New(WithPath(path))
	s.Load()
	require.False(t, s.GetBool("display", "use_24hr", false))

	w, err := NewWatcher(s, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	writeConfigFile(t, path, map[string]any{
		"display": map[string]any{"use_24hr": true},
	})

	assert.Eventually(t, func() bool {
		return s.GetBool("display", "use_24hr", false)
	}, 3*time.Second, 50*time.Millisecond)

	// A reload rebuilds from defaults before merging, so untouched keys
	// stay at their default values.
	assert.True(t, s.GetBool("display", "show_seconds", false))
}

func TestWatcherStartFailureReleasesHandle(t *testing.T) {
	// Parent directory does not exist, so adding the watch fails.
	missing := filepath.Join(t.TempDir(), "missing", FileName)
	s := New(WithPath(missing))

	w, err := NewWatcher(s, nil)
	require.NoError(t, err)
	require.Error(t, w.Start())

	// Stop returns early when Start never succeeded, so the failed Start
	// must have closed the fsnotify handle itself.
	_, open := <-w.fsw.Events
	assert.False(t, open)

	w.Stop()
	w.Shutdown()
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	s := New(WithPath(filepath.Join(t.TempDir(), FileName)))

	w, err := NewWatcher(s, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	w.Stop()
	w.Stop()
	w.Shutdown()
}
