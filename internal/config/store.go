// Package config owns the application settings tree: a baseline of shipped
// defaults merged with a user-supplied JSON override file, exposed through
// typed accessors and persisted on request.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"kp-dashboard/internal/logger"
)

// FileName is the persisted configuration document. It is probed in the
// application directory first, then as a dotfile in the user's home.
const FileName = "kp_astrology_config.json"

const component = "ConfigStore"

// Store is the single source of truth for application settings. One Store
// is constructed at startup and handed to every consumer; there is no
// package-level instance.
//
// The internal mutex only protects tree access against the live-reload
// watcher. Cross-operation ordering (a Save racing a ResetToDefaults, for
// example) is the caller's responsibility.
type Store struct {
	mu       sync.RWMutex
	tree     Tree
	path     string
	appDir   string
	log      logger.Logger
	notifier *Notifier
	savedAt  time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithPath pins the configuration file location, bypassing probing.
func WithPath(path string) Option {
	return func(s *Store) {
		s.path = path
	}
}

// WithAppDir sets the application installation directory used for probing.
// Defaults to the running executable's directory.
func WithAppDir(dir string) Option {
	return func(s *Store) {
		s.appDir = dir
	}
}

func WithLogger(log logger.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New constructs a Store seeded with defaults. Call Load afterwards to
// merge any persisted overrides.
func New(opts ...Option) *Store {
	s := &Store{
		tree:     defaultTree(),
		log:      logger.NewNop(),
		notifier: NewNotifier(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.path == "" {
		s.path = resolvePath(s.appDir)
	}

	return s
}

// resolvePath probes the application directory, then the home dotfile.
// When neither file exists the app-directory path is returned and file
// creation is deferred to Save.
func resolvePath(appDir string) string {
	if appDir == "" {
		if exe, err := os.Executable(); err == nil {
			appDir = filepath.Dir(exe)
		} else {
			appDir = "."
		}
	}

	appPath := filepath.Join(appDir, FileName)
	if _, err := os.Stat(appPath); err == nil {
		return appPath
	}

	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, "."+FileName)
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}

	return appPath
}

// Path returns the resolved configuration file location.
func (s *Store) Path() string {
	return s.path
}

// Load merges the persisted file over the defaults. Missing files, parse
// failures and read failures all degrade to defaults: they are logged and
// never returned to the caller.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
}

func (s *Store) loadLocked() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info(component, "no configuration file found, using defaults", map[string]interface{}{
				"path": s.path,
			})
		} else {
			s.log.Error(component, err, map[string]interface{}{"path": s.path})
		}
		return
	}

	var loaded Tree
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.log.Error(component, err, map[string]interface{}{"path": s.path})
		return
	}

	s.tree = deepMerge(s.tree, loaded)
	s.log.Info(component, "configuration loaded", map[string]interface{}{
		"path": s.path,
	})
}

// Get returns the value at section/key, or def when either is absent.
// Maps and slices come back as deep copies so callers cannot mutate the
// tree behind the mutex.
func (s *Store) Get(section, key string, def any) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sec, ok := s.tree[section].(map[string]any); ok {
		if val, ok := sec[key]; ok {
			return cloneValue(val)
		}
	}
	return def
}

// Set writes a value, creating the section if needed. The change is not
// persisted; call Save when the batch is complete.
func (s *Store) Set(section, key string, value any) {
	s.mu.Lock()
	sec, ok := s.tree[section].(map[string]any)
	if !ok {
		sec = make(map[string]any)
		s.tree[section] = sec
	}
	sec[key] = value
	s.mu.Unlock()

	s.notifier.Publish(Event{Section: section, Key: key, Value: value})
}

// Save stamps app.last_run, ensures the target directory exists and writes
// the full tree as indented JSON. Failures are logged and reported as
// false; the in-memory tree keeps its previous last_run so a failed save
// leaves no trace.
func (s *Store) Save() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() bool {
	app, ok := s.tree["app"].(map[string]any)
	if !ok {
		app = make(map[string]any)
		s.tree["app"] = app
	}

	prevLastRun := app["last_run"]
	app["last_run"] = time.Now().Format(time.RFC3339)

	fail := func(err error) bool {
		app["last_run"] = prevLastRun
		s.log.Error(component, err, map[string]interface{}{"path": s.path})
		return false
	}

	data, err := json.MarshalIndent(s.tree, "", "    ")
	if err != nil {
		return fail(err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fail(err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fail(err)
	}

	s.savedAt = time.Now()
	s.log.Info(component, "configuration saved", map[string]interface{}{
		"path": s.path,
	})
	return true
}

// ResetToDefaults discards every override, restores the baseline tree and
// persists it immediately.
func (s *Store) ResetToDefaults() {
	s.mu.Lock()
	s.tree = defaultTree()
	s.saveLocked()
	s.mu.Unlock()

	s.log.Info(component, "configuration reset to defaults", nil)
	s.notifier.Publish(Event{})
}

// SaveSettings applies a batch of values and performs a single Save.
// The batch is either nested ({section: {key: value}}) or flat, in which
// case keys are routed to the "app" section.
func (s *Store) SaveSettings(settings map[string]any) bool {
	for section, sectionData := range settings {
		if nested, ok := sectionData.(map[string]any); ok {
			for key, value := range nested {
				s.Set(section, key, value)
			}
		} else {
			s.Set("app", section, sectionData)
		}
	}

	return s.Save()
}

// Snapshot returns a deep copy of the active tree.
func (s *Store) Snapshot() Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTree(s.tree)
}

// Subscribe registers a change handler; see Notifier.Subscribe.
func (s *Store) Subscribe(h Handler) (unsubscribe func()) {
	return s.notifier.Subscribe(h)
}

// Reload rebuilds the tree from a fresh defaults copy plus the persisted
// file, then notifies subscribers that everything may have changed. Used
// by the live-reload watcher when the file changes on disk.
func (s *Store) Reload() {
	s.mu.Lock()
	s.tree = defaultTree()
	s.loadLocked()
	s.mu.Unlock()

	s.notifier.Publish(Event{})
}

// SinceSave reports how long ago the store last wrote its own file. The
// watcher uses this to skip events caused by Save itself.
func (s *Store) SinceSave() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.savedAt.IsZero() {
		return time.Duration(1<<63 - 1)
	}
	return time.Since(s.savedAt)
}
