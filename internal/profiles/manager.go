package profiles

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/flort-tools/flortctl/internal/logger"
	"github.com/flort-tools/flortctl/internal/settings"
)

var (
	// ErrNotFound is returned when a named profile does not exist.
	ErrNotFound = errors.New("profile not found")
	// ErrAlreadyExists is returned when creating a profile whose name is taken.
	ErrAlreadyExists = errors.New("profile already exists")
)

// Refresher is told that settings changed after every successful write.
type Refresher interface {
	Refresh()
}

// RefreshFunc adapts a plain function to Refresher.
type RefreshFunc func()

// Refresh calls f.
func (f RefreshFunc) Refresh() { f() }

// Manager keeps the profile mapping and the active-profile pointer in sync
// with the live settings of a store. All writes are workspace scoped; each
// key write is atomic but a multi-key operation is not.
type Manager struct {
	store settings.Store
	view  Refresher
}

// NewManager returns a manager over store. view may be nil.
func NewManager(store settings.Store, view Refresher) *Manager {
	return &Manager{store: store, view: view}
}

// Store returns the underlying settings store.
func (m *Manager) Store() settings.Store {
	return m.store
}

// Active returns the active profile name, or "".
func (m *Manager) Active() string {
	return settings.String(m.store, settings.CurrentProfile, "")
}

// SetActive moves the active pointer without touching the live settings.
func (m *Manager) SetActive(name string) error {
	if err := m.set(settings.CurrentProfile, name); err != nil {
		return fmt.Errorf("setting active profile: %w", err)
	}
	m.refresh()
	return nil
}

// Set writes one live setting and signals a refresh.
func (m *Manager) Set(key string, value any) error {
	if err := m.set(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	m.refresh()
	return nil
}

// Names returns the profile names in iteration order (sorted).
func (m *Manager) Names() []string {
	raw := settings.Map(m.store, settings.Profiles)
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exists reports whether a profile named name is stored.
func (m *Manager) Exists(name string) bool {
	_, ok := settings.Map(m.store, settings.Profiles)[name]
	return ok
}

// Get returns the stored bundle for name as stored, without default filling.
func (m *Manager) Get(name string) (Bundle, error) {
	raw, ok := settings.Map(m.store, settings.Profiles)[name]
	if !ok {
		return Bundle{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	b, err := Decode(raw)
	if err != nil {
		return Bundle{}, fmt.Errorf("profile %q: %w", name, err)
	}
	return b, nil
}

// Profiles returns every stored bundle keyed by name.
func (m *Manager) Profiles() (map[string]Bundle, error) {
	raw := settings.Map(m.store, settings.Profiles)
	out := make(map[string]Bundle, len(raw))
	for name, entry := range raw {
		b, err := Decode(entry)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		out[name] = b
	}
	return out, nil
}

// Load copies the stored bundle for name into the live settings. Lists are
// always written (absent means empty); scalars are written only when the
// stored bundle defines them, so legacy profiles do not clobber newer keys.
func (m *Manager) Load(name string) error {
	b, err := m.Get(name)
	if err != nil {
		return err
	}

	for _, key := range settings.ListKeys {
		if err := m.set(key, nonNil(b.Lists()[key])); err != nil {
			return fmt.Errorf("loading profile %q: %w", name, err)
		}
	}
	scalars := b.Scalars()
	for _, key := range scalarKeys {
		v, ok := scalars[key]
		if !ok {
			continue
		}
		if err := m.set(key, v); err != nil {
			return fmt.Errorf("loading profile %q: %w", name, err)
		}
	}

	logger.Debug("profile loaded", "profile", name)
	m.refresh()
	return nil
}

// Capture reads the entire live bundle, filling defaults for unset keys.
func (m *Manager) Capture() Bundle {
	s := m.store
	b := Bundle{
		Patterns:              settings.Strings(s, settings.Patterns),
		Extensions:            settings.Strings(s, settings.Extensions),
		ManualFiles:           settings.Strings(s, settings.ManualFiles),
		ExcludePatterns:       settings.Strings(s, settings.ExcludePatterns),
		ExcludeExtensions:     settings.Strings(s, settings.ExcludeExtensions),
		IgnoreDirs:            settings.Strings(s, settings.IgnoreDirs),
		MaxDepth:              ptr(settings.Int(s, settings.MaxDepth, 0)),
		Archive:               ptr(settings.String(s, settings.Archive, "")),
		Debug:                 ptr(settings.Bool(s, settings.Debug, false)),
		ShowConfig:            ptr(settings.Bool(s, settings.ShowConfig, false)),
		Hidden:                ptr(settings.Bool(s, settings.Hidden, false)),
		All:                   ptr(settings.Bool(s, settings.All, false)),
		IncludeBinary:         ptr(settings.Bool(s, settings.IncludeBinary, false)),
		NoTree:                ptr(settings.Bool(s, settings.NoTree, false)),
		Outline:               ptr(settings.Bool(s, settings.Outline, false)),
		Manifest:              ptr(settings.Bool(s, settings.Manifest, false)),
		NoDump:                ptr(settings.Bool(s, settings.NoDump, false)),
		Verbose:               ptr(settings.Bool(s, settings.Verbose, false)),
		DirectoryScanOptional: ptr(settings.Bool(s, settings.DirectoryScanOptional, false)),
	}
	return b
}

// SaveAs captures the live bundle and stores it under name, replacing any
// previous entry in full.
func (m *Manager) SaveAs(name string) (Bundle, error) {
	if err := validName(name); err != nil {
		return Bundle{}, err
	}
	b := m.Capture()
	if err := m.put(name, b); err != nil {
		return Bundle{}, err
	}
	logger.Debug("profile saved", "profile", name)
	m.refresh()
	return b, nil
}

// SaveActive stores the live bundle into the active profile. It is a no-op
// when no profile is active.
func (m *Manager) SaveActive() error {
	active := m.Active()
	if active == "" {
		return nil
	}
	_, err := m.SaveAs(active)
	return err
}

// Create adds a new profile, seeded from the live settings or from defaults.
func (m *Manager) Create(name string, seedFromCurrent bool) (Bundle, error) {
	if err := validName(name); err != nil {
		return Bundle{}, err
	}
	if m.Exists(name) {
		return Bundle{}, fmt.Errorf("%w: %q", ErrAlreadyExists, name)
	}
	if seedFromCurrent {
		return m.SaveAs(name)
	}

	b := DefaultBundle()
	if err := m.put(name, b); err != nil {
		return Bundle{}, err
	}
	logger.Debug("empty profile created", "profile", name)
	m.refresh()
	return b, nil
}

// EnsureDefaults seeds the built-in profiles when none exist and activates
// DefaultProfile. When profiles exist it only repairs a blank active pointer
// by activating the first profile. It reports whether seeding happened.
//
// Activating loads the profile, so live values set before any profile
// existed (or while the pointer was blank) are replaced by the activated
// profile's bundle and are not kept anywhere.
func (m *Manager) EnsureDefaults() (bool, error) {
	names := m.Names()
	if len(names) > 0 {
		if m.Active() == "" {
			logger.Info("repairing blank active profile", "profile", names[0])
			if err := m.activate(names[0]); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	all := make(map[string]any)
	for name, b := range DefaultProfiles() {
		all[name] = b.Map()
	}
	if err := m.set(settings.Profiles, all); err != nil {
		return false, fmt.Errorf("seeding default profiles: %w", err)
	}
	logger.Info("default profiles created", "count", len(all))

	if err := m.activate(DefaultProfile); err != nil {
		return true, err
	}
	return true, nil
}

// activate loads name and points the active pointer at it.
func (m *Manager) activate(name string) error {
	if err := m.Load(name); err != nil {
		return err
	}
	return m.SetActive(name)
}

func (m *Manager) put(name string, b Bundle) error {
	all := settings.Map(m.store, settings.Profiles)
	all[name] = b.Map()
	if err := m.set(settings.Profiles, all); err != nil {
		return fmt.Errorf("saving profile %q: %w", name, err)
	}
	return nil
}

func (m *Manager) set(key string, value any) error {
	return m.store.Set(key, value, settings.ScopeWorkspace)
}

func (m *Manager) refresh() {
	if m.view != nil {
		m.view.Refresh()
	}
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("profile name must not be empty")
	}
	return nil
}

var scalarKeys = append(append([]string{}, settings.BoolKeys...), settings.MaxDepth, settings.Archive)
