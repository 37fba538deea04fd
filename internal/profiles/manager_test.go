package profiles_test

import (
	"path/filepath"
	"testing"

	"github.com/flort-tools/flortctl/internal/profiles"
	"github.com/flort-tools/flortctl/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ n int }

func (c *counter) Refresh() { c.n++ }

func newManager(t *testing.T) (*profiles.Manager, *settings.FileStore, *counter) {
	t.Helper()
	dir := t.TempDir()
	store := settings.NewFileStore(
		filepath.Join(dir, ".flort", "settings.yaml"),
		filepath.Join(dir, "user", "settings.yaml"),
	)
	c := &counter{}
	return profiles.NewManager(store, c), store, c
}

func set(t *testing.T, s settings.Store, key string, v any) {
	t.Helper()
	require.NoError(t, s.Set(key, v, settings.ScopeWorkspace))
}

func TestLoad_NotFound(t *testing.T) {
	m, _, c := newManager(t)

	err := m.Load("missing")
	assert.ErrorIs(t, err, profiles.ErrNotFound)
	assert.Zero(t, c.n)
}

func TestLoad_LegacyProfileKeepsNewerScalars(t *testing.T) {
	m, store, _ := newManager(t)

	set(t, store, settings.Patterns, []string{"*.go"})
	set(t, store, settings.Manifest, true)
	set(t, store, settings.Profiles, map[string]any{
		"legacy": map[string]any{
			"extensions": []string{"py"},
			"hidden":     true,
		},
	})

	require.NoError(t, m.Load("legacy"))

	assert.Equal(t, []string{}, settings.Strings(store, settings.Patterns), "absent lists load as empty")
	assert.Equal(t, []string{"py"}, settings.Strings(store, settings.Extensions))
	assert.True(t, settings.Bool(store, settings.Hidden, false))
	assert.True(t, settings.Bool(store, settings.Manifest, false), "undefined scalars are not reset")
}

func TestLoadThenSave_FillsDefaults(t *testing.T) {
	m, store, _ := newManager(t)

	set(t, store, settings.Profiles, map[string]any{
		"p": map[string]any{
			"patterns": []string{"*.md"},
			"outline":  true,
			"maxDepth": 2,
		},
	})

	require.NoError(t, m.Load("p"))
	_, err := m.SaveAs("p")
	require.NoError(t, err)

	got, err := m.Get("p")
	require.NoError(t, err)

	want, err := profiles.Decode(map[string]any{
		"patterns": []string{"*.md"},
		"outline":  true,
		"maxDepth": 2,
	})
	require.NoError(t, err)
	assert.Equal(t, want.Filled(), got)
}

func TestSaveAs_FullOverwrite(t *testing.T) {
	m, store, c := newManager(t)

	set(t, store, settings.Profiles, map[string]any{
		"p":     map[string]any{"patterns": []string{"old"}, "noDump": true},
		"other": map[string]any{"extensions": []string{"c"}},
	})
	set(t, store, settings.Patterns, []string{"new"})

	b, err := m.SaveAs("p")
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, b.Patterns)
	assert.Equal(t, 1, c.n)

	got, err := m.Get("p")
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, got.Patterns)
	require.NotNil(t, got.NoDump)
	assert.False(t, *got.NoDump)

	other, err := m.Get("other")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, other.Extensions)
}

func TestSaveAs_EmptyName(t *testing.T) {
	m, _, _ := newManager(t)
	_, err := m.SaveAs("  ")
	assert.Error(t, err)
}

func TestSaveActive_NoActiveIsNoop(t *testing.T) {
	m, _, c := newManager(t)

	require.NoError(t, m.SaveActive())
	assert.Empty(t, m.Names())
	assert.Zero(t, c.n)
}

func TestSaveActive(t *testing.T) {
	m, store, _ := newManager(t)

	_, err := m.Create("A", false)
	require.NoError(t, err)
	require.NoError(t, m.SetActive("A"))
	set(t, store, settings.IgnoreDirs, []string{"vendor"})

	require.NoError(t, m.SaveActive())

	got, err := m.Get("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor"}, got.IgnoreDirs)
}

func TestCreate(t *testing.T) {
	m, store, _ := newManager(t)

	set(t, store, settings.Extensions, []string{"rs"})

	empty, err := m.Create("empty", false)
	require.NoError(t, err)
	assert.Equal(t, profiles.DefaultBundle(), empty)

	seeded, err := m.Create("seeded", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"rs"}, seeded.Extensions)

	_, err = m.Create("empty", true)
	assert.ErrorIs(t, err, profiles.ErrAlreadyExists)

	assert.Equal(t, []string{"empty", "seeded"}, m.Names())
}

func TestEnsureDefaults_Seeds(t *testing.T) {
	m, store, c := newManager(t)

	seeded, err := m.EnsureDefaults()
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Positive(t, c.n)

	assert.Len(t, m.Names(), 8)
	assert.Equal(t, profiles.DefaultProfile, m.Active())
	assert.True(t, settings.Bool(store, settings.Hidden, false), "default profile is loaded")

	first, err := m.Profiles()
	require.NoError(t, err)

	seeded, err = m.EnsureDefaults()
	require.NoError(t, err)
	assert.False(t, seeded)

	second, err := m.Profiles()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEnsureDefaults_LeavesExistingProfiles(t *testing.T) {
	m, store, _ := newManager(t)

	set(t, store, settings.Profiles, map[string]any{
		"mine": map[string]any{"patterns": []string{"*.txt"}},
	})
	set(t, store, settings.CurrentProfile, "mine")

	seeded, err := m.EnsureDefaults()
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Equal(t, []string{"mine"}, m.Names())

	got, err := m.Get("mine")
	require.NoError(t, err)
	assert.Equal(t, []string{"*.txt"}, got.Patterns)
	assert.Nil(t, got.Hidden, "existing entry is not rewritten")
}

func TestEnsureDefaults_RepairsBlankPointer(t *testing.T) {
	m, store, _ := newManager(t)

	set(t, store, settings.Profiles, map[string]any{
		"b": map[string]any{"extensions": []string{"b"}},
		"a": map[string]any{"extensions": []string{"a"}},
	})

	_, err := m.EnsureDefaults()
	require.NoError(t, err)

	assert.Equal(t, "a", m.Active())
	assert.Equal(t, []string{"a"}, settings.Strings(store, settings.Extensions))
}

func TestEnsureDefaults_ReplacesUnprofiledLiveValues(t *testing.T) {
	m, store, _ := newManager(t)

	set(t, store, settings.Patterns, []string{"*.x"})
	set(t, store, settings.Outline, true)

	seeded, err := m.EnsureDefaults()
	require.NoError(t, err)
	require.True(t, seeded)

	all := profiles.DefaultProfiles()[profiles.DefaultProfile]
	assert.Equal(t, all.Patterns, settings.Strings(store, settings.Patterns))
	assert.False(t, settings.Bool(store, settings.Outline, true))
	for _, name := range m.Names() {
		b, err := m.Get(name)
		require.NoError(t, err)
		assert.NotContains(t, b.Patterns, "*.x", name)
	}
}

func TestEndToEnd_LoadPython(t *testing.T) {
	m, store, _ := newManager(t)

	_, err := m.EnsureDefaults()
	require.NoError(t, err)
	require.NoError(t, m.Load("Python"))

	assert.Equal(t, []string{"py"}, settings.Strings(store, settings.Extensions))
	assert.True(t, settings.Bool(store, settings.Outline, false))
}

func TestRefreshFunc(t *testing.T) {
	called := 0
	dir := t.TempDir()
	store := settings.NewFileStore(filepath.Join(dir, "s.yaml"), "")
	m := profiles.NewManager(store, profiles.RefreshFunc(func() { called++ }))

	require.NoError(t, m.SetActive("x"))
	assert.Equal(t, 1, called)
	assert.Equal(t, "x", m.Active())
}
