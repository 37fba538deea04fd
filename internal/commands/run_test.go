package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/flort-tools/flortctl/internal/commands"
	"github.com/flort-tools/flortctl/internal/flort"
	"github.com/flort-tools/flortctl/internal/profiles"
	"github.com/flort-tools/flortctl/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoProfiles(t *testing.T, f *fixture, active string) {
	t.Helper()
	f.useProfiles(t, map[string]any{
		"A": map[string]any{"patterns": []string{"*.a"}, "hidden": false},
		"B": map[string]any{"extensions": []string{"b"}, "outline": true},
	}, active)
}

func TestRun_DefaultsToWorkspaceRoot(t *testing.T) {
	f := newFixture(t)

	out, err := f.orch.Run(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, f.runner.calls, 1)
	args := f.runner.calls[0]
	assert.Equal(t, []string{"-o", "stdio"}, args[len(args)-2:])
	assert.Equal(t, f.root, args[len(args)-3])
	assert.Equal(t, f.root, f.runner.dirs[0])

	assert.Equal(t, []string{"dump"}, f.docs.opened)
	assert.Equal(t, profiles.DefaultProfile, out.Profile)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "doc.txt", out.Document.Path)
}

func TestRun_SelectedPaths(t *testing.T) {
	f := newFixture(t)
	file := filepath.Join(f.root, "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main"), 0644))

	out, err := f.orch.Run(context.Background(), []string{file})
	require.NoError(t, err)
	assert.Equal(t, []string{"-f", file}, out.Args[:2])
	assert.NotContains(t, out.Args, f.root)
}

// chdir switches the working directory for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestRun_RelativePathFromSubdirectory(t *testing.T) {
	f := newFixture(t)
	pkg := filepath.Join(f.root, "pkg")
	require.NoError(t, os.Mkdir(pkg, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "main.go"), []byte("package main"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(f.root, "main.go"), []byte("package root"), 0644))
	chdir(t, pkg)

	out, err := f.orch.Run(context.Background(), []string{"main.go", "."})
	require.NoError(t, err)
	assert.Equal(t, f.root, f.runner.dirs[0])

	require.Equal(t, "-f", out.Args[0])
	file := out.Args[1]
	assert.True(t, filepath.IsAbs(file))
	got, err := filepath.EvalSymlinks(file)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(pkg, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	dir := out.Args[len(out.Args)-3]
	assert.True(t, filepath.IsAbs(dir))
	gotDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	wantDir, err := filepath.EvalSymlinks(pkg)
	require.NoError(t, err)
	assert.Equal(t, wantDir, gotDir)
}

func TestRun_FailureOpensNothing(t *testing.T) {
	f := newFixture(t)
	f.runner.err = &flort.InvocationError{ExitCode: 2, Stderr: "boom"}

	_, err := f.orch.Run(context.Background(), nil)
	var invErr *flort.InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Empty(t, f.docs.opened)
}

func TestRun_CherryPickNeedsSelection(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.orch.SetActive(context.Background(), profiles.CherryPick))

	_, err := f.orch.Run(context.Background(), nil)
	assert.ErrorIs(t, err, flort.ErrSelectionRequired)
	assert.Empty(t, f.runner.calls)
}

func TestRun_KeepsStderr(t *testing.T) {
	f := newFixture(t)
	f.runner.result.Stderr = "warning: skipped binary"

	out, err := f.orch.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "warning: skipped binary", out.Stderr)
}

func TestRunWithProfile_RestoresAfterSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	twoProfiles(t, f, "A")
	require.NoError(t, f.store.Set(settings.ManualFiles, []string{"notes.txt"}, settings.ScopeWorkspace))
	before := f.mgr.Capture()

	var during profiles.Bundle
	var duringActive string
	f.runner.during = func() {
		during = f.mgr.Capture()
		duringActive = f.mgr.Active()
	}

	out, err := f.orch.RunWithProfile(ctx, "B", nil)
	require.NoError(t, err)
	assert.Equal(t, "B", out.Profile)

	assert.Equal(t, "B", duringActive)
	assert.Equal(t, []string{"b"}, during.Extensions)
	assert.True(t, *during.Outline)

	assert.Equal(t, "A", f.mgr.Active())
	assert.Equal(t, before, f.mgr.Capture())

	a, err := f.mgr.Get("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, a.ManualFiles, "outgoing edits saved before the switch")

	b, err := f.mgr.Get("B")
	require.NoError(t, err)
	assert.Nil(t, b.Hidden, "temporary profile not rewritten")
}

func TestRunWithProfile_RestoresAfterFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	twoProfiles(t, f, "A")
	before := f.mgr.Capture()
	f.runner.err = flort.ErrToolUnavailable

	_, err := f.orch.RunWithProfile(ctx, "B", nil)
	assert.ErrorIs(t, err, flort.ErrToolUnavailable)

	assert.Equal(t, "A", f.mgr.Active())
	assert.Equal(t, before, f.mgr.Capture())
}

func TestRunWithProfile_RestoresAfterSelectionError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	twoProfiles(t, f, "A")
	before := f.mgr.Capture()

	_, err := f.orch.RunWithProfile(ctx, profiles.CherryPick, nil)
	assert.ErrorIs(t, err, profiles.ErrNotFound)

	f.useProfiles(t, map[string]any{
		"A":                 map[string]any{"patterns": []string{"*.a"}, "hidden": false},
		profiles.CherryPick: profiles.DefaultProfiles()[profiles.CherryPick].Map(),
	}, "A")
	before = f.mgr.Capture()

	_, err = f.orch.RunWithProfile(ctx, profiles.CherryPick, nil)
	assert.ErrorIs(t, err, flort.ErrSelectionRequired)
	assert.Equal(t, "A", f.mgr.Active())
	assert.Equal(t, before, f.mgr.Capture())
}

func TestRunWithProfile_NoPriorProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	twoProfiles(t, f, "")

	_, err := f.orch.RunWithProfile(ctx, "B", nil)
	require.NoError(t, err)
	assert.Equal(t, "B", f.mgr.Active())
	assert.Equal(t, []string{"b"}, settings.Strings(f.store, settings.Extensions))
}

func TestRunWithProfile_NotFound(t *testing.T) {
	f := newFixture(t)
	twoProfiles(t, f, "A")
	before := f.mgr.Capture()

	_, err := f.orch.RunWithProfile(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, profiles.ErrNotFound)
	assert.Empty(t, f.runner.calls)
	assert.Equal(t, "A", f.mgr.Active())
	assert.Equal(t, before, f.mgr.Capture())
}

func TestRunWithChoice(t *testing.T) {
	ctx := context.Background()

	t.Run("asks when several profiles exist", func(t *testing.T) {
		f := newFixture(t)
		twoProfiles(t, f, "A")

		var offered []string
		choose := func(_ context.Context, names []string, active string) (string, error) {
			offered = names
			assert.Equal(t, "A", active)
			return "B", nil
		}
		out, err := f.orch.RunWithChoice(ctx, nil, choose)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, offered)
		assert.Equal(t, "B", out.Profile)
		assert.Equal(t, "A", f.mgr.Active())
	})

	t.Run("dismissed choice", func(t *testing.T) {
		f := newFixture(t)
		twoProfiles(t, f, "A")

		_, err := f.orch.RunWithChoice(ctx, nil, func(context.Context, []string, string) (string, error) {
			return "", nil
		})
		assert.ErrorIs(t, err, commands.ErrCancelled)
		assert.Empty(t, f.runner.calls)
	})

	t.Run("single profile needs no choice", func(t *testing.T) {
		f := newFixture(t)
		f.useProfiles(t, map[string]any{"Only": map[string]any{"extensions": []string{"md"}}}, "")

		out, err := f.orch.RunWithChoice(ctx, nil, func(context.Context, []string, string) (string, error) {
			t.Fatal("chooser must not be called")
			return "", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Only", out.Profile)
	})

	t.Run("no profiles runs plainly", func(t *testing.T) {
		f := newFixture(t)
		f.useProfiles(t, map[string]any{}, "")

		out, err := f.orch.RunWithChoice(ctx, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, out.Profile)
		assert.Len(t, f.runner.calls, 1)
	})
}
