package flort_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flort-tools/flortctl/internal/flort"
	"github.com/flort-tools/flortctl/internal/profiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bundle(t *testing.T, raw map[string]any) profiles.Bundle {
	t.Helper()
	b, err := profiles.Decode(raw)
	require.NoError(t, err)
	return b.Filled()
}

func TestPartition(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.go")
	require.NoError(t, os.WriteFile(file, []byte("package a"), 0644))
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))

	sel := flort.Partition([]string{file, sub, filepath.Join(dir, "gone")})

	assert.Equal(t, []string{file}, sel.Files)
	assert.Equal(t, []string{sub}, sel.Dirs)
	assert.False(t, sel.Empty())
	assert.True(t, flort.Selection{}.Empty())
}

func TestPartition_RelativePathsBecomeAbsolute(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a"), 0644))
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })

	sel := flort.Partition([]string{"a.go", "."})

	require.Len(t, sel.Files, 1)
	require.Len(t, sel.Dirs, 1)
	assert.True(t, filepath.IsAbs(sel.Files[0]))
	assert.True(t, filepath.IsAbs(sel.Dirs[0]))
	assert.Equal(t, "a.go", filepath.Base(sel.Files[0]))
	assert.Equal(t, filepath.Dir(sel.Files[0]), sel.Dirs[0])
}

func TestBuildArgs_EmptySelectionUsesRoot(t *testing.T) {
	args, err := flort.BuildArgs(flort.Invocation{
		Live: bundle(t, map[string]any{"patterns": []string{"*.*"}}),
		Root: "/ws",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"-g", "*.*", "/ws", "-o", "stdio"}, args)
}

func TestBuildArgs_ScanOptional(t *testing.T) {
	live := bundle(t, map[string]any{
		"patterns":              []string{"*.*"},
		"directoryScanOptional": true,
	})

	_, err := flort.BuildArgs(flort.Invocation{Live: live, Profile: profiles.CherryPick, Root: "/ws"})
	assert.ErrorIs(t, err, flort.ErrSelectionRequired)

	args, err := flort.BuildArgs(flort.Invocation{Live: live, Profile: "Other", Root: "/ws"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-g", "*.*", "-o", "stdio"}, args)
}

func TestBuildArgs_CherryPickFilesOnly(t *testing.T) {
	live := bundle(t, map[string]any{
		"patterns":    []string{"*.*"},
		"extensions":  []string{"go"},
		"manualFiles": []string{"README.md"},
	})

	args, err := flort.BuildArgs(flort.Invocation{
		Live:      live,
		Profile:   profiles.CherryPick,
		Selection: flort.Selection{Files: []string{"a.go", "b.go"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"-f", "a.go,b.go,README.md", "-o", "stdio"}, args)

	args, err = flort.BuildArgs(flort.Invocation{
		Live:      live,
		Profile:   profiles.CherryPick,
		Selection: flort.Selection{Files: []string{"a.go"}, Dirs: []string{"src"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"-f", "a.go,README.md", "-g", "*.*", "-e", "go", "src", "-o", "stdio"}, args)
}

func TestBuildArgs_AllOptions(t *testing.T) {
	live := bundle(t, map[string]any{
		"patterns":          []string{"*.py", "*.md"},
		"extensions":        []string{".py", "txt"},
		"excludePatterns":   []string{"*.pyc"},
		"excludeExtensions": []string{".log"},
		"ignoreDirs":        []string{"venv", ".git"},
		"all":               true,
		"hidden":            true,
		"includeBinary":     true,
		"maxDepth":          3,
		"showConfig":        true,
		"noTree":            true,
		"outline":           true,
		"manifest":          true,
		"noDump":            true,
		"archive":           " zip ",
		"verbose":           true,
	})

	args, err := flort.BuildArgs(flort.Invocation{
		Live:      live,
		Profile:   "Python",
		Selection: flort.Selection{Dirs: []string{"src", "docs"}},
		Root:      "/ws",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-g", "*.py,*.md",
		"-e", "py,txt",
		"--exclude-patterns", "*.pyc",
		"--exclude-extensions", "log",
		"--ignore-dirs", "venv,.git",
		"--all", "--hidden", "--include-binary",
		"--max-depth", "3",
		"--show-config", "--no-tree", "--outline", "--manifest", "--no-dump",
		"--archive", "zip",
		"--verbose",
		"src", "docs",
		"-o", "stdio",
	}, args)
}
