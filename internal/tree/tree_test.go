package tree_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/flort-tools/flortctl/internal/logger"
	"github.com/flort-tools/flortctl/internal/profiles"
	"github.com/flort-tools/flortctl/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	active string
	names  []string
	live   profiles.Bundle
}

func (f fakeSource) Active() string { return f.active }
func (f fakeSource) Names() []string { return f.names }
func (f fakeSource) Capture() profiles.Bundle { return f.live }

// syncBuffer is a bytes.Buffer safe for the debounce goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func source() fakeSource {
	live := profiles.DefaultProfiles()["Python"]
	live.ManualFiles = []string{"main.py"}
	return fakeSource{
		active: "Python",
		names:  []string{"All Files", "Python"},
		live:   live,
	}
}

func TestRender_Sections(t *testing.T) {
	v := tree.New(&bytes.Buffer{}, tree.Options{})
	v.Bind(source())

	out := v.Render()
	for _, want := range []string{
		"Profiles", "File Selection", "Filtering", "Output Options", "Advanced Settings",
		"Python (active)", "All Files",
		"Extensions (1)", "py", "main.py",
		"Generate Code Outline [outline]: On",
		"Include Hidden Files [hidden]: Off",
		"Archive Type [archive]: (none)",
		"Max Directory Depth [maxDepth]: 0",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "All Files (active)")
	assert.Less(t, strings.Index(out, "Profiles"), strings.Index(out, "Advanced Settings"))
}

func TestRender_Unbound(t *testing.T) {
	v := tree.New(&bytes.Buffer{}, tree.Options{})
	assert.Empty(t, v.Render())
}

func TestRefresh_MarksDirty(t *testing.T) {
	var buf bytes.Buffer
	v := tree.New(&buf, tree.Options{})
	v.Bind(source())

	require.NoError(t, v.Flush())
	assert.Empty(t, buf.String(), "clean view draws nothing")

	v.Refresh()
	v.Refresh()
	assert.True(t, v.Dirty())
	assert.Empty(t, buf.String(), "refresh outside watch mode does not draw")

	require.NoError(t, v.Flush())
	assert.False(t, v.Dirty())
	assert.Equal(t, 1, strings.Count(buf.String(), "File Selection"))
}

func TestWatch_RedrawsOnChange(t *testing.T) {
	out := &syncBuffer{}
	v := tree.New(out, tree.Options{Debounce: 20 * time.Millisecond})
	v.Bind(source())

	file := filepath.Join(t.TempDir(), ".flort", "settings.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- v.Watch(ctx, file) }()

	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "File Selection") == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_ = os.WriteFile(file, []byte("hidden: true\n"), 0644)
		return strings.Count(out.String(), "File Selection") >= 2
	}, 2*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

// brokenWriter accepts the first ok writes and fails afterwards.
type brokenWriter struct {
	mu     sync.Mutex
	ok     int
	writes int
}

func (w *brokenWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes++
	if w.writes > w.ok {
		return 0, errors.New("broken pipe")
	}
	return len(p), nil
}

func TestWatch_LogsRedrawFailure(t *testing.T) {
	logs := &syncBuffer{}
	require.NoError(t, logger.Init(logger.Options{Level: "warn", Writer: logs}))
	t.Cleanup(func() { logger.Logger = nil })

	v := tree.New(&brokenWriter{ok: 1}, tree.Options{Debounce: 20 * time.Millisecond})
	v.Bind(source())

	file := filepath.Join(t.TempDir(), ".flort", "settings.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- v.Watch(ctx, file) }()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(file, []byte("hidden: true\n"), 0644)
		return strings.Contains(logs.String(), "drawing tree failed")
	}, 2*time.Second, 50*time.Millisecond)
	assert.Contains(t, logs.String(), "broken pipe")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
