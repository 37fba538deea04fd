// Package tree renders the settings tree: profiles plus the live setting
// bundle grouped the way flort options are grouped.
package tree

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	ltree "github.com/charmbracelet/lipgloss/tree"

	"github.com/flort-tools/flortctl/internal/logger"
	"github.com/flort-tools/flortctl/internal/profiles"
	"github.com/flort-tools/flortctl/internal/settings"
)

// DefaultDebounce is how long Refresh waits for further changes before
// redrawing in watch mode.
const DefaultDebounce = 100 * time.Millisecond

// Source supplies what the tree shows.
type Source interface {
	Active() string
	Names() []string
	Capture() profiles.Bundle
}

// Options configure a View.
type Options struct {
	Color    bool
	Debounce time.Duration
}

// View renders the tree to a writer. It implements profiles.Refresher: a
// refresh outside watch mode only marks the view dirty, in watch mode it
// schedules a debounced redraw.
type View struct {
	out      io.Writer
	styles   styles
	debounce time.Duration

	mu       sync.Mutex
	src      Source
	dirty    bool
	watching bool
	timer    *time.Timer
}

// New returns a view writing to out. Bind a source before rendering.
func New(out io.Writer, opts Options) *View {
	d := opts.Debounce
	if d <= 0 {
		d = DefaultDebounce
	}
	return &View{
		out:      out,
		styles:   newStyles(opts.Color),
		debounce: d,
	}
}

// Bind sets the source the view reads from.
func (v *View) Bind(src Source) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.src = src
}

// Refresh signals that settings changed.
func (v *View) Refresh() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.dirty = true
	if !v.watching {
		return
	}
	if v.timer != nil {
		v.timer.Stop()
	}
	v.timer = time.AfterFunc(v.debounce, func() {
		if err := v.Flush(); err != nil {
			logger.Warn("drawing tree failed", "error", err)
		}
	})
}

// Dirty reports whether a refresh arrived since the last draw.
func (v *View) Dirty() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dirty
}

// Flush draws the tree if it is dirty.
func (v *View) Flush() error {
	if !v.Dirty() {
		return nil
	}
	return v.Draw()
}

// Draw writes the current tree.
func (v *View) Draw() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.dirty = false
	if v.src == nil {
		return nil
	}
	_, err := fmt.Fprintln(v.out, v.render(v.src))
	return err
}

// Render returns the tree as a string.
func (v *View) Render() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.src == nil {
		return ""
	}
	return v.render(v.src)
}

func (v *View) render(src Source) string {
	st := v.styles
	live := src.Capture().Filled()

	profileNode := v.section("Profiles")
	active := src.Active()
	for _, name := range src.Names() {
		if name == active {
			profileNode.Child(st.active.Render("★ " + name + " (active)"))
		} else {
			profileNode.Child(st.item.Render("  " + name))
		}
	}
	if len(src.Names()) == 0 {
		profileNode.Child(st.off.Render("(none)"))
	}

	selection := v.section("File Selection").Child(
		v.list("Patterns", live.Patterns),
		v.list("Extensions", live.Extensions),
		v.list("Manual Files", live.ManualFiles),
	)
	filtering := v.section("Filtering").Child(
		v.list("Exclude Patterns", live.ExcludePatterns),
		v.list("Exclude Extensions", live.ExcludeExtensions),
		v.list("Exclude Directories", live.IgnoreDirs),
	)
	outputOpts := v.section("Output Options").Child(
		v.toggle("Show Config", settings.ShowConfig, *live.ShowConfig),
		v.toggle("Skip Directory Tree", settings.NoTree, *live.NoTree),
		v.toggle("Generate Code Outline", settings.Outline, *live.Outline),
		v.toggle("File Listing Only", settings.Manifest, *live.Manifest),
		v.toggle("Skip File Content", settings.NoDump, *live.NoDump),
		v.value("Archive Type", settings.Archive, orNone(*live.Archive)),
	)
	advanced := v.section("Advanced Settings").Child(
		v.toggle("Debug Output", settings.Debug, *live.Debug),
		v.toggle("Verbose Logging", settings.Verbose, *live.Verbose),
		v.toggle("Include All Files", settings.All, *live.All),
		v.toggle("Include Hidden Files", settings.Hidden, *live.Hidden),
		v.toggle("Include Binary Files", settings.IncludeBinary, *live.IncludeBinary),
		v.toggle("Directory Scan Optional", settings.DirectoryScanOptional, *live.DirectoryScanOptional),
		v.value("Max Directory Depth", settings.MaxDepth, strconv.Itoa(*live.MaxDepth)),
	)

	root := ltree.Root(st.root.Render("flort")).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(st.enumerate).
		Child(profileNode, selection, filtering, outputOpts, advanced)
	return root.String()
}

func (v *View) section(label string) *ltree.Tree {
	return ltree.Root(v.styles.section.Render(label)).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(v.styles.enumerate)
}

func (v *View) list(label string, values []string) *ltree.Tree {
	node := ltree.Root(fmt.Sprintf("%s (%d)", label, len(values))).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(v.styles.enumerate)
	for _, val := range values {
		node.Child(v.styles.item.Render(val))
	}
	return node
}

func (v *View) toggle(label, key string, on bool) string {
	state := v.styles.off.Render("Off")
	if on {
		state = v.styles.on.Render("On")
	}
	return fmt.Sprintf("%s [%s]: %s", label, key, state)
}

func (v *View) value(label, key, val string) string {
	return fmt.Sprintf("%s [%s]: %s", label, key, v.styles.value.Render(val))
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// Watch draws the tree, then redraws whenever file changes until ctx is
// done.
func (v *View) Watch(ctx context.Context, file string) error {
	w, err := newWatcher(file)
	if err != nil {
		return err
	}
	defer w.Close()

	v.mu.Lock()
	v.watching = true
	v.mu.Unlock()
	defer func() {
		v.mu.Lock()
		v.watching = false
		if v.timer != nil {
			v.timer.Stop()
		}
		v.mu.Unlock()
	}()

	if err := v.Draw(); err != nil {
		return err
	}
	return w.run(ctx, v.Refresh)
}
