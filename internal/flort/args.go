// Package flort builds the command line for the external flort tool and runs
// it.
package flort

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/flort-tools/flortctl/internal/logger"
	"github.com/flort-tools/flortctl/internal/profiles"
)

// ErrSelectionRequired is returned when the active profile only runs on an
// explicit selection and nothing was selected.
var ErrSelectionRequired = errors.New("the Cherry Pick profile requires manual file selection; select files first")

// Selection is the set of user-selected paths split by kind.
type Selection struct {
	Files []string
	Dirs  []string
}

// Empty reports whether nothing was selected.
func (s Selection) Empty() bool {
	return len(s.Files) == 0 && len(s.Dirs) == 0
}

// Partition stats each path and sorts it into files or directories. Relative
// paths are resolved against the current directory and returned absolute,
// since flort runs from the workspace root. Paths that cannot be stat'ed are
// skipped.
func Partition(paths []string) Selection {
	var sel Selection
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			logger.Warn("skipping unresolvable selection", "path", p, "error", err)
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			logger.Warn("skipping unreadable selection", "path", abs, "error", err)
			continue
		}
		if info.IsDir() {
			sel.Dirs = append(sel.Dirs, abs)
		} else {
			sel.Files = append(sel.Files, abs)
		}
	}
	return sel
}

// Invocation is everything needed to build one flort command line.
type Invocation struct {
	// Live is the live setting bundle, with defaults filled.
	Live profiles.Bundle
	// Profile is the active profile name at run time.
	Profile string
	// Selection holds the selected files and directories.
	Selection Selection
	// Root is the workspace root, used when nothing is selected.
	Root string
}

// BuildArgs returns the flort arguments (without the program name).
func BuildArgs(inv Invocation) ([]string, error) {
	live := inv.Live.Filled()
	files := append([]string{}, inv.Selection.Files...)
	dirs := append([]string{}, inv.Selection.Dirs...)

	if inv.Selection.Empty() {
		switch {
		case !*live.DirectoryScanOptional:
			if inv.Root != "" {
				dirs = append(dirs, inv.Root)
			}
		case inv.Profile == profiles.CherryPick:
			return nil, ErrSelectionRequired
		}
	}

	// Patterns make flort scan directories, so a Cherry Pick run over
	// explicit files alone leaves them out.
	filesOnly := inv.Profile == profiles.CherryPick && len(files) > 0 && len(dirs) == 0

	files = append(files, live.ManualFiles...)

	var args []string
	if len(files) > 0 {
		args = append(args, "-f", strings.Join(files, ","))
	}
	if !filesOnly && len(live.Patterns) > 0 {
		args = append(args, "-g", strings.Join(live.Patterns, ","))
	}
	if !filesOnly && len(live.Extensions) > 0 {
		args = append(args, "-e", strings.Join(trimDots(live.Extensions), ","))
	}
	if len(live.ExcludePatterns) > 0 {
		args = append(args, "--exclude-patterns", strings.Join(live.ExcludePatterns, ","))
	}
	if len(live.ExcludeExtensions) > 0 {
		args = append(args, "--exclude-extensions", strings.Join(trimDots(live.ExcludeExtensions), ","))
	}
	if len(live.IgnoreDirs) > 0 {
		args = append(args, "--ignore-dirs", strings.Join(live.IgnoreDirs, ","))
	}

	args = appendFlag(args, *live.All, "--all")
	args = appendFlag(args, *live.Hidden, "--hidden")
	args = appendFlag(args, *live.IncludeBinary, "--include-binary")
	if *live.MaxDepth > 0 {
		args = append(args, "--max-depth", strconv.Itoa(*live.MaxDepth))
	}

	args = appendFlag(args, *live.ShowConfig, "--show-config")
	args = appendFlag(args, *live.NoTree, "--no-tree")
	args = appendFlag(args, *live.Outline, "--outline")
	args = appendFlag(args, *live.Manifest, "--manifest")
	args = appendFlag(args, *live.NoDump, "--no-dump")
	if archive := strings.TrimSpace(*live.Archive); archive != "" {
		args = append(args, "--archive", archive)
	}
	args = appendFlag(args, *live.Verbose, "--verbose")

	args = append(args, dirs...)
	args = append(args, "-o", "stdio")
	return args, nil
}

func appendFlag(args []string, on bool, flag string) []string {
	if on {
		return append(args, flag)
	}
	return args
}

func trimDots(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = strings.TrimPrefix(e, ".")
	}
	return out
}
