package paths

import (
	"errors"
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// ConfigDir returns ~/.config/flortctl.
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "flortctl")
	}
	return filepath.Join(home(), ".config", "flortctl")
}

// ConfigFile returns ~/.config/flortctl/config.yaml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// UserSettingsFile returns ~/.config/flortctl/settings.yaml, the user-scoped
// settings layer.
func UserSettingsFile() string {
	return filepath.Join(ConfigDir(), "settings.yaml")
}

// WorkspaceDir returns <workspace>/.flort.
func WorkspaceDir(workspace string) string {
	return filepath.Join(workspace, ".flort")
}

// WorkspaceSettingsFile returns <workspace>/.flort/settings.yaml.
func WorkspaceSettingsFile(workspace string) string {
	return filepath.Join(WorkspaceDir(workspace), "settings.yaml")
}

// OutputDir returns <workspace>/.flort/output.
func OutputDir(workspace string) string {
	return filepath.Join(WorkspaceDir(workspace), "output")
}

// ErrNoWorkspace is returned when no enclosing workspace settings file exists.
var ErrNoWorkspace = errors.New("no .flort/settings.yaml found")

// FindWorkspace walks up from dir looking for .flort/settings.yaml.
func FindWorkspace(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(WorkspaceSettingsFile(dir)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoWorkspace
		}
		dir = parent
	}
}
