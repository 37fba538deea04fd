// Package settings is the key-value configuration store shared by the
// profile manager and the command orchestrator.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/flort-tools/flortctl/internal/filelock"
	"go.yaml.in/yaml/v3"
)

// Scope selects which settings layer a write lands in.
type Scope int

const (
	// ScopeWorkspace is <workspace>/.flort/settings.yaml.
	ScopeWorkspace Scope = iota
	// ScopeUser is ~/.config/flortctl/settings.yaml.
	ScopeUser
)

func (s Scope) String() string {
	if s == ScopeUser {
		return "user"
	}
	return "workspace"
}

// Store is the configuration store contract. Get resolves the most specific
// scope that defines key; Set writes a single key to one scope.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any, scope Scope) error
}

// FileStore keeps each scope in its own yaml file. Every call re-reads the
// file so that separate flortctl processes observe each other's writes.
type FileStore struct {
	workspaceFile string
	userFile      string
}

// NewFileStore returns a store over the given files. userFile may be empty to
// disable the user layer.
func NewFileStore(workspaceFile, userFile string) *FileStore {
	return &FileStore{
		workspaceFile: workspaceFile,
		userFile:      userFile,
	}
}

// WorkspaceFile returns the path of the workspace layer.
func (s *FileStore) WorkspaceFile() string {
	return s.workspaceFile
}

// Get returns the value for key, looking at the workspace layer first. Read
// errors are treated as "not set" so that a corrupt user file never blocks a
// workspace read; Load surfaces them explicitly.
func (s *FileStore) Get(key string) (any, bool) {
	for _, path := range s.layers() {
		values, err := readLocked(path)
		if err != nil {
			continue
		}
		if v, ok := values[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Set writes key into the file for scope under an exclusive lock.
func (s *FileStore) Set(key string, value any, scope Scope) error {
	path := s.pathFor(scope)
	if path == "" {
		return fmt.Errorf("no settings file configured for %s scope", scope)
	}

	lock := filelock.For(path)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	values, err := read(path)
	if err != nil {
		return err
	}
	values[key] = value

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := filelock.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	return nil
}

// Load returns every key of one scope. A missing file yields an empty map.
func (s *FileStore) Load(scope Scope) (map[string]any, error) {
	path := s.pathFor(scope)
	if path == "" {
		return map[string]any{}, nil
	}
	return readLocked(path)
}

func (s *FileStore) layers() []string {
	if s.userFile == "" {
		return []string{s.workspaceFile}
	}
	return []string{s.workspaceFile, s.userFile}
}

func (s *FileStore) pathFor(scope Scope) string {
	if scope == ScopeUser {
		return s.userFile
	}
	return s.workspaceFile
}

func readLocked(path string) (map[string]any, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}

	lock := filelock.For(path)
	if err := lock.RLock(); err != nil {
		return nil, err
	}
	defer lock.Unlock()
	return read(path)
}

func read(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}
