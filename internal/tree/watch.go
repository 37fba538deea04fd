package tree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/flort-tools/flortctl/internal/logger"
)

// watcher reports changes to one file. The parent directory is watched
// because settings are replaced by rename.
type watcher struct {
	fs   *fsnotify.Watcher
	file string
}

func newWatcher(file string) (*watcher, error) {
	file = filepath.Clean(file)
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return &watcher{fs: fsw, file: file}, nil
}

func (w *watcher) Close() error {
	return w.fs.Close()
}

func (w *watcher) run(ctx context.Context, changed func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			logger.Debug("settings file changed", "op", event.Op.String())
			changed()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("settings watcher error", "error", err)
		}
	}
}
