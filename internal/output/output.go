// Package output delivers captured flort output as a new read-only document.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/flort-tools/flortctl/internal/logger"
)

// Document describes one delivered output.
type Document struct {
	// Path is the written file, empty when streamed.
	Path string
	// Size is the length of the content in bytes.
	Size int
	// Copied reports whether the content reached the clipboard.
	Copied bool
}

// Summary is a one-line description for notices.
func (d Document) Summary() string {
	size := humanize.Bytes(uint64(d.Size))
	switch {
	case d.Path != "" && d.Copied:
		return fmt.Sprintf("wrote %s (%s), copied to clipboard", d.Path, size)
	case d.Path != "":
		return fmt.Sprintf("wrote %s (%s)", d.Path, size)
	case d.Copied:
		return fmt.Sprintf("copied %s to clipboard", size)
	default:
		return fmt.Sprintf("streamed %s", size)
	}
}

// Writer opens flort output documents.
type Writer struct {
	// Dir receives document files.
	Dir string
	// Stream, when set, receives the content instead of a file.
	Stream io.Writer
	// Clipboard also copies the content to the system clipboard.
	Clipboard bool

	now  func() time.Time
	copy func(string) error
}

// NewWriter returns a writer placing documents in dir.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// Open delivers content. Files are written read-only with a unique name.
func (w *Writer) Open(content string) (Document, error) {
	doc := Document{Size: len(content)}

	if w.Stream != nil {
		if _, err := io.WriteString(w.Stream, content); err != nil {
			return doc, fmt.Errorf("writing output: %w", err)
		}
	} else {
		path, err := w.writeFile(content)
		if err != nil {
			return doc, err
		}
		doc.Path = path
	}

	if w.Clipboard {
		if err := w.copyFunc()(content); err != nil {
			logger.Warn("clipboard copy failed", "error", err)
		} else {
			doc.Copied = true
		}
	}
	return doc, nil
}

func (w *Writer) writeFile(content string) (string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	name := fmt.Sprintf("flort-%s-%s.txt", w.clock()().Format("20060102-150405"), uuid.NewString()[:8])
	path := filepath.Join(w.Dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0444)
	if err != nil {
		return "", fmt.Errorf("creating output document: %w", err)
	}
	if _, err := io.WriteString(f, content); err != nil {
		f.Close()
		return "", fmt.Errorf("writing output document: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing output document: %w", err)
	}

	logger.Debug("output document written", "path", path, "bytes", len(content))
	return path, nil
}

func (w *Writer) clock() func() time.Time {
	if w.now != nil {
		return w.now
	}
	return time.Now
}

func (w *Writer) copyFunc() func(string) error {
	if w.copy != nil {
		return w.copy
	}
	return clipboard.WriteAll
}
