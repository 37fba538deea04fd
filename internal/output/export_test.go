package output

import "time"

// SetClock overrides the document timestamp source.
func (w *Writer) SetClock(now func() time.Time) { w.now = now }

// SetCopier overrides the clipboard.
func (w *Writer) SetCopier(copy func(string) error) { w.copy = copy }
