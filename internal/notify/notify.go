// Package notify turns command results and errors into user-visible notices.
package notify

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/flort-tools/flortctl/internal/commands"
	"github.com/flort-tools/flortctl/internal/flort"
	"github.com/flort-tools/flortctl/internal/profiles"
)

// Severity orders notices from least to most serious.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "error"
	}
}

// Notice is one message for the user.
type Notice struct {
	Severity    Severity
	Message     string
	Remediation string
}

// Classify maps an error onto a notice.
func Classify(err error) Notice {
	n := Notice{Severity: SeverityError, Message: err.Error()}

	var invErr *flort.InvocationError
	switch {
	case errors.Is(err, flort.ErrToolUnavailable):
		n.Message = "Flort command not found. Please install: " + flort.InstallHint
		n.Remediation = fmt.Sprintf("run `%s` (see %s), or set tool.path in the flortctl config", flort.InstallHint, flort.InstallURL)
	case errors.As(err, &invErr):
		n.Message = invErr.Error()
	case errors.Is(err, flort.ErrSelectionRequired), errors.Is(err, commands.ErrCancelled):
		n.Severity = SeverityInfo
	case errors.Is(err, profiles.ErrAlreadyExists), errors.Is(err, commands.ErrDuplicateEntry):
		n.Severity = SeverityWarning
	}
	return n
}

// Reporter prints notices.
type Reporter struct {
	out   io.Writer
	color bool
}

// NewReporter returns a reporter on out. Color is enabled only when out is a
// terminal.
func NewReporter(out io.Writer) *Reporter {
	useColor := false
	if f, ok := out.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Reporter{out: out, color: useColor && !color.NoColor}
}

// Report prints the notice for err and returns its severity. A nil error
// reports nothing and returns SeverityInfo.
func (r *Reporter) Report(err error) Severity {
	if err == nil {
		return SeverityInfo
	}
	n := Classify(err)
	r.Notice(n)
	return n.Severity
}

// Notice prints n.
func (r *Reporter) Notice(n Notice) {
	fmt.Fprintf(r.out, "%s %s\n", r.label(n.Severity), n.Message)
	if n.Remediation != "" {
		fmt.Fprintf(r.out, "  %s\n", n.Remediation)
	}
}

// Info prints an informational message.
func (r *Reporter) Info(format string, args ...any) {
	r.Notice(Notice{Severity: SeverityInfo, Message: fmt.Sprintf(format, args...)})
}

// Warn prints a warning.
func (r *Reporter) Warn(format string, args ...any) {
	r.Notice(Notice{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

// Success prints a confirmation line.
func (r *Reporter) Success(format string, args ...any) {
	mark := "✓"
	if r.color {
		mark = color.New(color.FgGreen).Sprint(mark)
	}
	fmt.Fprintf(r.out, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

func (r *Reporter) label(s Severity) string {
	text := s.String() + ":"
	if !r.color {
		return text
	}
	switch s {
	case SeverityInfo:
		return color.New(color.FgCyan).Sprint(text)
	case SeverityWarning:
		return color.New(color.FgYellow).Sprint(text)
	default:
		return color.New(color.FgRed, color.Bold).Sprint(text)
	}
}
