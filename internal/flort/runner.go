package flort

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultMaxOutput caps captured stdout when no limit is configured.
const DefaultMaxOutput = 10 << 20

var (
	// ErrToolUnavailable is returned when the flort executable cannot be found.
	ErrToolUnavailable = errors.New("flort command not found")
	// ErrOutputTooLarge is returned when flort writes more than the output cap.
	ErrOutputTooLarge = errors.New("flort output exceeds limit")
)

// InstallHint is the remediation shown when flort is missing.
const (
	InstallHint = "pip install flort"
	InstallURL  = "https://pypi.org/project/flort/"
)

// InvocationError is returned when flort ran but reported failure.
type InvocationError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *InvocationError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("flort failed (exit %d): %s", e.ExitCode, msg)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Result is the captured output of one flort run.
type Result struct {
	Stdout string
	Stderr string
}

// Runner runs flort with the given arguments in dir.
type Runner interface {
	Run(ctx context.Context, dir string, args []string) (Result, error)
}

// ExecRunner runs flort as a child process.
type ExecRunner struct {
	// Path is the executable name or path. Defaults to "flort".
	Path string
	// MaxOutput caps captured stdout in bytes. Defaults to DefaultMaxOutput.
	MaxOutput int64
}

// Run executes flort and captures its output. No partial output is returned
// on failure.
func (r ExecRunner) Run(ctx context.Context, dir string, args []string) (Result, error) {
	bin, err := r.lookPath()
	if err != nil {
		return Result{}, err
	}

	stdout := &cappedBuffer{max: r.maxOutput()}
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stdout.overflow {
			return Result{}, fmt.Errorf("%w (%d bytes)", ErrOutputTooLarge, stdout.max)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{}, &InvocationError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
				Err:      err,
			}
		}
		return Result{}, &InvocationError{ExitCode: -1, Stderr: stderr.String(), Err: err}
	}

	return Result{Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// Version runs `flort --version` and returns its trimmed output.
func (r ExecRunner) Version(ctx context.Context) (string, error) {
	res, err := r.Run(ctx, "", []string{"--version"})
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(res.Stdout)
	if out == "" {
		out = strings.TrimSpace(res.Stderr)
	}
	return out, nil
}

func (r ExecRunner) lookPath() (string, error) {
	name := r.Path
	if name == "" {
		name = "flort"
	}
	bin, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrToolUnavailable, name)
	}
	return bin, nil
}

func (r ExecRunner) maxOutput() int64 {
	if r.MaxOutput <= 0 {
		return DefaultMaxOutput
	}
	return r.MaxOutput
}

// cappedBuffer fails writes once max bytes have been collected.
type cappedBuffer struct {
	buf      bytes.Buffer
	max      int64
	overflow bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if int64(b.buf.Len()+len(p)) > b.max {
		b.overflow = true
		return 0, ErrOutputTooLarge
	}
	return b.buf.Write(p)
}

func (b *cappedBuffer) String() string {
	return b.buf.String()
}
