package commands

import (
	"context"
	"errors"
	"sync"

	"github.com/flort-tools/flortctl/internal/flort"
	"github.com/flort-tools/flortctl/internal/output"
	"github.com/flort-tools/flortctl/internal/profiles"
)

var (
	// ErrDuplicateEntry is returned when adding a value a list already holds.
	ErrDuplicateEntry = errors.New("entry already exists")
	// ErrEmptyValue is returned for blank list entries.
	ErrEmptyValue = errors.New("value must not be empty")
	// ErrInvalidValue is returned when an edited value is out of range.
	ErrInvalidValue = errors.New("invalid value")
	// ErrCancelled is returned when the user dismisses a choice.
	ErrCancelled = errors.New("cancelled")
)

// DocumentOpener receives captured flort output.
type DocumentOpener interface {
	Open(content string) (output.Document, error)
}

// Options configure an Orchestrator.
type Options struct {
	// Root is the workspace root, used as the run directory and as the
	// default scan directory.
	Root   string
	Runner flort.Runner
	Output DocumentOpener
}

// Orchestrator sequences user actions against the profile manager so that
// every edit lands in the active profile and temporary profile runs leave
// no trace. Operations wait for initialization first.
type Orchestrator struct {
	mgr    *profiles.Manager
	root   string
	runner flort.Runner
	docs   DocumentOpener

	initOnce sync.Once
	ready    chan struct{}
	seeded   bool
	initErr  error
}

// New returns an orchestrator over mgr.
func New(mgr *profiles.Manager, opts Options) *Orchestrator {
	return &Orchestrator{
		mgr:    mgr,
		root:   opts.Root,
		runner: opts.Runner,
		docs:   opts.Output,
		ready:  make(chan struct{}),
	}
}

// Manager returns the profile manager.
func (o *Orchestrator) Manager() *profiles.Manager {
	return o.mgr
}

// Init starts initialization (default profile seeding) once. Further calls
// do nothing.
func (o *Orchestrator) Init() {
	o.initOnce.Do(func() {
		go func() {
			defer close(o.ready)
			o.seeded, o.initErr = o.mgr.EnsureDefaults()
		}()
	})
}

// Ready starts initialization if needed and waits for it to finish.
func (o *Orchestrator) Ready(ctx context.Context) error {
	o.Init()
	select {
	case <-o.ready:
		return o.initErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Seeded reports whether initialization created the default profiles. Only
// meaningful after Ready returned.
func (o *Orchestrator) Seeded() bool {
	select {
	case <-o.ready:
		return o.seeded
	default:
		return false
	}
}
