package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/flort-tools/flortctl/internal/flort"
	"github.com/flort-tools/flortctl/internal/logger"
	"github.com/flort-tools/flortctl/internal/output"
	"github.com/flort-tools/flortctl/internal/profiles"
)

// Outcome describes a finished flort run.
type Outcome struct {
	ID       string
	Profile  string
	Args     []string
	Document output.Document
	// Stderr is flort's standard error from a successful run.
	Stderr string
}

// Chooser asks the user to pick one of names. It returns "" when the user
// dismisses the choice.
type Chooser func(ctx context.Context, names []string, active string) (string, error)

// Run runs flort with the live settings over paths.
func (o *Orchestrator) Run(ctx context.Context, paths []string) (Outcome, error) {
	if err := o.Ready(ctx); err != nil {
		return Outcome{}, err
	}
	return o.run(ctx, paths)
}

// RunWithProfile runs flort once with target, then puts the previously
// active profile back: its live settings are saved before the switch and
// reloaded afterwards on every exit path, whether the run failed or not.
// With no previously active profile, target stays active.
//
// Runs must not nest: a second RunWithProfile started while one is in
// flight would restore over the first.
func (o *Orchestrator) RunWithProfile(ctx context.Context, target string, paths []string) (out Outcome, err error) {
	if err := o.Ready(ctx); err != nil {
		return Outcome{}, err
	}
	if !o.mgr.Exists(target) {
		return Outcome{}, fmt.Errorf("running with profile: %w: %q", profiles.ErrNotFound, target)
	}

	original := o.mgr.Active()
	if original != "" {
		if _, err := o.mgr.SaveAs(original); err != nil {
			return Outcome{}, err
		}
	}

	defer func() {
		if original == "" {
			return
		}
		if rerr := o.restore(original); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()

	if err := o.mgr.Load(target); err != nil {
		return Outcome{}, err
	}
	if err := o.mgr.SetActive(target); err != nil {
		return Outcome{}, err
	}
	logger.Debug("temporary profile active", "profile", target, "restore", original)

	return o.run(ctx, paths)
}

// RunWithChoice runs with a profile picked by choose. Without profiles it is
// a plain Run, with exactly one profile that profile is used.
func (o *Orchestrator) RunWithChoice(ctx context.Context, paths []string, choose Chooser) (Outcome, error) {
	if err := o.Ready(ctx); err != nil {
		return Outcome{}, err
	}

	names := o.mgr.Names()
	switch len(names) {
	case 0:
		return o.run(ctx, paths)
	case 1:
		return o.RunWithProfile(ctx, names[0], paths)
	}

	choice, err := choose(ctx, names, o.mgr.Active())
	if err != nil {
		return Outcome{}, err
	}
	if choice == "" {
		return Outcome{}, ErrCancelled
	}
	return o.RunWithProfile(ctx, choice, paths)
}

func (o *Orchestrator) restore(name string) error {
	if err := o.mgr.Load(name); err != nil {
		return fmt.Errorf("restoring profile %q: %w", name, err)
	}
	if err := o.mgr.SetActive(name); err != nil {
		return fmt.Errorf("restoring profile %q: %w", name, err)
	}
	logger.Debug("profile restored", "profile", name)
	return nil
}

func (o *Orchestrator) run(ctx context.Context, paths []string) (Outcome, error) {
	if o.runner == nil || o.docs == nil {
		return Outcome{}, errors.New("orchestrator has no runner or output configured")
	}

	live := o.mgr.Capture()
	out := Outcome{ID: uuid.NewString(), Profile: o.mgr.Active()}
	log := logger.With("run", out.ID, "profile", out.Profile)

	args, err := flort.BuildArgs(flort.Invocation{
		Live:      live,
		Profile:   out.Profile,
		Selection: flort.Partition(paths),
		Root:      o.root,
	})
	if err != nil {
		return Outcome{}, err
	}
	out.Args = args

	if *live.Debug {
		log.Info("running flort", "args", strings.Join(args, " "))
	} else {
		log.Debug("running flort", "args", strings.Join(args, " "))
	}

	res, err := o.runner.Run(ctx, o.root, args)
	if err != nil {
		log.Debug("flort failed", "error", err)
		return Outcome{}, err
	}
	out.Stderr = res.Stderr

	doc, err := o.docs.Open(res.Stdout)
	if err != nil {
		return Outcome{}, err
	}
	out.Document = doc
	log.Debug("flort finished", "bytes", doc.Size)
	return out, nil
}
