package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/flort-tools/flortctl/internal/logger"
	"github.com/flort-tools/flortctl/internal/settings"
)

// AddEntry appends value to the list at key and saves the active profile.
// A value already present is rejected with ErrDuplicateEntry and nothing is
// written.
func (o *Orchestrator) AddEntry(ctx context.Context, key, value string) error {
	if err := o.Ready(ctx); err != nil {
		return err
	}
	if err := o.addEntry(key, value); err != nil {
		return err
	}
	return o.mgr.SaveActive()
}

// RemoveEntry drops every occurrence of value from the list at key and saves
// the active profile. It returns how many entries were removed.
func (o *Orchestrator) RemoveEntry(ctx context.Context, key, value string) (int, error) {
	if err := o.Ready(ctx); err != nil {
		return 0, err
	}
	n, err := o.removeEntry(key, value)
	if err != nil {
		return 0, err
	}
	return n, o.mgr.SaveActive()
}

// AppendToList is the simplified add. Unlike AddEntry it does not save the
// active profile, so the change is lost on the next profile load.
//
// TODO: decide whether this should auto-save like AddEntry; callers that
// need the edit to stick should use AddEntry.
func (o *Orchestrator) AppendToList(ctx context.Context, key, value string) error {
	if err := o.Ready(ctx); err != nil {
		return err
	}
	if err := o.addEntry(key, value); err != nil {
		return err
	}
	logger.Warn("list changed without saving the active profile", "key", key, "profile", o.mgr.Active())
	return nil
}

// DropFromList is the simplified remove. It does not save the active
// profile.
func (o *Orchestrator) DropFromList(ctx context.Context, key, value string) (int, error) {
	if err := o.Ready(ctx); err != nil {
		return 0, err
	}
	n, err := o.removeEntry(key, value)
	if err != nil {
		return 0, err
	}
	logger.Warn("list changed without saving the active profile", "key", key, "profile", o.mgr.Active())
	return n, nil
}

// List returns the live list at key.
func (o *Orchestrator) List(ctx context.Context, key string) ([]string, error) {
	if err := o.Ready(ctx); err != nil {
		return nil, err
	}
	if err := settings.RequireKind(key, settings.KindList); err != nil {
		return nil, err
	}
	return settings.Strings(o.mgr.Store(), key), nil
}

func (o *Orchestrator) addEntry(key, value string) error {
	if err := settings.RequireKind(key, settings.KindList); err != nil {
		return err
	}
	if strings.TrimSpace(value) == "" {
		return ErrEmptyValue
	}

	current := settings.Strings(o.mgr.Store(), key)
	if slices.Contains(current, value) {
		return fmt.Errorf("%w: %q in %s", ErrDuplicateEntry, value, key)
	}
	if err := o.mgr.Set(key, append(current, value)); err != nil {
		return err
	}
	logger.Debug("list entry added", "key", key, "value", value)
	return nil
}

func (o *Orchestrator) removeEntry(key, value string) (int, error) {
	if err := settings.RequireKind(key, settings.KindList); err != nil {
		return 0, err
	}

	current := settings.Strings(o.mgr.Store(), key)
	kept := slices.DeleteFunc(slices.Clone(current), func(v string) bool { return v == value })
	if err := o.mgr.Set(key, kept); err != nil {
		return 0, err
	}
	removed := len(current) - len(kept)
	logger.Debug("list entry removed", "key", key, "value", value, "count", removed)
	return removed, nil
}
