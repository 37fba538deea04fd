package commands

import (
	"context"
	"fmt"

	"github.com/flort-tools/flortctl/internal/logger"
	"github.com/flort-tools/flortctl/internal/profiles"
)

// SetActive switches durably to name: the outgoing profile is saved, name is
// loaded into the live settings and becomes active. A missing profile fails
// with profiles.ErrNotFound before anything is written.
func (o *Orchestrator) SetActive(ctx context.Context, name string) error {
	if err := o.Ready(ctx); err != nil {
		return err
	}
	if !o.mgr.Exists(name) {
		return fmt.Errorf("switching profile: %w: %q", profiles.ErrNotFound, name)
	}

	current := o.mgr.Active()
	if current != "" && current != name {
		if _, err := o.mgr.SaveAs(current); err != nil {
			return err
		}
	}
	if err := o.mgr.Load(name); err != nil {
		return fmt.Errorf("switching profile: %w", err)
	}
	if err := o.mgr.SetActive(name); err != nil {
		return err
	}
	logger.Info("profile activated", "profile", name, "previous", current)
	return nil
}

// AddProfile saves the live settings as a new profile and makes it active.
func (o *Orchestrator) AddProfile(ctx context.Context, name string) (profiles.Bundle, error) {
	if err := o.Ready(ctx); err != nil {
		return profiles.Bundle{}, err
	}
	b, err := o.mgr.Create(name, true)
	if err != nil {
		return profiles.Bundle{}, err
	}
	if err := o.mgr.SetActive(name); err != nil {
		return profiles.Bundle{}, err
	}
	logger.Info("profile added", "profile", name)
	return b, nil
}

// CreateEmptyProfile stores a profile with every setting at its default. The
// active profile does not change.
func (o *Orchestrator) CreateEmptyProfile(ctx context.Context, name string) (profiles.Bundle, error) {
	if err := o.Ready(ctx); err != nil {
		return profiles.Bundle{}, err
	}
	return o.mgr.Create(name, false)
}

// Profiles returns the profile names and the active one.
func (o *Orchestrator) Profiles(ctx context.Context) ([]string, string, error) {
	if err := o.Ready(ctx); err != nil {
		return nil, "", err
	}
	return o.mgr.Names(), o.mgr.Active(), nil
}

// Profile returns the stored bundle for name.
func (o *Orchestrator) Profile(ctx context.Context, name string) (profiles.Bundle, error) {
	if err := o.Ready(ctx); err != nil {
		return profiles.Bundle{}, err
	}
	return o.mgr.Get(name)
}
