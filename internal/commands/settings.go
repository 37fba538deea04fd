package commands

import (
	"context"
	"fmt"

	"github.com/flort-tools/flortctl/internal/logger"
	"github.com/flort-tools/flortctl/internal/settings"
)

// Toggle flips the boolean setting at key, saves the active profile and
// returns the new value.
func (o *Orchestrator) Toggle(ctx context.Context, key string) (bool, error) {
	if err := o.Ready(ctx); err != nil {
		return false, err
	}
	if err := settings.RequireKind(key, settings.KindBool); err != nil {
		return false, err
	}

	next := !settings.Bool(o.mgr.Store(), key, false)
	if err := o.mgr.Set(key, next); err != nil {
		return false, err
	}
	logger.Debug("setting toggled", "key", key, "value", next)
	return next, o.mgr.SaveActive()
}

// Edit stores a user-entered value at key and saves the active profile.
// Input that parses fully as a number is stored as a number, anything else
// as a string. maxDepth only accepts non-negative integers.
func (o *Orchestrator) Edit(ctx context.Context, key, raw string) (any, error) {
	if err := o.Ready(ctx); err != nil {
		return nil, err
	}
	if err := settings.RequireKind(key, settings.KindInt, settings.KindString); err != nil {
		return nil, err
	}

	value := settings.ParseValue(raw)
	if key == settings.MaxDepth {
		n, ok := value.(int)
		if !ok || n < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrInvalidValue, key, raw)
		}
	}

	if err := o.mgr.Set(key, value); err != nil {
		return nil, err
	}
	logger.Debug("setting edited", "key", key, "value", value)
	return value, o.mgr.SaveActive()
}

// Value returns the live value at key with its documented default.
func (o *Orchestrator) Value(ctx context.Context, key string) (any, error) {
	if err := o.Ready(ctx); err != nil {
		return nil, err
	}
	s := o.mgr.Store()
	switch settings.KindOf(key) {
	case settings.KindList:
		return settings.Strings(s, key), nil
	case settings.KindBool:
		return settings.Bool(s, key, false), nil
	case settings.KindInt:
		return settings.Int(s, key, 0), nil
	case settings.KindString:
		return settings.String(s, key, ""), nil
	default:
		return nil, settings.RequireKind(key, settings.KindList, settings.KindBool, settings.KindInt, settings.KindString)
	}
}
