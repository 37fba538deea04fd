package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/flort-tools/flortctl/internal/commands"
)

// errNoTerminal is returned when a prompt is needed but stdin is not a TTY.
var errNoTerminal = errors.New("value required (no terminal to prompt on)")

// promptInput asks for one line of text. A dismissed prompt returns
// commands.ErrCancelled.
func promptInput(title, placeholder, initial string) (string, error) {
	if !isTerminal(os.Stdin) {
		return "", errNoTerminal
	}
	value := initial
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(&value),
		),
	).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", commands.ErrCancelled
		}
		return "", err
	}
	if value == "" {
		return "", commands.ErrCancelled
	}
	return value, nil
}

// argOrPrompt returns args[0] or asks for it.
func argOrPrompt(args []string, title, placeholder string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return promptInput(title, placeholder, "")
}

// chooseProfile is the run --pick chooser.
func chooseProfile(ctx context.Context, names []string, active string) (string, error) {
	if !isTerminal(os.Stdin) {
		return "", errNoTerminal
	}
	options := make([]huh.Option[string], 0, len(names))
	for _, name := range names {
		label := name
		if name == active {
			label = fmt.Sprintf("%s (current)", name)
		}
		options = append(options, huh.NewOption(label, name))
	}

	choice := active
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose profile to run flort with...").
				Options(options...).
				Value(&choice),
		),
	).RunWithContext(ctx)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", err
	}
	return choice, nil
}
