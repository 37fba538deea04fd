package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flort-tools/flortctl/internal/profiles"
	"github.com/flort-tools/flortctl/internal/settings"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage flort profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, active, err := app.orch.Profiles(cmd.Context())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No profiles configured.")
			return nil
		}

		for _, name := range names {
			b, err := app.orch.Profile(cmd.Context(), name)
			if err != nil {
				return err
			}
			if name == active {
				fmt.Printf("* %s: %s\n", name, summary(b))
			} else {
				fmt.Printf("  %s: %s\n", name, summary(b))
			}
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a stored profile (default: the active one)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, active, err := app.orch.Profiles(cmd.Context())
		if err != nil {
			return err
		}
		name := active
		if len(args) == 1 {
			name = args[0]
		}
		if name == "" {
			fmt.Println("No profile active.")
			return nil
		}

		b, err := app.orch.Profile(cmd.Context(), name)
		if err != nil {
			return err
		}
		if name == active {
			fmt.Printf("Profile: %s (active)\n", name)
		} else {
			fmt.Printf("Profile: %s\n", name)
		}
		printBundle(b)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set [name]",
	Short: "Switch to a profile, saving the current one first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		} else {
			names, active, err := app.orch.Profiles(cmd.Context())
			if err != nil {
				return err
			}
			name, err = chooseProfile(cmd.Context(), names, active)
			if err != nil {
				return err
			}
			if name == "" {
				return nil
			}
		}

		if err := app.orch.SetActive(cmd.Context(), name); err != nil {
			return err
		}
		app.report.Success("Active profile set to %q", name)
		return nil
	},
}

var profileAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Save the current settings as a new profile and activate it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := argOrPrompt(args, "Enter profile name", "")
		if err != nil {
			return err
		}
		if _, err := app.orch.AddProfile(cmd.Context(), name); err != nil {
			return err
		}
		app.report.Success("Profile %q created from current settings", name)
		return nil
	},
}

var profileCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a profile with every setting at its default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := argOrPrompt(args, "Enter profile name", "")
		if err != nil {
			return err
		}
		if _, err := app.orch.CreateEmptyProfile(cmd.Context(), name); err != nil {
			return err
		}
		app.report.Success("Empty profile %q created", name)
		return nil
	},
}

var profileSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current settings into the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.orch.Ready(cmd.Context()); err != nil {
			return err
		}
		mgr := app.orch.Manager()
		if mgr.Active() == "" {
			app.report.Info("No profile active; nothing saved.")
			return nil
		}
		if err := mgr.SaveActive(); err != nil {
			return err
		}
		app.report.Success("Saved current settings to %q", mgr.Active())
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileSaveCmd)
}

// summary is a one-line description of a bundle.
func summary(b profiles.Bundle) string {
	var parts []string
	if len(b.Patterns) > 0 {
		parts = append(parts, "patterns "+strings.Join(b.Patterns, ","))
	}
	if len(b.Extensions) > 0 {
		parts = append(parts, "ext "+strings.Join(b.Extensions, ","))
	}
	if len(b.ManualFiles) > 0 {
		parts = append(parts, fmt.Sprintf("%d manual file(s)", len(b.ManualFiles)))
	}

	var on []string
	for key, v := range b.Scalars() {
		if set, ok := v.(bool); ok && set {
			on = append(on, key)
		}
	}
	sort.Strings(on)
	if len(on) > 0 {
		parts = append(parts, "on: "+strings.Join(on, ","))
	}
	if len(parts) == 0 {
		return "(defaults)"
	}
	return strings.Join(parts, "; ")
}

func printBundle(b profiles.Bundle) {
	lists := b.Lists()
	fmt.Println("  Lists:")
	for _, key := range settings.ListKeys {
		vals := lists[key]
		if len(vals) == 0 {
			fmt.Printf("    %-18s (none)\n", key+":")
			continue
		}
		fmt.Printf("    %-18s %s\n", key+":", strings.Join(vals, ", "))
	}

	scalars := b.Scalars()
	keys := make([]string, 0, len(scalars))
	for k := range scalars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Println("  Settings:")
	if len(keys) == 0 {
		fmt.Println("    (none defined)")
	}
	for _, k := range keys {
		fmt.Printf("    %-22s %v\n", k+":", scalars[k])
	}
}
