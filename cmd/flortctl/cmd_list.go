package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flort-tools/flortctl/internal/settings"
)

// listKind describes one list-valued setting exposed as its own command.
type listKind struct {
	use         string
	key         string
	noun        string
	placeholder string
}

var listKinds = []listKind{
	{"pattern", settings.Patterns, "pattern", "*.md"},
	{"extension", settings.Extensions, "extension", ".py"},
	{"manual-file", settings.ManualFiles, "file", "src/main.go"},
	{"exclude-pattern", settings.ExcludePatterns, "exclude pattern", "*.tmp"},
	{"exclude-extension", settings.ExcludeExtensions, "exclude extension", ".tmp"},
	{"ignore-dir", settings.IgnoreDirs, "directory to exclude", "node_modules"},
}

func newListCommand(kind listKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind.use,
		Short: fmt.Sprintf("Manage the %s list", kind.key),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [value]",
		Short: fmt.Sprintf("Add a %s", kind.noun),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := argOrPrompt(args, fmt.Sprintf("Enter %s", kind.noun), kind.placeholder)
			if err != nil {
				return err
			}
			if err := app.orch.AddEntry(cmd.Context(), kind.key, value); err != nil {
				return err
			}
			app.report.Success("Added %q to %s", value, kind.key)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <value>",
		Short: fmt.Sprintf("Remove a %s", kind.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.orch.RemoveEntry(cmd.Context(), kind.key, args[0])
			if err != nil {
				return err
			}
			if n == 0 {
				app.report.Info("%q is not in %s", args[0], kind.key)
				return nil
			}
			app.report.Success("Removed %q from %s", args[0], kind.key)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("Show the %s list", kind.key),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printList(cmd, kind.key)
		},
	})

	return cmd
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Edit any list setting by key",
	Long: "Edit any list setting by key. append and drop change the live settings only; " +
		"unlike the per-list commands they do not save into the active profile.",
}

var listShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Show a list setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printList(cmd, args[0])
	},
}

var listAppendCmd = &cobra.Command{
	Use:   "append <key> [value]",
	Short: "Append to a list setting without saving the active profile",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value, err := argOrPrompt(args[1:], fmt.Sprintf("Enter value for %s", key), "")
		if err != nil {
			return err
		}
		if err := app.orch.AppendToList(cmd.Context(), key, value); err != nil {
			return err
		}
		app.report.Success("Added %q to %s", value, key)
		app.report.Warn("The active profile was not updated; run `flortctl profile save` to keep this change.")
		return nil
	},
}

var listDropCmd = &cobra.Command{
	Use:   "drop <key> <value>",
	Short: "Remove from a list setting without saving the active profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := app.orch.DropFromList(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		app.report.Success("Removed %d entr%s from %s", n, plural(n, "y", "ies"), args[0])
		app.report.Warn("The active profile was not updated; run `flortctl profile save` to keep this change.")
		return nil
	},
}

func init() {
	listCmd.AddCommand(listShowCmd)
	listCmd.AddCommand(listAppendCmd)
	listCmd.AddCommand(listDropCmd)
}

func printList(cmd *cobra.Command, key string) error {
	values, err := app.orch.List(cmd.Context(), key)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		fmt.Printf("%s: (none)\n", key)
		return nil
	}
	fmt.Printf("%s:\n", key)
	for _, v := range values {
		fmt.Printf("  - %s\n", v)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
