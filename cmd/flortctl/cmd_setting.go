package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flort-tools/flortctl/internal/settings"
)

var settingCmd = &cobra.Command{
	Use:   "setting",
	Short: "Read and change scalar settings",
}

var settingToggleCmd = &cobra.Command{
	Use:       "toggle <key>",
	Short:     "Flip a boolean setting",
	Args:      cobra.ExactArgs(1),
	ValidArgs: settings.BoolKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := app.orch.Toggle(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		app.report.Success("%s is now %s", args[0], onOff(on))
		return nil
	},
}

var settingEditCmd = &cobra.Command{
	Use:       "edit <key> [value]",
	Short:     "Set maxDepth or archive",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{settings.MaxDepth, settings.Archive},
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		var raw string
		if len(args) == 2 {
			raw = args[1]
		} else {
			if err := settings.RequireKind(key, settings.KindInt, settings.KindString); err != nil {
				return err
			}
			current, err := app.orch.Value(cmd.Context(), key)
			if err != nil {
				return err
			}
			raw, err = promptInput(fmt.Sprintf("Enter value for %s", key), "", fmt.Sprint(current))
			if err != nil {
				return err
			}
		}

		value, err := app.orch.Edit(cmd.Context(), key, raw)
		if err != nil {
			return err
		}
		app.report.Success("%s set to %v", key, value)
		return nil
	},
}

var settingGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show one setting, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := append(append(append([]string{}, settings.ListKeys...), settings.BoolKeys...), settings.MaxDepth, settings.Archive)
		if len(args) == 1 {
			keys = args
		}
		for _, key := range keys {
			v, err := app.orch.Value(cmd.Context(), key)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", key, formatValue(v))
		}
		return nil
	},
}

func init() {
	settingCmd.AddCommand(settingToggleCmd)
	settingCmd.AddCommand(settingEditCmd)
	settingCmd.AddCommand(settingGetCmd)
}

func onOff(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		if len(val) == 0 {
			return "[]"
		}
		return "[" + strings.Join(val, ", ") + "]"
	case bool:
		return onOff(val)
	case string:
		if val == "" {
			return "(none)"
		}
		return val
	default:
		return fmt.Sprint(val)
	}
}
