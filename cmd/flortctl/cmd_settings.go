package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flort-tools/flortctl/internal/paths"
)

var settingsCmd = &cobra.Command{
	Use:         "settings",
	Short:       "Locate or edit the settings files",
	Annotations: map[string]string{readOnlyAnnotation: "true"},
}

var settingsUserScope bool

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(settingsFile())
		return nil
	},
}

var settingsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the settings file in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		editor := os.Getenv("VISUAL")
		if editor == "" {
			editor = os.Getenv("EDITOR")
		}

		file := settingsFile()
		c := editorCommand(cmd.Context(), editor, file)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("running %s: %w", c.Args[0], err)
		}
		app.view.Refresh()
		return nil
	},
}

func init() {
	settingsCmd.PersistentFlags().BoolVar(&settingsUserScope, "user", false, "Use the user settings file instead of the workspace one")
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsEditCmd)
}

// editorCommand builds the editor invocation for file. editor may carry
// arguments, as in "code --wait"; an empty value falls back to vi.
func editorCommand(ctx context.Context, editor, file string) *exec.Cmd {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		parts = []string{"vi"}
	}
	return exec.CommandContext(ctx, parts[0], append(parts[1:], file)...)
}

func settingsFile() string {
	if settingsUserScope {
		return paths.UserSettingsFile()
	}
	return paths.WorkspaceSettingsFile(app.workspace)
}
