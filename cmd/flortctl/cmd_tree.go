package main

import (
	"github.com/spf13/cobra"

	"github.com/flort-tools/flortctl/internal/paths"
)

var treeWatch bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show profiles and the live settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if treeWatch {
			return app.view.Watch(cmd.Context(), paths.WorkspaceSettingsFile(app.workspace))
		}
		return app.view.Draw()
	},
}

func init() {
	treeCmd.Flags().BoolVar(&treeWatch, "watch", false, "Redraw whenever the workspace settings change")
}
