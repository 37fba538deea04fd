package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flort-tools/flortctl/internal/logger"
)

var doctorCmd = &cobra.Command{
	Use:         "doctor",
	Short:       "Check that flort is installed and show where flortctl keeps its files",
	Annotations: map[string]string{readOnlyAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Workspace:          %s\n", app.workspace)
		fmt.Printf("Workspace settings: %s\n", app.store.WorkspaceFile())
		fmt.Printf("Output directory:   %s\n", app.output.Dir)
		if app.cfg.Logging.ToFile {
			if p, err := logger.GetLogFilePath(); err == nil {
				fmt.Printf("Log file:           %s\n", p)
			}
		}

		v, err := app.runner.Version(cmd.Context())
		if err != nil {
			return err
		}
		app.report.Success("flort available: %s", v)
		return nil
	},
}
