package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flort-tools/flortctl/internal/commands"
)

var (
	runProfile string
	runPick    bool
	runStdout  bool
	runCopy    bool
)

var runCmd = &cobra.Command{
	Use:   "run [paths...]",
	Short: "Run flort over the selected paths",
	Long: "Run flort with the live settings over the given files and directories " +
		"(the workspace root when none are given). With --profile or --pick the run uses " +
		"that profile once and the previously active profile is restored afterwards.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if runProfile != "" && runPick {
			return fmt.Errorf("--profile and --pick are mutually exclusive")
		}
		if runStdout {
			app.output.Stream = os.Stdout
		}
		if runCopy {
			app.output.Clipboard = true
		}

		ctx := cmd.Context()
		var (
			out commands.Outcome
			err error
		)
		switch {
		case runProfile != "":
			out, err = app.orch.RunWithProfile(ctx, runProfile, args)
		case runPick:
			out, err = app.orch.RunWithChoice(ctx, args, chooseProfile)
		default:
			out, err = app.orch.Run(ctx, args)
		}
		if err != nil {
			return err
		}

		if stderr := strings.TrimSpace(out.Stderr); stderr != "" {
			app.report.Warn("Flort warning: %s", stderr)
		}
		if app.output.Stream == nil {
			app.report.Success("%s", out.Document.Summary())
		} else if out.Document.Copied {
			fmt.Fprintln(os.Stderr, out.Document.Summary())
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runProfile, "profile", "p", "", "Run once with this profile, then restore the active one")
	runCmd.Flags().BoolVar(&runPick, "pick", false, "Choose the profile to run with")
	runCmd.Flags().BoolVar(&runStdout, "stdout", false, "Write flort output to stdout instead of a document")
	runCmd.Flags().BoolVar(&runCopy, "copy", false, "Also copy flort output to the clipboard")
}
