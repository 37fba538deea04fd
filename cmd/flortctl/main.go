package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/flort-tools/flortctl/internal/notify"
)

var version = "0.1.0"

var (
	workspaceFlag string
	configFlag    string
	logLevelFlag  string
	showTreeFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "flortctl",
	Short: "Manage flort profiles and run flort over a workspace",
	Long: "flortctl keeps named profiles of flort file-selection settings in a workspace " +
		"settings file and runs flort with the active settings, saving its output as a read-only document.",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show the settings tree
		return treeCmd.RunE(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Show version",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flortctl %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "flortctl config file (default: ~/.config/flortctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&showTreeFlag, "tree", false, "Print the settings tree after a change")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(settingCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(settingsCmd)

	for _, kind := range listKinds {
		rootCmd.AddCommand(newListCommand(kind))
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	teardown()
	if err == nil {
		return
	}

	if notify.NewReporter(os.Stderr).Report(err) == notify.SeverityError {
		os.Exit(1)
	}
}
