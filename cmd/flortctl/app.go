package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/flort-tools/flortctl/internal/commands"
	"github.com/flort-tools/flortctl/internal/config"
	"github.com/flort-tools/flortctl/internal/flort"
	"github.com/flort-tools/flortctl/internal/logger"
	"github.com/flort-tools/flortctl/internal/notify"
	"github.com/flort-tools/flortctl/internal/output"
	"github.com/flort-tools/flortctl/internal/paths"
	"github.com/flort-tools/flortctl/internal/profiles"
	"github.com/flort-tools/flortctl/internal/settings"
	"github.com/flort-tools/flortctl/internal/tree"
)

// application holds everything a command needs, built once per invocation.
type application struct {
	cfg       config.Config
	workspace string
	store     *settings.FileStore
	view      *tree.View
	orch      *commands.Orchestrator
	runner    flort.ExecRunner
	output    *output.Writer
	report    *notify.Reporter
}

var app *application

func setup(cmd *cobra.Command, args []string) error {
	cfgFile := configFlag
	if cfgFile == "" {
		cfgFile = paths.ConfigFile()
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevelFlag != "" {
		cfg.Logging.Level = logLevelFlag
	}
	if err := logger.Init(logger.Options{
		Level:  cfg.Logging.Level,
		JSON:   cfg.Logging.JSON,
		ToFile: cfg.Logging.ToFile,
	}); err != nil {
		return err
	}

	workspace, err := resolveWorkspace(workspaceFlag)
	if err != nil {
		return err
	}

	store := settings.NewFileStore(paths.WorkspaceSettingsFile(workspace), paths.UserSettingsFile())
	view := tree.New(os.Stdout, tree.Options{
		Color:    isTerminal(os.Stdout),
		Debounce: cfg.Tree.Debounce,
	})
	mgr := profiles.NewManager(store, view)
	view.Bind(mgr)

	outDir := cfg.Output.Dir
	if outDir == "" {
		outDir = paths.OutputDir(workspace)
	}
	writer := output.NewWriter(outDir)
	writer.Clipboard = cfg.Output.Clipboard
	if cfg.Output.Stdout {
		writer.Stream = os.Stdout
	}

	runner := flort.ExecRunner{Path: cfg.Tool.Path, MaxOutput: cfg.Tool.MaxOutputBytes}
	orch := commands.New(mgr, commands.Options{
		Root:   workspace,
		Runner: runner,
		Output: writer,
	})

	app = &application{
		cfg:       cfg,
		workspace: workspace,
		store:     store,
		view:      view,
		orch:      orch,
		runner:    runner,
		output:    writer,
		report:    notify.NewReporter(os.Stdout),
	}
	logger.Debug("flortctl started", "workspace", workspace, "command", cmd.CommandPath())

	if readOnly(cmd) {
		return nil
	}
	if err := orch.Ready(cmd.Context()); err != nil {
		return err
	}
	if orch.Seeded() {
		app.report.Info("Created default flort profiles in %s", store.WorkspaceFile())
	}
	return nil
}

// readOnlyAnnotation marks commands that never touch the settings store, so
// setup skips default-profile seeding for them and their subcommands.
const readOnlyAnnotation = "flortctl/read-only"

func readOnly(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[readOnlyAnnotation] == "true" {
			return true
		}
	}
	return false
}

func teardown() {
	if app != nil && showTreeFlag {
		if err := app.view.Flush(); err != nil {
			logger.Warn("drawing tree failed", "error", err)
		}
	}
	if err := logger.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "closing log file: %v\n", err)
	}
}

func resolveWorkspace(flag string) (string, error) {
	dir := flag
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determining workspace: %w", err)
		}
		dir = wd
		if found, err := paths.FindWorkspace(wd); err == nil {
			dir = found
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving workspace %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("workspace %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("workspace %s is not a directory", abs)
	}
	return abs, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
