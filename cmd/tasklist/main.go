package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/Makepad-fr/tasklist/internal/cli"
	"github.com/Makepad-fr/tasklist/internal/config"
	"github.com/Makepad-fr/tasklist/internal/logging"
	"github.com/Makepad-fr/tasklist/internal/store/kv"
	"github.com/Makepad-fr/tasklist/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		ui.Fail(os.Stderr, err.Error())
		return 2
	}

	ui.SetColorMode(cfg.Color)
	ui.SetTheme(cfg.Theme)
	switch {
	case cfg.Color == "never" || cfg.Theme == "mono":
		lipgloss.SetColorProfile(termenv.Ascii)
	case cfg.Color == "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	}

	logOpts := logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Prefix: "tasklist"}
	logger := logging.New(os.Stderr, logOpts)
	uiLogger := logging.Discard()
	if cfg.LogFile != "" {
		var closer io.Closer
		logger, closer, err = logging.Open(cfg.LogFile, logOpts)
		if err != nil {
			ui.Fail(os.Stderr, err.Error())
			return 1
		}
		defer closer.Close()
		uiLogger = logger
	}

	logger.Debug("config loaded", "file", cfg.File, "data_dir", cfg.DataDir, "ephemeral", cfg.Ephemeral)

	// Hand the remaining args to the CLI runner.
	code := cli.Run(fs.Args(), cli.Options{
		Store:    openStore(cfg, logger),
		Theme:    cfg.Theme,
		Logger:   logger,
		UILogger: uiLogger,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}

func openStore(cfg *config.Config, logger *log.Logger) kv.Store {
	if cfg.Ephemeral {
		logger.Info("ephemeral session, tasks will not be saved")
		return kv.NewMemoryStore()
	}
	return kv.NewFileStore(cfg.DataDir)
}
