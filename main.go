package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/filetug/dutug/pkg/dutug"
	"github.com/filetug/dutug/pkg/dutug/dusettings"
	"github.com/filetug/dutug/pkg/logging"
	"github.com/filetug/dutug/pkg/profiling"
	"github.com/filetug/dutug/pkg/scanner"
	"github.com/filetug/dutug/pkg/sizetree"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

var (
	osExit                 = os.Exit
	stderr       io.Writer = os.Stderr
	loadSettings           = dusettings.Load
	saveSettings           = dusettings.Save
	scan                   = dutug.ScanWithProgress
)

func main() {
	osExit(realMain(os.Args[1:]))
}

type options struct {
	settings     dusettings.Settings
	root         string
	saveSettings bool
	cpuProfile   string
	memProfile   string
}

// parseArgs reads flags on top of the settings file values. The path may
// come before or after the flags.
func parseArgs(args []string, settings dusettings.Settings) (options, error) {
	o := options{settings: settings, root: "."}
	fs := flag.NewFlagSet("dutug", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: dutug [flags] [path]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.BoolVar(&o.settings.FollowSymlinks, "follow-symlinks", settings.FollowSymlinks, "descend into symbolic links to directories")
	fs.IntVar(&o.settings.Workers, "workers", settings.Workers, "concurrent directory scans, 0 for one per CPU")
	fs.StringVar(&o.settings.Sort, "sort", settings.Sort, "initial sort order: size or name")
	fs.StringVar(&o.settings.LogFile, "log", settings.LogFile, "write logs to `file`")
	fs.StringVar(&o.settings.LogLevel, "log-level", settings.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&o.settings.LogFormat, "log-format", settings.LogFormat, "log format: json or console")
	fs.BoolVar(&o.saveSettings, "save-settings", false, "save the effective settings to "+dusettings.FilePath())
	fs.StringVar(&o.cpuProfile, "cpuprofile", "", "write cpu profile of the scan to `file`")
	fs.StringVar(&o.memProfile, "memprofile", "", "write memory profile after the scan to `file`")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		o.root = fs.Arg(0)
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return o, err
		}
		if fs.NArg() > 0 {
			return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
		}
	}
	if o.settings.Workers < 0 {
		return o, fmt.Errorf("invalid -workers %d: must not be negative", o.settings.Workers)
	}
	return o, nil
}

func realMain(args []string) int {
	settings, err := loadSettings()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "dutug: %v\n", err)
	}
	o, err := parseArgs(args, settings)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "dutug: %v\n", err)
		return 2
	}
	mode, err := o.settings.SortMode()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "dutug: %v\n", err)
		return 2
	}
	logger, err := logging.New(logging.Config{
		Level:      o.settings.LogLevel,
		Format:     o.settings.LogFormat,
		OutputPath: o.settings.LogFile,
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "dutug: %v\n", err)
		return 2
	}
	defer func() {
		_ = logger.Sync()
	}()

	if o.saveSettings {
		if err = saveSettings(o.settings); err != nil {
			_, _ = fmt.Fprintf(stderr, "dutug: %v\n", err)
			return 1
		}
		logger.Info("settings saved", zap.String("path", dusettings.FilePath()))
	}

	result, err := scanRoot(o, logger)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			_, _ = fmt.Fprintln(stderr, "dutug: scan cancelled")
			return 130
		}
		_, _ = fmt.Fprintf(stderr, "dutug: %v\n", err)
		return 1
	}

	if err = run(newApp(result, mode)); err != nil {
		logger.Error("terminal UI failed", zap.Error(err))
		_, _ = fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}

func scanRoot(o options, logger *zap.Logger) (*scanner.Result, error) {
	if o.cpuProfile != "" {
		stop, err := profiling.StartCPUProfile(o.cpuProfile)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := stop(); err != nil {
				logger.Warn("failed to close CPU profile", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := scanner.Config{FollowSymlinks: o.settings.FollowSymlinks, Workers: o.settings.Workers}
	result, err := scan(ctx, stderr, o.root, cfg, scanner.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	if o.memProfile != "" {
		if err = profiling.WriteHeapProfile(o.memProfile); err != nil {
			logger.Warn("memory profile not written", zap.Error(err))
		}
	}
	return result, nil
}

var setupApp = dutug.SetupApp

var newApp = func(result *scanner.Result, mode sizetree.SortMode) application {
	app := tview.NewApplication()
	setupApp(app, result, mode)
	return app
}

type application interface{ Run() error }

var run = func(app application) error {
	return app.Run()
}
