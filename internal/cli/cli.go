package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/specialistvlad/flowgraph/internal/app"
)

// ExitError carries the process exit code for a usage failure.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

var (
	logFormats = []string{"text", "json"}
	logLevels  = []string{"debug", "info", "warn", "error"}
)

// options mirrors the command line before it becomes an app.Config.
type options struct {
	flow, flowShort string
	mode            string
	logFormat       string
	logLevel        string
	workers         int
}

func (o *options) bind(fs *flag.FlagSet) {
	fs.StringVar(&o.flow, "flow", "", "Flow `file` or directory.")
	fs.StringVar(&o.flowShort, "f", "", "Shorthand for -flow.")
	fs.StringVar(&o.mode, "mode", string(app.ModeOrder), fmt.Sprintf("Report to produce per flow, one of %v.", app.Modes))
	fs.StringVar(&o.logFormat, "log-format", "json", fmt.Sprintf("Log encoding, one of %v.", logFormats))
	fs.StringVar(&o.logLevel, "log-level", "info", fmt.Sprintf("Minimum log level, one of %v.", logLevels))
	fs.IntVar(&o.workers, "workers", 10, "Vertices built at once in build mode; 0 removes the limit.")
}

// path picks the flow location: -flow, then -f, then the first argument.
func (o *options) path(fs *flag.FlagSet) string {
	for _, p := range []string{o.flow, o.flowShort, fs.Arg(0)} {
		if p != "" {
			return p
		}
	}
	return ""
}

// Parse processes command-line arguments. It returns the app configuration,
// whether the program should stop without running (help or no flow given),
// or an *ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	var opts options
	fs := flag.NewFlagSet("flowgraph", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: flowgraph [options] FLOW_PATH\n\n"+
			"Loads flow files (%s) and prints their build order.\n\nOptions:\n",
			strings.Join([]string{".json", ".yaml", ".yml", ".hcl"}, ", "))
		fs.PrintDefaults()
	}
	opts.bind(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err)
	}

	path := opts.path(fs)
	if path == "" {
		fs.Usage()
		return nil, true, nil
	}

	format, level := strings.ToLower(opts.logFormat), strings.ToLower(opts.logLevel)
	if !slices.Contains(logFormats, format) {
		return nil, false, usageError("invalid log-format %q: must be one of %v", opts.logFormat, logFormats)
	}
	if !slices.Contains(logLevels, level) {
		return nil, false, usageError("invalid log-level %q: must be one of %v", opts.logLevel, logLevels)
	}

	cfg, err := app.NewConfig(app.Config{
		FlowPath:    path,
		Mode:        app.Mode(strings.ToLower(opts.mode)),
		LogFormat:   format,
		LogLevel:    level,
		WorkerCount: opts.workers,
	})
	if err != nil {
		return nil, false, usageError("%s", err)
	}

	slog.Debug("Command line parsed.", "flow", cfg.FlowPath, "mode", cfg.Mode)
	return cfg, false, nil
}
