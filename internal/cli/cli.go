package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/specialistvlad/nodebridge/internal/app"
	"github.com/specialistvlad/nodebridge/internal/encoding"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// varsFlag collects repeated -var name=value flags.
type varsFlag map[string]string

func (v varsFlag) String() string {
	parts := make([]string, 0, len(v))
	for _, k := range slices.Sorted(maps.Keys(v)) {
		parts = append(parts, k+"="+v[k])
	}
	return strings.Join(parts, ",")
}

func (v varsFlag) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	v[name] = value
	return nil
}

// Parse processes command-line arguments. Defaults come from NODEBRIDGE_*
// variables in environ (the process environment when nil). It returns a
// populated Config, a boolean indicating if the program should exit cleanly,
// or an ExitError.
func Parse(args []string, output io.Writer, environ map[string]string) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	defaults, err := app.LoadEnv(environ)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet := flag.NewFlagSet("nodebridge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
nodebridge - Inspect runtime content through typed asset views.

Usage:
  nodebridge [options] FILE...

Arguments:
  FILE
    A .hcl or .lua content file, or a directory searched for them.

Options:
`)
		flagSet.PrintDefaults()
		fmt.Fprintf(output, "\nEvery option can also be set with a %s* environment variable.\n", app.EnvPrefix)
	}

	vars := varsFlag{}
	maps.Copy(vars, defaults.Vars)

	pathFlag := flagSet.String("path", defaults.Path, "Address of the asset wrapper inside each document, e.g. 'screens[0]'. Empty is the root.")
	formatFlag := flagSet.String("format", defaults.Format, fmt.Sprintf("Output format. Options: %s.", strings.Join(encoding.FormatNames(), ", ")))
	flagSet.Var(vars, "var", "Set an HCL variable as name=value. May be repeated.")
	workersFlag := flagSet.Int("workers", defaults.Workers, "Number of files inspected concurrently.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	publishURLFlag := flagSet.String("publish-url", defaults.Publish.URL, "socket.io endpoint to publish documents to. Empty disables publishing.")
	publishNSFlag := flagSet.String("publish-namespace", defaults.Publish.Namespace, "socket.io namespace.")
	publishEventFlag := flagSet.String("publish-event", defaults.Publish.Event, "Event emitted with each document.")
	publishAckFlag := flagSet.String("publish-ack-event", defaults.Publish.AckEvent, "Event awaited after each emit. Empty skips waiting.")
	publishTimeoutFlag := flagSet.Duration("publish-timeout", defaults.Publish.Timeout, "Timeout for each publish.")
	insecureFlag := flagSet.Bool("insecure-skip-verify", defaults.Publish.InsecureSkipVerify, "Skip TLS certificate verification when publishing.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := defaults.Paths
	if flagSet.NArg() > 0 {
		paths = flagSet.Args()
	}
	slog.Debug("Content paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No content path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	var cfgVars map[string]string
	if len(vars) > 0 {
		cfgVars = vars
	}

	config, err := app.NewConfig(app.Config{
		Paths:     paths,
		Path:      *pathFlag,
		Format:    strings.ToLower(*formatFlag),
		Vars:      cfgVars,
		Workers:   *workersFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		Publish: app.PublishConfig{
			URL:                *publishURLFlag,
			Namespace:          *publishNSFlag,
			Event:              *publishEventFlag,
			AckEvent:           *publishAckFlag,
			Timeout:            *publishTimeoutFlag,
			InsecureSkipVerify: *insecureFlag,
		},
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
