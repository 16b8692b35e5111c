package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/bbdeps/internal/app"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("bbdeps", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
bbdeps - Builder dependency graph and minimal trigger order for CI.

Usage:
  bbdeps [options] [MANIFEST_DIR]

Arguments:
  MANIFEST_DIR
    Directory holding <builder>.in and <builder>.out package manifests.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL workspace file or directory.")
	cFlag := flagSet.String("c", "", "Path to an HCL workspace file or directory (shorthand).")
	manifestsFlag := flagSet.String("manifests", "", "Path to a manifest directory.")
	mFlag := flagSet.String("m", "", "Path to a manifest directory (shorthand).")
	finishedFlag := flagSet.String("finished", "", "Comma separated builders that just finished; prints what to trigger next.")
	dumpFlag := flagSet.Bool("dump", true, "Print the dependency graph, build order and trigger order.")
	listenPortFlag := flagSet.Int("listen-port", 0, "Port for the HTTP query server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	configPath := firstNonEmpty(*configFlag, *cFlag)
	manifestDir := firstNonEmpty(*manifestsFlag, *mFlag)
	if manifestDir == "" && flagSet.NArg() > 0 {
		manifestDir = flagSet.Arg(0)
	}
	slog.Debug("Input paths determined.", "config", configPath, "manifests", manifestDir)

	if configPath == "" && manifestDir == "" {
		slog.Debug("No input provided, printing usage and exiting.")
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

	config, err := app.NewConfig(app.Config{
		ConfigPath:  configPath,
		ManifestDir: manifestDir,
		Finished:    splitNames(*finishedFlag),
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		ListenPort:  *listenPortFlag,
		Dump:        *dumpFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// splitNames splits a comma separated list, dropping blanks.
func splitNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}
