package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/cartograph/internal/app"
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

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// pathList collects repeatable -f/--definition flags in order.
type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ", ") }

func (p *pathList) Set(value string) error {
	*p = append(*p, value)
	return nil
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("cartograph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
cartograph - drive a map renderer from declarative definition files.

Usage:
  cartograph -f definition.hcl [-f other.hcl ...] [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	var definitions pathList
	flagSet.Var(&definitions, "f", "Definition file (repeatable).")
	flagSet.Var(&definitions, "definition", "Definition file (repeatable, alias of -f).")

	rendererFlag := flagSet.String("renderer", "", "Path to the renderer binary.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Log commands without executing anything.")
	sheetOnlyFlag := flagSet.Bool("sheet-only", false, "Only regenerate markers and upload the marker file.")

	skipMapFlag := flagSet.Bool("skip-map", false, "Skip map generation.")
	skipMarkersFlag := flagSet.Bool("skip-markers", false, "Skip player marker generation.")
	skipRemoteFlag := flagSet.Bool("skip-remote", false, "Skip remote upload.")
	skipWebhookFlag := flagSet.Bool("skip-webhook", false, "Skip webhook push.")

	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}

	if len(definitions) == 0 {
		flagSet.Usage()
		return nil, false, usageError("at least one -f/--definition is required")
	}
	for _, path := range definitions {
		if _, err := os.Stat(path); err != nil {
			return nil, false, usageError("definition file %s: %v", path, err)
		}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	cfg := app.Config{
		Definitions: definitions,
		Renderer:    *rendererFlag,
		DryRun:      *dryRunFlag,
		SheetOnly:   *sheetOnlyFlag,
		SkipMap:     *skipMapFlag,
		SkipMarkers: *skipMarkersFlag,
		SkipRemote:  *skipRemoteFlag,
		SkipWebhook: *skipWebhookFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	}

	if cfg.SheetOnly {
		if cfg.SkipMarkers {
			return nil, false, usageError("--skip-markers breaks --sheet-only")
		}
		if cfg.SkipMap {
			slog.Warn("--skip-map is implied by --sheet-only")
		}
		if cfg.SkipWebhook {
			slog.Warn("--skip-webhook is implied by --sheet-only")
		}
		if cfg.SkipRemote {
			slog.Warn("--skip-remote works against --sheet-only; the marker file will not be uploaded")
		}
		cfg.SkipMap = true
		cfg.SkipWebhook = true
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}
	return config, false, nil
}
