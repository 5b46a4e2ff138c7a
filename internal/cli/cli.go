package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/blueprintgo/internal/app"
)

// Environment variables providing flag defaults. They are read from the
// process environment first and then from the env file.
const (
	EnvFile          = "BLUEPRINT_ENV_FILE"
	EnvLogLevel      = "BLUEPRINT_LOG_LEVEL"
	EnvLogFormat     = "BLUEPRINT_LOG_FORMAT"
	EnvRoot          = "BLUEPRINT_ROOT"
	EnvEntry         = "BLUEPRINT_ENTRY"
	EnvMaxDepth      = "BLUEPRINT_MAX_DEPTH"
	EnvTraceEndpoint = "BLUEPRINT_TRACE_ENDPOINT"
)

const defaultEnvFile = ".env"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	env, err := loadEnv()
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet := flag.NewFlagSet("blueprintgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
blueprintgo - Runs blueprint graphs authored in HCL.

Usage:
  blueprintgo [options] [GRAPH_PATH...]

Arguments:
  GRAPH_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Environment:
  Flag defaults are read from BLUEPRINT_* variables and from the file named
  by BLUEPRINT_ENV_FILE (default .env), if present.

Options:
`)
		flagSet.PrintDefaults()
	}

	graphFlag := flagSet.String("graph", "", "Path to the graph file or directory.")
	gFlag := flagSet.String("g", "", "Path to the graph file or directory (shorthand).")
	rootFlag := flagSet.String("root", env.get(EnvRoot, app.DefaultRoot), "Name of the graph to run.")
	entryFlag := flagSet.String("entry", env.get(EnvEntry, app.DefaultEntry), "Label called to start the run.")
	logFormatFlag := flagSet.String("log-format", env.get(EnvLogFormat, "text"), "Log output format. Options: 'text', 'json' or 'pretty'.")
	logLevelFlag := flagSet.String("log-level", env.get(EnvLogLevel, "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	traceFlag := flagSet.String("trace-endpoint", env.get(EnvTraceEndpoint, ""), "OTLP gRPC endpoint for traces. Empty disables tracing.")

	maxDepth, err := env.getInt(EnvMaxDepth)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	maxDepthFlag := flagSet.Int("max-depth", maxDepth, "Maximum call depth of a run. 0 uses the engine default.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	if *graphFlag != "" {
		paths = append(paths, *graphFlag)
	}
	if *gFlag != "" {
		paths = append(paths, *gFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Graph paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No graph path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	switch logFormat {
	case "text", "json", "pretty":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text', 'json' or 'pretty'"}
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
		GraphPaths:    paths,
		Root:          *rootFlag,
		Entry:         *entryFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		MaxCallDepth:  *maxDepthFlag,
		TraceEndpoint: *traceFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// environment resolves BLUEPRINT_* defaults.
type environment map[string]string

// loadEnv reads the env file, if any. Process variables win over the file.
func loadEnv() (environment, error) {
	path, explicit := os.LookupEnv(EnvFile)
	if !explicit {
		path = defaultEnvFile
	}
	fileEnv, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return environment{}, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return environment(fileEnv), nil
}

func (e environment) get(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v, ok := e[key]; ok && v != "" {
		return v
	}
	return def
}

func (e environment) getInt(key string) (int, error) {
	raw := e.get(key, "")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not an integer", key, raw)
	}
	return n, nil
}
