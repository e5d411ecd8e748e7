// Package cli parses command-line arguments into an application
// configuration, including external variable files.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skyrig/chassis/internal/app"
	"github.com/skyrig/chassis/internal/fsutil"
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

// Options is everything the entry point needs: the validated app config
// plus CLI-only presentation choices.
type Options struct {
	App   app.Config
	Print string // "text" or "tree"
	Query string // optional tree path to navigate and print
}

// Parse processes command-line arguments. It returns populated Options,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	flagSet := flag.NewFlagSet("chassis", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
chassis - resolves a configuration tree from includes and variables.

Usage:
  chassis [options] [ENTRY]

Arguments:
  ENTRY
    Entry configuration file, relative to the root directory.

Options:
`)
		flagSet.PrintDefaults()
	}

	rootFlag := flagSet.String("root", ".", "Root directory all includes are confined to.")
	entryFlag := flagSet.String("entry", "", "Entry configuration file relative to the root.")
	varsFlag := flagSet.String("vars", "", "YAML file of external variables (flat string mapping).")
	appIDFlag := flagSet.String("app-id", "app", "Short application identifier (atom-encodable).")
	envFlag := flagSet.String("environment", "", "Environment name. Defaults to $"+app.EnvironmentVar+" or 'local'.")
	allowMissingFlag := flagSet.Bool("allow-missing-vars", false, "Substitute empty strings for unresolved variables.")
	printFlag := flagSet.String("print", "text", "What to print after assembly. Options: 'text' or 'tree'.")
	queryFlag := flagSet.String("query", "", "Tree path to navigate and print instead of the whole artifact.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	entry := *entryFlag
	if entry == "" && flagSet.NArg() > 0 {
		entry = flagSet.Arg(0)
	}
	if entry == "" {
		flagSet.Usage()
		printEntryCandidates(output, *rootFlag)
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

	printMode := strings.ToLower(*printFlag)
	if printMode != "text" && printMode != "tree" {
		return nil, false, &ExitError{Code: 2, Message: "invalid print: must be 'text' or 'tree'"}
	}

	vars, err := loadVarsFile(*varsFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	appConfig, err := app.NewConfig(app.Config{
		AppID:            *appIDFlag,
		Environment:      *envFlag,
		RootPath:         *rootFlag,
		Entry:            entry,
		Vars:             vars,
		AllowMissingVars: *allowMissingFlag,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return &Options{App: *appConfig, Print: printMode, Query: *queryFlag}, false, nil
}

// printEntryCandidates lists .cfg files under root as a hint when no
// entry was given. Discovery failures are ignored; this is advisory
// output only.
func printEntryCandidates(output io.Writer, root string) {
	files, err := fsutil.FindFilesByExtension(root, ".cfg")
	if err != nil || len(files) == 0 {
		return
	}
	fmt.Fprintf(output, "\nEntry candidates under %s:\n", root)
	for _, f := range files {
		if rel, err := filepath.Rel(root, f); err == nil {
			f = rel
		}
		fmt.Fprintf(output, "  %s\n", f)
	}
}

// loadVarsFile reads a flat name-to-string YAML mapping. Scalar values
// of other types are rendered through their YAML string form.
func loadVarsFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vars file: %w", err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing vars file %s: %w", path, err)
	}

	vars := make(map[string]string, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case string:
			vars[name] = v
		case nil:
			vars[name] = ""
		case map[string]any, []any:
			return nil, fmt.Errorf("vars file %s: variable %q must be a scalar", path, name)
		default:
			vars[name] = fmt.Sprintf("%v", v)
		}
	}
	return vars, nil
}
