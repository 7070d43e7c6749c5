// Package main provides the nkllon binary entry point: validation, querying,
// diffing, and visualization of hardware topology graphs.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nkllon/topology/config"
	"github.com/nkllon/topology/rdf"
	"github.com/nkllon/topology/shacl"
)

const (
	Version = "0.1.0"
	appName = "nkllon"
)

// Exit codes form the CLI contract for scripting.
const (
	exitOK            = 0
	exitNonConforming = 1
	exitNotFound      = 2
	exitParse         = 3
	exitValidation    = 4
	exitConfig        = 5
	exitUnexpected    = 99
)

// errNonConforming signals a completed validation run whose constraints
// failed. It maps to exit code 1 and is not printed as an error.
var errNonConforming = errors.New("validation completed with constraint failures")

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(exitUnexpected)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errNonConforming) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the documented exit-code contract.
func exitCode(err error) int {
	var parseErr *rdf.ParseError
	var catalogErr *shacl.CatalogError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNonConforming):
		return exitNonConforming
	case errors.Is(err, rdf.ErrNotFound):
		return exitNotFound
	case errors.As(err, &parseErr):
		return exitParse
	case errors.As(err, &catalogErr):
		return exitConfig
	case errors.Is(err, errConfiguration):
		return exitConfig
	case errors.Is(err, errValidationFailed):
		return exitValidation
	default:
		return exitUnexpected
	}
}

// errValidationFailed marks an execution failure inside the validation step
// itself, as opposed to a non-conforming result.
var errValidationFailed = errors.New("validation execution failed")

func rootCmd() *cobra.Command {
	var (
		verbose bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Hardware topology validation system",
		Long: `nkllon validates physical device/connection topologies against a
catalog of declarative constraints, compares topology snapshots for
drift, and renders interactive visualizations.

Exit codes:
  0  - Success, or help displayed without running validation
  1  - Validation completed but constraints failed
  2  - Required file not found
  3  - Graph or catalog parsing error
  4  - Validation execution error
  5  - Configuration error
  99 - Unexpected error`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(verbose, quiet)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress output except errors")

	cmd.AddCommand(validateCmd(&quiet))
	cmd.AddCommand(queryCmd())
	cmd.AddCommand(diffCmd())
	cmd.AddCommand(visualizeCmd())
	cmd.AddCommand(watchCmd(&quiet))
	cmd.AddCommand(infoCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func configureLogging(verbose, quiet bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadConfig runs the layered loader.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader(slog.Default()).Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errConfiguration, err)
	}
	return cfg, nil
}

// errConfiguration marks configuration problems for exit-code mapping.
var errConfiguration = errors.New("configuration error")
