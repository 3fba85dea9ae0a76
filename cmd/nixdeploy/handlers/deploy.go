// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/imamik/nixdeploy/internal/config"
	"github.com/imamik/nixdeploy/internal/deploy"
	"github.com/imamik/nixdeploy/internal/runner"
)

// DeployOptions holds the parsed command line of the deploy command.
type DeployOptions struct {
	// Args are the positional arguments, including build options and the
	// trailing sentinel.
	Args []string

	// FilePath is a deployment file to use instead of Args.
	FilePath string

	// Verbose logs every command that is run.
	Verbose bool
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// parseArgs builds a config from positional arguments.
	parseArgs = config.ParseArgs

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// findConfigFile finds the default deployment file (for testing injection).
	findConfigFile = config.FindConfigFile

	// newRunner creates the runner external commands are started with.
	newRunner = func() runner.Runner {
		return runner.NewExecRunner()
	}

	// runDeployment runs the deployment pipeline.
	runDeployment = deploy.Run

	// logOutput receives progress logs and the final summary.
	logOutput io.Writer = os.Stderr

	// isTerminal reports whether logOutput is an interactive terminal.
	isTerminal = func() bool {
		return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}
)

// Deploy loads the deployment described by opts and runs it.
//
// The workflow is:
//  1. Build the configuration from positional arguments or a deployment file
//  2. Run the deployment pipeline with commands logged through the observer
//  3. Print a summary of the outcome
//
// Tool output is streamed to the terminal unmodified. The returned error is
// the first failure; cleanup problems are only logged.
func Deploy(ctx context.Context, opts DeployOptions) error {
	cfg, err := loadDeployment(opts)
	if err != nil {
		return err
	}

	verbosity := 0
	if opts.Verbose {
		verbosity = 1
	}
	log := deploy.NewConsoleLogger(logOutput, verbosity)
	observer := deploy.NewLogObserver(log.WithName("nixdeploy"))
	r := runner.WithLogger(newRunner(), log.WithName("exec"))

	start := time.Now()
	state, err := runDeployment(ctx, cfg, r, observer)
	printSummary(logOutput, cfg, state, err, time.Since(start), isTerminal())
	return err
}

// loadDeployment resolves where the configuration comes from: explicit
// positional arguments, an explicit file, or the default file.
func loadDeployment(opts DeployOptions) (*config.Config, error) {
	if opts.FilePath != "" && len(opts.Args) > 0 {
		return nil, fmt.Errorf("positional arguments cannot be combined with --file")
	}

	if len(opts.Args) > 0 {
		return parseArgs(opts.Args)
	}

	path := opts.FilePath
	if path == "" {
		found, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no deployment arguments given and %w; see 'nixdeploy deploy --help'", err)
		}
		path = found
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// interrupted reports whether err stems from a cancelled context.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}
