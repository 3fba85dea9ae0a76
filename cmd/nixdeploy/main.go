// Package main is the entry point for the nixdeploy CLI.
//
// nixdeploy deploys a NixOS system derivation to a remote host over SSH. It
// either builds locally and copies the closure, or ships the derivation to
// the target and builds there, then activates the result and optionally
// collects garbage.
//
// Commands: deploy, doctor, version, completion.
//
// For detailed usage information, run:
//
//	nixdeploy --help
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/nixdeploy/cmd/nixdeploy/commands"
	"github.com/imamik/nixdeploy/internal/runner"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the CLI with args and returns the process exit status.
func run(args []string, stderr io.Writer) int {
	// Interrupts cancel the running command; deferred cleanup still runs.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	root := commands.Root()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(err)
	}
	return 0
}

// exitCode returns the exit status of the external command that caused err,
// or 1 when err did not come from a command that exited with a status.
func exitCode(err error) int {
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}
