package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/nixdeploy/internal/shell"
)

// defaultWaitDelay bounds how long a cancelled child may keep its output
// pipes open after it was signalled.
const defaultWaitDelay = 5 * time.Second

// Command describes a single invocation of an external program.
type Command struct {
	// Name is the program to run, resolved through PATH.
	Name string

	// Args are passed to the program verbatim.
	Args []string

	// Env holds additional KEY=VALUE pairs appended to the parent environment.
	Env []string

	// Stdin, Stdout and Stderr override the runner's default streams when set.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Argv returns the program name followed by its arguments.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Name)
	return append(argv, c.Args...)
}

// String renders the command as a shell-quoted line, prefixed by any extra
// environment assignments.
func (c Command) String() string {
	line := shell.Join(c.Argv())
	if len(c.Env) == 0 {
		return line
	}
	env := make([]string, 0, len(c.Env))
	for _, kv := range c.Env {
		env = append(env, shell.QuoteAssignment(kv))
	}
	return strings.Join(env, " ") + " " + line
}

// Runner starts a command and waits for it to finish.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExitError reports a command that could not be started or exited non-zero.
type ExitError struct {
	Command string
	Err     error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the child's exit status, or -1 when it never ran to
// completion.
func (e *ExitError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner that forwards child output to the
// process's own stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run starts the command and waits for it to exit. Cancelling ctx sends
// SIGTERM to the child so ssh can release its control socket.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	// #nosec G204 - program names come from configuration, arguments are passed as argv
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Cancel = func() error {
		return c.Process.Signal(syscall.SIGTERM)
	}
	c.WaitDelay = defaultWaitDelay

	c.Stdin = cmd.Stdin
	c.Stdout = pick(cmd.Stdout, r.Stdout)
	c.Stderr = pick(cmd.Stderr, r.Stderr)

	if err := c.Run(); err != nil {
		return &ExitError{Command: cmd.String(), Err: err}
	}
	return nil
}

func pick(override, fallback io.Writer) io.Writer {
	if override != nil {
		return override
	}
	return fallback
}

// Output runs cmd and returns its trimmed standard output.
func Output(ctx context.Context, r Runner, cmd Command) (string, error) {
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := r.Run(ctx, cmd); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// LastLine returns the last non-empty line of s.
func LastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// loggingRunner logs each command line before delegating.
type loggingRunner struct {
	next Runner
	log  logr.Logger
}

// WithLogger wraps r so every command is logged at verbosity 1.
func WithLogger(r Runner, log logr.Logger) Runner {
	return &loggingRunner{next: r, log: log}
}

func (l *loggingRunner) Run(ctx context.Context, cmd Command) error {
	l.log.V(1).Info("exec", "command", cmd.String())
	return l.next.Run(ctx, cmd)
}
