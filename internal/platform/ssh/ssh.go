package ssh

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/imamik/nixdeploy/internal/runner"
	"github.com/imamik/nixdeploy/internal/shell"
)

const (
	defaultBinary  = "ssh"
	defaultPort    = 22
	controlPersist = "60"
)

// ErrUnsafeOption is returned when an option cannot be represented in
// NIX_SSHOPTS, which nix splits on whitespace.
var ErrUnsafeOption = errors.New("ssh option contains whitespace")

// Config holds SSH session configuration.
type Config struct {
	Host string
	Port int

	// ControlPath is the multiplexing socket. It must live in a directory
	// only the current user can access.
	ControlPath string

	// IdentityFile is an optional private key path.
	IdentityFile string

	// Binary is the ssh executable. If empty, "ssh" is used.
	Binary string

	// Helper prefixes every remote command. If empty, commands run directly.
	Helper string

	// ExtraOptions are appended after the built-in options.
	ExtraOptions []string
}

// Session executes commands on one target over a shared control connection.
type Session struct {
	config    Config
	runner    runner.Runner
	attempted bool
}

// NewSession validates cfg and returns a session that has not connected yet.
func NewSession(r runner.Runner, cfg *Config) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("config host cannot be empty")
	}
	if cfg.ControlPath == "" {
		return nil, fmt.Errorf("config control path cannot be empty")
	}

	// Copy config to avoid mutating caller's struct
	configCopy := *cfg
	configCopy.ExtraOptions = append([]string(nil), cfg.ExtraOptions...)
	if configCopy.Port == 0 {
		configCopy.Port = defaultPort
	}
	if configCopy.Binary == "" {
		configCopy.Binary = defaultBinary
	}

	return &Session{config: configCopy, runner: r}, nil
}

// Host returns the destination every command is sent to.
func (s *Session) Host() string {
	return s.config.Host
}

// Options returns the ssh command-line options shared by every invocation,
// including nix-copy-closure's.
func (s *Session) Options() []string {
	opts := []string{
		// Targets are re-provisioned under reused addresses.
		"-o", "StrictHostKeyChecking=no",
		"-o", "UserKnownHostsFile=/dev/null",
		"-o", "GlobalKnownHostsFile=/dev/null",
		// No interactive prompts.
		"-o", "BatchMode=yes",
		"-o", "ControlMaster=auto",
		"-o", "ControlPath=" + s.config.ControlPath,
		"-o", "ControlPersist=" + controlPersist,
		"-p", strconv.Itoa(s.config.Port),
	}
	if s.config.IdentityFile != "" {
		opts = append(opts, "-o", "IdentityFile="+s.config.IdentityFile)
	}
	return append(opts, s.config.ExtraOptions...)
}

// NixSSHOpts renders Options for the NIX_SSHOPTS environment variable.
// Nix splits that value on whitespace without honouring quotes, so an option
// containing whitespace is rejected instead of being silently split.
func (s *Session) NixSSHOpts() (string, error) {
	opts := s.Options()
	for _, opt := range opts {
		if strings.ContainsAny(opt, " \t\n") {
			return "", fmt.Errorf("%w: %q", ErrUnsafeOption, opt)
		}
	}
	return strings.Join(opts, " "), nil
}

// RemoteCommand serializes argv, prefixed by the helper, into the single
// string ssh hands to the remote login shell.
func (s *Session) RemoteCommand(argv ...string) string {
	if s.config.Helper == "" {
		return shell.Join(argv)
	}
	return shell.Join(append([]string{s.config.Helper}, argv...))
}

// Command builds the local ssh invocation that runs argv on the target.
func (s *Session) Command(argv ...string) runner.Command {
	args := append(s.Options(), s.config.Host, s.RemoteCommand(argv...))
	return runner.Command{Name: s.config.Binary, Args: args}
}

// Open establishes the control connection. Later commands attach to it.
func (s *Session) Open(ctx context.Context) error {
	s.attempted = true
	cmd := runner.Command{
		Name: s.config.Binary,
		Args: append(s.Options(), s.config.Host, "true"),
	}
	if err := s.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("failed to open ssh control connection to %s: %w", s.config.Host, err)
	}
	return nil
}

// Run executes argv on the target.
func (s *Session) Run(ctx context.Context, argv ...string) error {
	if err := s.runner.Run(ctx, s.Command(argv...)); err != nil {
		return fmt.Errorf("command failed on %s: %w", s.config.Host, err)
	}
	return nil
}

// Output executes argv on the target and returns its trimmed stdout.
func (s *Session) Output(ctx context.Context, argv ...string) (string, error) {
	out, err := runner.Output(ctx, s.runner, s.Command(argv...))
	if err != nil {
		return "", fmt.Errorf("command failed on %s: %w", s.config.Host, err)
	}
	return out, nil
}

// Close asks the control master to exit. It is a no-op when Open was never
// called.
func (s *Session) Close(ctx context.Context) error {
	if !s.attempted {
		return nil
	}
	s.attempted = false

	cmd := runner.Command{
		Name: s.config.Binary,
		Args: append(s.Options(), "-O", "exit", s.config.Host),
	}
	if err := s.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("failed to close ssh control connection to %s: %w", s.config.Host, err)
	}
	return nil
}
