package testing

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/imamik/nixdeploy/internal/runner"
	"github.com/imamik/nixdeploy/internal/shell"
)

// Response is the scripted result of a matched command.
type Response struct {
	Stdout string
	Err    error
}

// Call is one recorded command together with whatever it read from stdin.
type Call struct {
	Command runner.Command
	Stdin   []byte
}

// Line returns the command rendered as a shell line.
func (c Call) Line() string {
	return c.Command.String()
}

type rule struct {
	substr string
	resp   Response
}

// RecordingRunner is a runner.Runner fake. Commands are matched against
// rules by substring of their rendered line; the first matching rule wins
// and unmatched commands succeed with no output. It is safe for concurrent
// use.
type RecordingRunner struct {
	mu    sync.Mutex
	rules []rule
	calls []Call
}

// NewRecordingRunner creates a runner with no rules.
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{}
}

// On adds a rule for commands whose rendered line contains substr.
// Returns the runner for chaining.
func (r *RecordingRunner) On(substr string, resp Response) *RecordingRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{substr: substr, resp: resp})
	return r
}

// Run records cmd and replays the first matching rule. A cancelled context
// fails the command like os/exec would.
func (r *RecordingRunner) Run(ctx context.Context, cmd runner.Command) error {
	var stdin []byte
	if cmd.Stdin != nil {
		stdin, _ = io.ReadAll(cmd.Stdin)
	}

	line := cmd.String()

	r.mu.Lock()
	r.calls = append(r.calls, Call{Command: cmd, Stdin: stdin})
	resp := Response{}
	for _, rl := range r.rules {
		if strings.Contains(line, rl.substr) {
			resp = rl.resp
			break
		}
	}
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if cmd.Stdout != nil && resp.Stdout != "" {
		if _, err := io.WriteString(cmd.Stdout, resp.Stdout); err != nil {
			return err
		}
	}
	return resp.Err
}

// Calls returns a copy of the recorded calls in the order they were made.
func (r *RecordingRunner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Lines returns every recorded command rendered as a shell line.
func (r *RecordingRunner) Lines() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.Line()
	}
	return lines
}

// Find returns the recorded calls whose rendered line contains substr.
func (r *RecordingRunner) Find(substr string) []Call {
	var found []Call
	for _, c := range r.Calls() {
		if strings.Contains(c.Line(), substr) {
			found = append(found, c)
		}
	}
	return found
}

// RemoteArgv decodes the argv an ssh command asks the target to run: the
// final argument, parsed with shell quoting rules. It returns false for
// commands that do not carry a remote command string.
func RemoteArgv(cmd runner.Command) ([]string, bool) {
	if len(cmd.Args) == 0 {
		return nil, false
	}
	argv, err := shell.Split(cmd.Args[len(cmd.Args)-1])
	if err != nil {
		return nil, false
	}
	return argv, true
}
