package deploy

import (
	"fmt"

	"github.com/imamik/nixdeploy/internal/platform/ssh"
)

// SessionPhase opens the shared ssh control connection to the target.
type SessionPhase struct{}

// Name implements the Phase interface.
func (p *SessionPhase) Name() string {
	return "session"
}

// Run implements the Phase interface.
func (p *SessionPhase) Run(ctx *Context) error {
	tools := ctx.Config.Tools
	session, err := ssh.NewSession(ctx.Runner, &ssh.Config{
		Host:         ctx.Config.TargetHost,
		Port:         ctx.Config.TargetPort,
		ControlPath:  ctx.Workspace.ControlPath(),
		IdentityFile: ctx.State.IdentityFile,
		Binary:       tools.SSH,
		Helper:       tools.RemoteHelper,
		ExtraOptions: tools.SSHExtraOptions,
	})
	if err != nil {
		return fmt.Errorf("failed to create ssh session: %w", err)
	}

	// Assigned before Open so a half-open master is still closed.
	ctx.Session = session

	ctx.Observer.Printf("[session] Connecting to %s:%d...", ctx.Config.TargetHost, ctx.Config.TargetPort)
	return session.Open(ctx)
}
