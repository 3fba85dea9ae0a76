package deploy

import (
	"fmt"

	"github.com/imamik/nixdeploy/internal/platform/ssh"
)

// IdentityPhase writes the supplied private key into the workspace. It does
// nothing when the deployment relies on ambient ssh credentials.
type IdentityPhase struct{}

// Name implements the Phase interface.
func (p *IdentityPhase) Name() string {
	return "identity"
}

// Run implements the Phase interface.
func (p *IdentityPhase) Run(ctx *Context) error {
	if !ctx.Config.HasPrivateKey() {
		ctx.Observer.Printf("[identity] No private key supplied, using ambient ssh credentials")
		return nil
	}

	path, err := ssh.WriteIdentity(ctx.Workspace.Dir(), ctx.Config.PrivateKey)
	if err != nil {
		return fmt.Errorf("failed to provision private key: %w", err)
	}
	ctx.State.IdentityFile = path
	return nil
}
