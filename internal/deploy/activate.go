package deploy

import (
	"fmt"
	"path"
)

// switchCommand is relative to the system closure.
const switchCommand = "bin/switch-to-configuration"

// ActivatePhase records the closure as the new system generation and
// switches the target to it.
type ActivatePhase struct{}

// Name implements the Phase interface.
func (p *ActivatePhase) Name() string {
	return "activate"
}

// Run implements the Phase interface.
func (p *ActivatePhase) Run(ctx *Context) error {
	outPath := ctx.State.OutPath
	if outPath == "" {
		return fmt.Errorf("no output path to activate")
	}
	profile := ctx.Config.Tools.Profile

	ctx.Observer.Printf("[activate] Setting %s to %s...", profile, outPath)
	if err := ctx.Session.Run(ctx, "nix-env", "--profile", profile, "--set", outPath); err != nil {
		return fmt.Errorf("failed to set system profile: %w", err)
	}

	ctx.Observer.Printf("[activate] Running switch-to-configuration %s...", ctx.Config.Action)
	if err := ctx.Session.Run(ctx, path.Join(outPath, switchCommand), ctx.Config.Action); err != nil {
		return fmt.Errorf("failed to %s configuration: %w", ctx.Config.Action, err)
	}
	return nil
}
