package deploy

import (
	"fmt"

	"github.com/imamik/nixdeploy/internal/platform/nix"
	"github.com/imamik/nixdeploy/internal/runner"
)

// Transfer makes the system closure available on the target and returns its
// output path.
type Transfer interface {
	Name() string
	Transfer(ctx *Context) (string, error)
}

// SelectTransfer returns the strategy the configuration asks for.
func SelectTransfer(buildOnTarget bool) Transfer {
	if buildOnTarget {
		return &RemoteBuild{}
	}
	return &LocalBuild{}
}

// LocalBuild realizes the derivation on the deployer and copies the output
// closure to the target with nix-copy-closure.
type LocalBuild struct{}

// Name implements the Transfer interface.
func (t *LocalBuild) Name() string {
	return "local build"
}

// Transfer implements the Transfer interface.
func (t *LocalBuild) Transfer(ctx *Context) (string, error) {
	// Checked first so nothing is built for a closure that cannot be copied.
	sshOpts, err := ctx.Session.NixSSHOpts()
	if err != nil {
		return "", err
	}

	ctx.Observer.Printf("[transfer] Realizing %s locally...", ctx.Config.DrvPath)
	outPath, err := ctx.Store.Realize(ctx, ctx.Config.DrvPath, ctx.Config.BuildOptions)
	if err != nil {
		return "", err
	}

	ctx.Observer.Printf("[transfer] Copying %s to %s...", outPath, ctx.Session.Host())
	if err := ctx.Store.CopyClosure(ctx, ctx.Session.Host(), outPath, sshOpts); err != nil {
		return "", err
	}
	return outPath, nil
}

// RemoteBuild streams the derivation closure to the target and realizes it
// there.
type RemoteBuild struct{}

// Name implements the Transfer interface.
func (t *RemoteBuild) Name() string {
	return "remote build"
}

// Transfer implements the Transfer interface.
func (t *RemoteBuild) Transfer(ctx *Context) (string, error) {
	drv := ctx.Config.DrvPath

	paths, err := ctx.Store.Requisites(ctx, drv)
	if err != nil {
		return "", err
	}

	ctx.Observer.Printf("[transfer] Exporting %d store paths to %s...", len(paths), ctx.Session.Host())
	if err := ctx.Store.ExportTo(ctx, paths, ctx.Session.Command(nix.ImportArgs()...)); err != nil {
		return "", err
	}

	ctx.Observer.Printf("[transfer] Realizing %s on %s...", drv, ctx.Session.Host())
	out, err := ctx.Session.Output(ctx, nix.RealizeArgs(drv, ctx.Config.BuildOptions)...)
	if err != nil {
		return "", fmt.Errorf("failed to realize %s on target: %w", drv, err)
	}

	outPath := runner.LastLine(out)
	if outPath == "" {
		outPath = ctx.Config.OutPath
	}
	if outPath == "" {
		return "", fmt.Errorf("realizing %s on target produced no output path and none was configured", drv)
	}
	return outPath, nil
}

// TransferPhase runs the selected transfer strategy.
type TransferPhase struct {
	strategy Transfer
}

// NewTransferPhase creates a transfer phase for strategy.
func NewTransferPhase(strategy Transfer) *TransferPhase {
	return &TransferPhase{strategy: strategy}
}

// Name implements the Phase interface.
func (p *TransferPhase) Name() string {
	return "transfer"
}

// Run implements the Phase interface.
func (p *TransferPhase) Run(ctx *Context) error {
	if ctx.Session == nil {
		return fmt.Errorf("no ssh session")
	}

	outPath, err := p.strategy.Transfer(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", p.strategy.Name(), err)
	}
	ctx.State.OutPath = outPath
	return nil
}
