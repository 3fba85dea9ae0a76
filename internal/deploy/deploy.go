package deploy

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/nixdeploy/internal/config"
	"github.com/imamik/nixdeploy/internal/runner"
)

// sessionCloseTimeout bounds "ssh -O exit" during cleanup.
const sessionCloseTimeout = 10 * time.Second

// Phases returns the ordered phases for cfg.
func Phases(cfg *config.Config) []Phase {
	phases := []Phase{
		&IdentityPhase{},
		&SessionPhase{},
		NewTransferPhase(SelectTransfer(cfg.BuildOnTarget)),
		&ActivatePhase{},
	}
	if cfg.CollectGarbage {
		phases = append(phases, &GarbageCollectPhase{})
	}
	return phases
}

// Run deploys cfg. The workspace is created under the system temporary
// directory and removed before Run returns, after the ssh control
// connection has been closed. Cleanup failures are reported to observer
// and never replace the deployment's own error.
//
// The returned State is non-nil whenever the workspace was created, also on
// failure.
func Run(ctx context.Context, cfg *config.Config, r runner.Runner, observer Observer) (*State, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	ws, err := NewWorkspace("")
	if err != nil {
		return nil, err
	}
	defer func() {
		LogCleanup(observer, "workspace", ws.Close())
	}()

	dctx := NewContext(ctx, cfg.Clone(), r, ws, observer)
	defer closeSession(dctx)

	return dctx.State, RunPhases(dctx, Phases(dctx.Config))
}

// closeSession closes the control connection, also after ctx was cancelled.
func closeSession(ctx *Context) {
	if ctx.Session == nil {
		return
	}
	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx.Context), sessionCloseTimeout)
	defer cancel()
	LogCleanup(ctx.Observer, "ssh control connection", ctx.Session.Close(closeCtx))
}
