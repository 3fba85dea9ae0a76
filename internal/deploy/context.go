package deploy

import (
	"context"

	"github.com/imamik/nixdeploy/internal/config"
	"github.com/imamik/nixdeploy/internal/platform/nix"
	"github.com/imamik/nixdeploy/internal/platform/ssh"
	"github.com/imamik/nixdeploy/internal/runner"
)

// State holds the results of deployment phases.
type State struct {
	// WorkspaceDir is the temporary directory of the run. It no longer
	// exists once Run has returned.
	WorkspaceDir string

	// IdentityFile is the written private key, if one was supplied.
	IdentityFile string

	// OutPath is the system closure that was activated.
	OutPath string
}

// Context wraps all dependencies and state needed for a deployment phase.
type Context struct {
	context.Context
	Config    *config.Config
	State     *State
	Workspace *Workspace
	Runner    runner.Runner
	Store     *nix.Store
	Session   *ssh.Session // nil until the session phase has run
	Observer  Observer
}

// NewContext creates a new deployment context.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	r runner.Runner,
	ws *Workspace,
	observer Observer,
) *Context {
	return &Context{
		Context:   ctx,
		Config:    cfg,
		State:     &State{WorkspaceDir: ws.Dir()},
		Workspace: ws,
		Runner:    r,
		Store:     nix.NewStore(r, cfg.Tools.NixStore, cfg.Tools.NixCopyClosure),
		Observer:  observer,
	}
}
