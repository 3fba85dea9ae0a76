package deploy

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	workspacePattern  = "nixdeploy-"
	controlSocketName = "ssh_control"
)

// Workspace is a private temporary directory owning the identity file and
// the ssh control socket of one run.
type Workspace struct {
	dir    string
	closed bool
}

// NewWorkspace creates a workspace under parent, or under the system
// temporary directory when parent is empty. The directory is mode 0700.
func NewWorkspace(parent string) (*Workspace, error) {
	dir, err := os.MkdirTemp(parent, workspacePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// ControlPath returns the ssh control socket path.
func (w *Workspace) ControlPath() string {
	return filepath.Join(w.dir, controlSocketName)
}

// Close removes the workspace and everything in it. Calling Close more than
// once is safe.
func (w *Workspace) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("failed to remove workspace %s: %w", w.dir, err)
	}
	return nil
}
