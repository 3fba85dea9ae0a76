package nix

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/imamik/nixdeploy/internal/runner"
)

// remoteNixStore is the nix-store binary name used on the target.
const remoteNixStore = "nix-store"

// Store runs local nix-store and nix-copy-closure invocations.
type Store struct {
	runner      runner.Runner
	nixStore    string
	copyClosure string
}

// NewStore returns a store using the given binaries.
func NewStore(r runner.Runner, nixStore, copyClosure string) *Store {
	return &Store{
		runner:      r,
		nixStore:    nixStore,
		copyClosure: copyClosure,
	}
}

// RealizeArgs returns the nix-store argv that realizes drvPath with opts.
func RealizeArgs(drvPath string, opts []string) []string {
	args := []string{remoteNixStore, "--realize", drvPath}
	return append(args, opts...)
}

// ImportArgs returns the nix-store argv that reads an export stream from stdin.
func ImportArgs() []string {
	return []string{remoteNixStore, "--import"}
}

// Realize builds drvPath locally and returns its output path.
func (s *Store) Realize(ctx context.Context, drvPath string, opts []string) (string, error) {
	argv := RealizeArgs(drvPath, opts)
	out, err := runner.Output(ctx, s.runner, runner.Command{Name: s.nixStore, Args: argv[1:]})
	if err != nil {
		return "", fmt.Errorf("failed to realize %s: %w", drvPath, err)
	}

	outPath := runner.LastLine(out)
	if outPath == "" {
		return "", fmt.Errorf("realizing %s produced no output path", drvPath)
	}
	return outPath, nil
}

// Requisites returns the closure of path: the path and everything it
// references, transitively.
func (s *Store) Requisites(ctx context.Context, path string) ([]string, error) {
	out, err := runner.Output(ctx, s.runner, runner.Command{
		Name: s.nixStore,
		Args: []string{"--query", "--requisites", path},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query closure of %s: %w", path, err)
	}

	paths := strings.Fields(out)
	if len(paths) == 0 {
		return nil, fmt.Errorf("closure of %s is empty", path)
	}
	return paths, nil
}

// ExportTo streams nix-store --export of paths into importer's stdin, like a
// shell pipeline. Both sides run concurrently; if either fails the other is
// cancelled and the first error is returned.
func (s *Store) ExportTo(ctx context.Context, paths []string, importer runner.Command) error {
	pr, pw := io.Pipe()
	g, gctx := errgroup.WithContext(ctx)

	export := runner.Command{
		Name:   s.nixStore,
		Args:   append([]string{"--export"}, paths...),
		Stdout: pw,
	}
	importer.Stdin = pr

	g.Go(func() error {
		err := s.runner.Run(gctx, export)
		_ = pw.CloseWithError(err)
		if err != nil {
			return fmt.Errorf("failed to export closure: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := s.runner.Run(gctx, importer)
		// Unblocks the exporter if the importer stopped reading early.
		_ = pr.CloseWithError(io.ErrClosedPipe)
		if err != nil {
			return fmt.Errorf("failed to import closure on target: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// CopyClosure copies the closure of path to host with nix-copy-closure.
// sshOpts is passed through NIX_SSHOPTS.
func (s *Store) CopyClosure(ctx context.Context, host, path, sshOpts string) error {
	cmd := runner.Command{
		Name: s.copyClosure,
		Args: []string{"--to", host, "--gzip", "--use-substitutes", path},
		Env:  []string{"NIX_SSHOPTS=" + sshOpts},
	}
	if err := s.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("failed to copy closure of %s to %s: %w", path, host, err)
	}
	return nil
}
