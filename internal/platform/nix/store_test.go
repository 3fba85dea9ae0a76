package nix

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/nixdeploy/internal/runner"
	testutil "github.com/imamik/nixdeploy/internal/testing"
)

const (
	drv = "/nix/store/aaaa-nixos-system.drv"
	out = "/nix/store/bbbb-nixos-system"
)

func TestRealize(t *testing.T) {
	r := testutil.NewRecordingRunner().
		On("--realize", testutil.Response{Stdout: "warning: ignoring substituter\n" + out + "\n"})
	store := NewStore(r, "/bin/nix-store", "nix-copy-closure")

	got, err := store.Realize(context.Background(), drv, []string{"--option", "a b", "-j4"})
	require.NoError(t, err)
	assert.Equal(t, out, got)

	calls := r.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/bin/nix-store", calls[0].Command.Name)
	assert.Equal(t, []string{"--realize", drv, "--option", "a b", "-j4"}, calls[0].Command.Args)
}

func TestRealize_NoOutput(t *testing.T) {
	store := NewStore(testutil.NewRecordingRunner(), "nix-store", "nix-copy-closure")

	_, err := store.Realize(context.Background(), drv, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "produced no output path")
}

func TestRealize_Error(t *testing.T) {
	cause := errors.New("builder failed")
	r := testutil.NewRecordingRunner().On("--realize", testutil.Response{Err: cause})
	store := NewStore(r, "nix-store", "nix-copy-closure")

	_, err := store.Realize(context.Background(), drv, nil)
	assert.ErrorIs(t, err, cause)
}

func TestRequisites(t *testing.T) {
	r := testutil.NewRecordingRunner().
		On("--requisites", testutil.Response{Stdout: "/nix/store/x.drv\n/nix/store/y.drv\n" + drv + "\n"})
	store := NewStore(r, "nix-store", "nix-copy-closure")

	paths, err := store.Requisites(context.Background(), drv)
	require.NoError(t, err)
	assert.Equal(t, []string{"/nix/store/x.drv", "/nix/store/y.drv", drv}, paths)
	assert.Equal(t, []string{"--query", "--requisites", drv}, r.Calls()[0].Command.Args)
}

func TestRequisites_Empty(t *testing.T) {
	store := NewStore(testutil.NewRecordingRunner(), "nix-store", "nix-copy-closure")

	_, err := store.Requisites(context.Background(), drv)
	assert.Error(t, err)
}

func TestExportTo(t *testing.T) {
	r := testutil.NewRecordingRunner().
		On("--export", testutil.Response{Stdout: "NAR-STREAM"})
	store := NewStore(r, "nix-store", "nix-copy-closure")

	importer := runner.Command{Name: "ssh", Args: []string{"host", "nix-store --import"}}
	require.NoError(t, store.ExportTo(context.Background(), []string{"/nix/store/x.drv", drv}, importer))

	exports := r.Find("--export")
	require.Len(t, exports, 1)
	assert.Equal(t, []string{"--export", "/nix/store/x.drv", drv}, exports[0].Command.Args)

	imports := r.Find("--import")
	require.Len(t, imports, 1)
	assert.Equal(t, "NAR-STREAM", string(imports[0].Stdin))
}

func TestExportTo_ExportFails(t *testing.T) {
	cause := errors.New("export failed")
	r := testutil.NewRecordingRunner().On("--export", testutil.Response{Err: cause})
	store := NewStore(r, "nix-store", "nix-copy-closure")

	err := store.ExportTo(context.Background(), []string{drv}, runner.Command{Name: "ssh", Args: []string{"nix-store --import"}})
	assert.ErrorIs(t, err, cause)
}

func TestExportTo_ImportFails(t *testing.T) {
	cause := errors.New("import failed")
	r := testutil.NewRecordingRunner().On("--import", testutil.Response{Err: cause})
	store := NewStore(r, "nix-store", "nix-copy-closure")

	err := store.ExportTo(context.Background(), []string{drv}, runner.Command{Name: "ssh", Args: []string{"nix-store --import"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import")
}

func TestCopyClosure(t *testing.T) {
	r := testutil.NewRecordingRunner()
	store := NewStore(r, "nix-store", "/bin/nix-copy-closure")

	require.NoError(t, store.CopyClosure(context.Background(), "root@host", out, "-p 22 -o BatchMode=yes"))

	calls := r.Calls()
	require.Len(t, calls, 1)
	cmd := calls[0].Command
	assert.Equal(t, "/bin/nix-copy-closure", cmd.Name)
	assert.Equal(t, []string{"--to", "root@host", "--gzip", "--use-substitutes", out}, cmd.Args)
	assert.Equal(t, []string{"NIX_SSHOPTS=-p 22 -o BatchMode=yes"}, cmd.Env)
}

func TestRemoteArgs(t *testing.T) {
	assert.Equal(t, []string{"nix-store", "--realize", drv, "-j", "4"}, RealizeArgs(drv, []string{"-j", "4"}))
	assert.Equal(t, []string{"nix-store", "--import"}, ImportArgs())
}
