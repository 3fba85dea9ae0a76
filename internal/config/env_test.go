package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearToolEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"NIXDEPLOY_SSH",
		"NIXDEPLOY_NIX_STORE",
		"NIXDEPLOY_NIX_COPY_CLOSURE",
		"NIXDEPLOY_PROFILE",
		"NIXDEPLOY_REMOTE_HELPER",
		"NIXDEPLOY_SSH_EXTRA_OPTS",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadTools_Defaults(t *testing.T) {
	clearToolEnv(t)

	tools, err := LoadTools()
	require.NoError(t, err)
	assert.Equal(t, DefaultTools(), tools)
}

func TestLoadTools_CustomValues(t *testing.T) {
	clearToolEnv(t)
	t.Setenv("NIXDEPLOY_SSH", "/usr/bin/ssh")
	t.Setenv("NIXDEPLOY_NIX_STORE", "/run/current-system/sw/bin/nix-store")
	t.Setenv("NIXDEPLOY_NIX_COPY_CLOSURE", "/run/current-system/sw/bin/nix-copy-closure")
	t.Setenv("NIXDEPLOY_PROFILE", "/nix/var/nix/profiles/per-user/root/system")
	t.Setenv("NIXDEPLOY_REMOTE_HELPER", "/usr/local/bin/maybe-sudo")
	t.Setenv("NIXDEPLOY_SSH_EXTRA_OPTS", `-o "ProxyJump=admin@bastion" -o ServerAliveInterval=15`)

	tools, err := LoadTools()
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/ssh", tools.SSH)
	assert.Equal(t, "/run/current-system/sw/bin/nix-store", tools.NixStore)
	assert.Equal(t, "/run/current-system/sw/bin/nix-copy-closure", tools.NixCopyClosure)
	assert.Equal(t, "/nix/var/nix/profiles/per-user/root/system", tools.Profile)
	assert.Equal(t, "/usr/local/bin/maybe-sudo", tools.RemoteHelper)
	assert.Equal(t, []string{"-o", "ProxyJump=admin@bastion", "-o", "ServerAliveInterval=15"}, tools.SSHExtraOptions)
}

func TestLoadTools_InvalidExtraOpts(t *testing.T) {
	clearToolEnv(t)
	t.Setenv("NIXDEPLOY_SSH_EXTRA_OPTS", `-o 'unterminated`)

	_, err := LoadTools()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NIXDEPLOY_SSH_EXTRA_OPTS")
}
