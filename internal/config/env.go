package config

import (
	"fmt"
	"os"

	"github.com/imamik/nixdeploy/internal/shell"
)

// Tools holds the local binaries and remote locations a deployment uses.
// These values can be customized via environment variables.
type Tools struct {
	SSH             string   // Local ssh binary
	NixStore        string   // Local nix-store binary
	NixCopyClosure  string   // Local nix-copy-closure binary
	Profile         string   // System profile on the target
	RemoteHelper    string   // Privilege-escalation helper on the target
	SSHExtraOptions []string // Appended to every ssh invocation
}

// LoadTools loads tool configuration from environment variables.
// If an environment variable is not set, a default value is used.
//
// Environment Variables:
//   - NIXDEPLOY_SSH (default: ssh)
//   - NIXDEPLOY_NIX_STORE (default: nix-store)
//   - NIXDEPLOY_NIX_COPY_CLOSURE (default: nix-copy-closure)
//   - NIXDEPLOY_PROFILE (default: /nix/var/nix/profiles/system)
//   - NIXDEPLOY_REMOTE_HELPER (default: ./maybe-sudo.sh)
//   - NIXDEPLOY_SSH_EXTRA_OPTS (default: none; parsed with shell quoting rules)
func LoadTools() (Tools, error) {
	extra, err := shell.Split(os.Getenv("NIXDEPLOY_SSH_EXTRA_OPTS"))
	if err != nil {
		return Tools{}, fmt.Errorf("failed to parse NIXDEPLOY_SSH_EXTRA_OPTS: %w", err)
	}

	return Tools{
		SSH:             parseString("NIXDEPLOY_SSH", DefaultSSHBinary),
		NixStore:        parseString("NIXDEPLOY_NIX_STORE", DefaultNixStoreBinary),
		NixCopyClosure:  parseString("NIXDEPLOY_NIX_COPY_CLOSURE", DefaultNixCopyClosureBinary),
		Profile:         parseString("NIXDEPLOY_PROFILE", DefaultProfile),
		RemoteHelper:    parseString("NIXDEPLOY_REMOTE_HELPER", DefaultRemoteHelper),
		SSHExtraOptions: extra,
	}, nil
}

// DefaultTools returns the tool configuration with every default applied.
func DefaultTools() Tools {
	return Tools{
		SSH:            DefaultSSHBinary,
		NixStore:       DefaultNixStoreBinary,
		NixCopyClosure: DefaultNixCopyClosureBinary,
		Profile:        DefaultProfile,
		RemoteHelper:   DefaultRemoteHelper,
	}
}

// parseString reads a string from an environment variable.
// If the variable is not set or empty, the default value is returned.
func parseString(envVar, defaultVal string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return defaultVal
}
