package config

import (
	"slices"
	"strings"
)

// Config is the immutable description of one deployment.
type Config struct {
	// DrvPath is the system derivation to realize.
	DrvPath string

	// OutPath is the expected output path. It is only consulted when the
	// derivation is realized on the target and the remote realize does not
	// report an output path.
	OutPath string

	// TargetHost is passed to ssh as the destination, e.g. "root@10.0.0.2".
	TargetHost string
	TargetPort int

	// BuildOnTarget selects the remote-build transfer strategy.
	BuildOnTarget bool

	// PrivateKey is PEM/OpenSSH key material, or empty / "-" for none.
	PrivateKey string

	// Action is passed to switch-to-configuration.
	Action string

	// Retention is the raw generation-retention specification.
	Retention string

	CollectGarbage bool

	// BuildOptions are appended to every realize call, in order.
	BuildOptions []string

	Tools Tools
}

// HasPrivateKey reports whether a key must be written for this deployment.
func (c *Config) HasPrivateKey() bool {
	key := strings.TrimSpace(c.PrivateKey)
	return key != "" && key != NoKeySentinel
}

// RetentionTokens returns the retention specification split on whitespace.
// Each token becomes one argument to nix-env --delete-generations.
func (c *Config) RetentionTokens() []string {
	return strings.Fields(c.Retention)
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.BuildOptions = slices.Clone(c.BuildOptions)
	clone.Tools.SSHExtraOptions = slices.Clone(c.Tools.SSHExtraOptions)
	return &clone
}
