package testing

import (
	"slices"

	"github.com/imamik/nixdeploy/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with sensible defaults: a
// local build of a fixed derivation, no key, switch action, no GC.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			DrvPath:      "/nix/store/0000000000000000000000000000000a-nixos-system.drv",
			OutPath:      "/nix/store/0000000000000000000000000000000b-nixos-system",
			TargetHost:   "root@10.0.0.2",
			TargetPort:   22,
			PrivateKey:   config.NoKeySentinel,
			Action:       "switch",
			BuildOptions: config.DefaultBuildOptions(),
			Tools:        config.DefaultTools(),
		},
	}
}

// WithDrvPath sets the derivation path.
func (b *ConfigBuilder) WithDrvPath(path string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.DrvPath = path
	return newBuilder
}

// WithOutPath sets the output path hint.
func (b *ConfigBuilder) WithOutPath(path string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.OutPath = path
	return newBuilder
}

// WithTargetHost sets the ssh destination.
func (b *ConfigBuilder) WithTargetHost(host string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.TargetHost = host
	return newBuilder
}

// WithTargetPort sets the ssh port.
func (b *ConfigBuilder) WithTargetPort(port int) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.TargetPort = port
	return newBuilder
}

// WithBuildOnTarget selects the remote-build strategy.
func (b *ConfigBuilder) WithBuildOnTarget(enabled bool) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.BuildOnTarget = enabled
	return newBuilder
}

// WithPrivateKey sets the key material.
func (b *ConfigBuilder) WithPrivateKey(material string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.PrivateKey = material
	return newBuilder
}

// WithAction sets the switch-to-configuration action.
func (b *ConfigBuilder) WithAction(action string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Action = action
	return newBuilder
}

// WithGarbageCollection enables GC with the given retention specification.
func (b *ConfigBuilder) WithGarbageCollection(retention string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.CollectGarbage = true
	newBuilder.cfg.Retention = retention
	return newBuilder
}

// WithBuildOptions appends build options after the defaults.
func (b *ConfigBuilder) WithBuildOptions(opts ...string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.BuildOptions = append(newBuilder.cfg.BuildOptions, opts...)
	return newBuilder
}

// WithTools replaces the tool configuration.
func (b *ConfigBuilder) WithTools(tools config.Tools) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Tools = tools
	return newBuilder
}

// Build returns a copy of the configuration.
func (b *ConfigBuilder) Build() *config.Config {
	return b.cfg.Clone()
}

func (b *ConfigBuilder) clone() *ConfigBuilder {
	cfg := b.cfg
	cfg.BuildOptions = slices.Clone(b.cfg.BuildOptions)
	cfg.Tools.SSHExtraOptions = slices.Clone(b.cfg.Tools.SSHExtraOptions)
	return &ConfigBuilder{cfg: cfg}
}
