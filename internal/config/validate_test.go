package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		DrvPath:       "/nix/store/a.drv",
		TargetHost:    "root@host",
		TargetPort:    22,
		Action:        "switch",
		Tools:         DefaultTools(),
		BuildOptions:  DefaultBuildOptions(),
		BuildOnTarget: false,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"missing drv", func(c *Config) { c.DrvPath = "" }, ErrMissingArgument},
		{"drv looks like an option", func(c *Config) { c.DrvPath = "--gc" }, ErrInvalidArgument},
		{"missing host", func(c *Config) { c.TargetHost = "" }, ErrMissingArgument},
		{"host with whitespace", func(c *Config) { c.TargetHost = "root@host extra" }, ErrInvalidArgument},
		{"port zero", func(c *Config) { c.TargetPort = 0 }, ErrInvalidArgument},
		{"missing action", func(c *Config) { c.Action = "" }, ErrMissingArgument},
		{"dry-activate", func(c *Config) { c.Action = "dry-activate" }, nil},
		{"gc without retention", func(c *Config) { c.CollectGarbage = true }, ErrMissingArgument},
		{"gc with age", func(c *Config) { c.CollectGarbage, c.Retention = true, "14d" }, nil},
		{"gc with keep-last", func(c *Config) { c.CollectGarbage, c.Retention = true, "+5" }, nil},
		{"gc with old", func(c *Config) { c.CollectGarbage, c.Retention = true, "old" }, nil},
		{"gc with numbers", func(c *Config) { c.CollectGarbage, c.Retention = true, "1 2 3" }, nil},
		{"gc with substitution", func(c *Config) { c.CollectGarbage, c.Retention = true, "$(id)" }, ErrInvalidArgument},
		{"unused retention is ignored", func(c *Config) { c.Retention = "whatever" }, nil},
		{"missing ssh binary", func(c *Config) { c.Tools.SSH = "" }, ErrMissingArgument},
		{"missing profile", func(c *Config) { c.Tools.Profile = "" }, ErrMissingArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
