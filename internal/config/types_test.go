package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Clone(t *testing.T) {
	orig := validConfig()
	orig.BuildOptions = []string{"--keep-going"}
	orig.Tools.SSHExtraOptions = []string{"-v"}

	clone := orig.Clone()
	assert.Equal(t, orig, clone)

	clone.BuildOptions[0] = "--changed"
	clone.Tools.SSHExtraOptions[0] = "-q"
	assert.Equal(t, "--keep-going", orig.BuildOptions[0])
	assert.Equal(t, "-v", orig.Tools.SSHExtraOptions[0])
}

func TestConfig_RetentionTokens(t *testing.T) {
	cfg := &Config{Retention: " 1\t2\n+3 "}
	assert.Equal(t, []string{"1", "2", "+3"}, cfg.RetentionTokens())

	cfg.Retention = ""
	assert.Empty(t, cfg.RetentionTokens())
}

func TestDefaultBuildOptions_ReturnsCopy(t *testing.T) {
	opts := DefaultBuildOptions()
	opts[0] = "--changed"
	assert.Equal(t, "--option", DefaultBuildOptions()[0])
}
