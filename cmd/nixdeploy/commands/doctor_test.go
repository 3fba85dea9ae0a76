package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctor(t *testing.T) {
	cmd := Doctor()

	require.NotNil(t, cmd)
	assert.Equal(t, "doctor", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestDoctor_RejectsArgs(t *testing.T) {
	cmd := Doctor()
	assert.Error(t, cmd.Args(cmd, []string{"extra"}))
}
