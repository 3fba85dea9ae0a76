package nix

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/nixdeploy/internal/runner"
)

// mockRunner is a local mock for testing
type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, cmd runner.Command) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func TestCopyClosure_Command(t *testing.T) {
	tests := []struct {
		name        string
		mockErr     error
		expectErr   bool
		errContains string
	}{
		{
			name: "success",
		},
		{
			name:        "copy error",
			mockErr:     errors.New("exit status 1"),
			expectErr:   true,
			errContains: "failed to copy closure of " + out + " to root@web-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(mockRunner)
			want := runner.Command{
				Name: "/usr/bin/nix-copy-closure",
				Args: []string{"--to", "root@web-1", "--gzip", "--use-substitutes", out},
				Env:  []string{"NIX_SSHOPTS=-o BatchMode=yes -p 2222"},
			}
			r.On("Run", mock.Anything, want).Return(tt.mockErr)

			store := NewStore(r, "nix-store", "/usr/bin/nix-copy-closure")
			err := store.CopyClosure(context.Background(), "root@web-1", out, "-o BatchMode=yes -p 2222")

			if tt.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.ErrorIs(t, err, tt.mockErr)
			} else {
				require.NoError(t, err)
			}
			r.AssertExpectations(t)
		})
	}
}

func TestRequisites_Command(t *testing.T) {
	r := new(mockRunner)
	r.On("Run", mock.Anything, mock.MatchedBy(func(cmd runner.Command) bool {
		return cmd.Name == "nix-store" && assert.ObjectsAreEqual([]string{"--query", "--requisites", drv}, cmd.Args)
	})).Run(func(args mock.Arguments) {
		cmd := args.Get(1).(runner.Command)
		_, _ = cmd.Stdout.Write([]byte(drv + "\n"))
	}).Return(nil).Once()

	paths, err := NewStore(r, "nix-store", "nix-copy-closure").Requisites(context.Background(), drv)

	require.NoError(t, err)
	assert.Equal(t, []string{drv}, paths)
	r.AssertExpectations(t)
}
