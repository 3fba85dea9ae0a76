package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/imamik/nixdeploy/internal/testing"
)

// phaseFunc adapts a function to the Phase interface.
type phaseFunc struct {
	name string
	fn   func(*Context) error
}

func (p phaseFunc) Name() string           { return p.name }
func (p phaseFunc) Run(ctx *Context) error { return p.fn(ctx) }

func newTestContext(observer Observer) *Context {
	return &Context{
		Context:  context.Background(),
		Config:   testutil.NewConfigBuilder().Build(),
		State:    &State{},
		Observer: observer,
	}
}

func TestRunPhases_Success(t *testing.T) {
	t.Parallel()
	var executed []string
	record := func(name string) Phase {
		return phaseFunc{name: name, fn: func(_ *Context) error {
			executed = append(executed, name)
			return nil
		}}
	}

	observer := NewMockObserver()
	err := RunPhases(newTestContext(observer), []Phase{record("identity"), record("session"), record("transfer")})

	require.NoError(t, err)
	assert.Equal(t, []string{"identity", "session", "transfer"}, executed)

	started := observer.eventsOfType(EventPhaseStarted)
	require.Len(t, started, 3)
	assert.Equal(t, "identity (1/3)", started[0].Phase)
	assert.Equal(t, "transfer (3/3)", started[2].Phase)
	assert.Len(t, observer.eventsOfType(EventPhaseCompleted), 3)
}

func TestRunPhases_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	var executed []string

	phases := []Phase{
		phaseFunc{name: "session", fn: func(_ *Context) error {
			executed = append(executed, "session")
			return nil
		}},
		phaseFunc{name: "transfer", fn: func(_ *Context) error {
			executed = append(executed, "transfer")
			return boom
		}},
		phaseFunc{name: "activate", fn: func(_ *Context) error {
			executed = append(executed, "activate")
			return nil
		}},
	}

	observer := NewMockObserver()
	err := RunPhases(newTestContext(observer), phases)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "transfer phase failed: boom", err.Error())
	assert.Equal(t, []string{"session", "transfer"}, executed)

	failed := observer.eventsOfType(EventPhaseFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, "transfer (2/3)", failed[0].Phase)
}

func TestPhases(t *testing.T) {
	t.Parallel()
	names := func(phases []Phase) []string {
		out := make([]string, len(phases))
		for i, p := range phases {
			out[i] = p.Name()
		}
		return out
	}

	base := testutil.NewConfigBuilder()
	assert.Equal(t, []string{"identity", "session", "transfer", "activate"}, names(Phases(base.Build())))
	assert.Equal(t, []string{"identity", "session", "transfer", "activate", "gc"},
		names(Phases(base.WithGarbageCollection("+5").Build())))
}

func TestSelectTransfer(t *testing.T) {
	t.Parallel()
	assert.IsType(t, &LocalBuild{}, SelectTransfer(false))
	assert.IsType(t, &RemoteBuild{}, SelectTransfer(true))
}
