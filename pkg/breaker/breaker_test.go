package breaker

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	caterrors "github.com/uicatalog/catalog-mcp-go/pkg/errors"
)

var errDown = stderrors.New("store unreachable")

func failingCall(ctx context.Context) (interface{}, error) { return nil, errDown }

func succeedingCall(ctx context.Context) (interface{}, error) { return "ok", nil }

func TestOpensAfterThresholdConsecutiveFailures(t *testing.T) {
	b := New(Options{Name: "catalog-store", FailureThreshold: 3, ResetTimeout: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := b.Execute(ctx, failingCall)
		assert.ErrorIs(t, err, errDown)
	}
	assert.Equal(t, StateOpen, b.State())

	// Fourth call must be rejected without running the thunk.
	invoked := false
	_, err := b.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		invoked = true
		return nil, nil
	})
	assert.False(t, invoked)
	assert.True(t, caterrors.IsCircuitOpen(err))
}

func TestSuccessResetsFailureCount(t *testing.T) {
	b := New(Options{FailureThreshold: 3, ResetTimeout: time.Minute})
	ctx := context.Background()

	_, _ = b.Execute(ctx, failingCall)
	_, _ = b.Execute(ctx, failingCall)
	assert.Equal(t, 2, b.ConsecutiveFailures())

	result, err := b.Execute(ctx, succeedingCall)
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 0, b.ConsecutiveFailures())
	assert.Equal(t, StateClosed, b.State())
}

func TestRecoveryAfterResetTimeout(t *testing.T) {
	b := New(Options{FailureThreshold: 3, ResetTimeout: 30 * time.Millisecond})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = b.Execute(ctx, failingCall)
	}
	require.Equal(t, StateOpen, b.State())

	time.Sleep(40 * time.Millisecond)

	// Trial call is admitted and its success closes the circuit.
	result, err := b.Execute(ctx, succeedingCall)
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, 0, b.ConsecutiveFailures())
}

func TestFailedTrialReopensAndRestartsTimer(t *testing.T) {
	b := New(Options{FailureThreshold: 2, ResetTimeout: 30 * time.Millisecond})
	ctx := context.Background()

	_, _ = b.Execute(ctx, failingCall)
	_, _ = b.Execute(ctx, failingCall)
	require.Equal(t, StateOpen, b.State())

	time.Sleep(40 * time.Millisecond)

	_, err := b.Execute(ctx, failingCall)
	assert.ErrorIs(t, err, errDown)
	assert.Equal(t, StateOpen, b.State())

	// Timer restarted: a call right after the failed trial is shed.
	invoked := false
	_, err = b.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		invoked = true
		return nil, nil
	})
	assert.False(t, invoked)
	assert.True(t, caterrors.IsCircuitOpen(err))
}

func TestHalfOpenAdmitsExactlyOneProbe(t *testing.T) {
	b := New(Options{FailureThreshold: 1, ResetTimeout: 20 * time.Millisecond})
	ctx := context.Background()

	_, _ = b.Execute(ctx, failingCall)
	require.Equal(t, StateOpen, b.State())
	time.Sleep(30 * time.Millisecond)

	release := make(chan struct{})
	probeStarted := make(chan struct{})
	go func() {
		_, _ = b.Execute(ctx, func(ctx context.Context) (interface{}, error) {
			close(probeStarted)
			<-release
			return "ok", nil
		})
	}()

	<-probeStarted
	// While the trial call is in flight every other call is rejected.
	_, err := b.Execute(ctx, succeedingCall)
	assert.True(t, caterrors.IsCircuitOpen(err))
	close(release)
}

func TestFailurePolicyExemptsValidation(t *testing.T) {
	b := New(Options{FailureThreshold: 1, ResetTimeout: time.Minute, FailurePolicy: IOFailuresOnly})
	ctx := context.Background()

	_, err := b.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, caterrors.MissingParameter("componentName")
	})
	assert.True(t, caterrors.IsValidation(err))
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, 0, b.ConsecutiveFailures())

	// A genuine collaborator fault still counts.
	_, _ = b.Execute(ctx, failingCall)
	assert.Equal(t, StateOpen, b.State())
}

func TestErrorPropagatesUnchanged(t *testing.T) {
	b := New(Options{FailureThreshold: 5, ResetTimeout: time.Minute})

	_, err := b.Execute(context.Background(), failingCall)
	assert.Equal(t, errDown, err)
}

func TestStateChangeCallback(t *testing.T) {
	var states []State
	b := New(Options{
		FailureThreshold: 1,
		ResetTimeout:     time.Minute,
		OnStateChange:    func(name string, s State) { states = append(states, s) },
	})

	_, _ = b.Execute(context.Background(), failingCall)
	require.Equal(t, []State{StateOpen}, states)
}
